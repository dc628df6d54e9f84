package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnolang/qeval/eval"
	"github.com/gnolang/qeval/formatter"
	"github.com/gnolang/qeval/internal/quant"
	"github.com/spf13/cobra"
)

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-evaluate whenever the configuration file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			quantifiers, err := parseQuantifiers(opts.eval.quantifier)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := eval.NewWatcher(opts.logger, opts.cfgFile, func(_ eval.Config, report quant.Report, err error) {
				if err != nil {
					fmt.Fprintln(out, formatter.FormatError(opts.cfgFile, err))
					return
				}
				fmt.Fprintln(out, formatter.FormatReport(report, quantifiers...))
			})
			if err := w.Start(); err != nil {
				return err
			}
			w.Reload()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			return w.Stop()
		},
	}
}
