package cmd

import (
	"context"
	"fmt"

	"github.com/gnolang/qeval/eval"
	"github.com/gnolang/qeval/formatter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newBatchCmd(opts *options) *cobra.Command {
	var (
		workers    int
		noProgress bool
	)

	batchCmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Evaluate every range listed in a YAML file",
		Long: `Evaluates the ranges listed under "ranges:" concurrently and prints one
summary line per range. Ranges without a predicate use the configured one.
Example) qeval batch ranges.yaml --json -o results.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			config, err := resolveConfig(cmd, opts.cfgFile, &opts.eval)
			if err != nil {
				logger.Error("Error loading configuration", zap.String("path", opts.cfgFile), zap.Error(err))
				return err
			}

			jobs, err := eval.LoadBatch(args[0], config.Predicate)
			if err != nil {
				logger.Error("Error loading batch file", zap.String("path", args[0]), zap.Error(err))
				return err
			}

			batchOpts := eval.BatchOptions{Workers: workers}
			if !noProgress {
				batchOpts.Progress = cmd.ErrOrStderr()
			}

			results, err := eval.ProcessBatch(ctx, logger, eval.New(config), jobs, batchOpts)
			if err != nil {
				logger.Error("Batch evaluation interrupted", zap.Int("completed", len(results)), zap.Error(err))
				return err
			}

			if opts.eval.jsonOutput {
				if err := writeJSON(cmd.OutOrStdout(), opts.eval.outPath, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				for _, r := range results {
					if r.Err != nil {
						fmt.Fprintln(out, formatter.FormatError(r.Job.String(), r.Err))
						continue
					}
					fmt.Fprintln(out, formatter.FormatSummary(r.Job.String(), *r.Report))
				}
			}

			if failed := eval.Failed(results); len(failed) > 0 {
				return fmt.Errorf("%d of %d ranges failed", len(failed), len(results))
			}
			return nil
		},
	}

	batchCmd.Flags().IntVar(&workers, "workers", 0, "Maximum concurrent evaluations (default: number of CPUs)")
	batchCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not draw a progress bar")
	return batchCmd
}
