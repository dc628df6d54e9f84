package cmd

import (
	"time"

	"github.com/gnolang/qeval/eval"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultTimeout = 5 * time.Minute

// options holds the global flags shared by every subcommand.
type options struct {
	cfgFile string
	timeout time.Duration
	verbose bool
	eval    evalFlags

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:              "qeval",
		Short:            "qeval - evaluate quantified propositions over integer ranges",
		TraverseChildren: true, // Prioritize subcommands
		SilenceUsage:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
		// no subcommand behaves like the eval subcommand
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts)
		},
	}
	// persistent so they apply on either side of the subcommand name
	addEvalFlags(rootCmd.PersistentFlags(), &opts.eval)

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", eval.DefaultConfigPath, "Path to the configuration file")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "Set a timeout for batch evaluation")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newEvalCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newBatchCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newPredicatesCmd())
	return rootCmd
}

// Execute runs the qeval command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newLogger(verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	return config.Build()
}
