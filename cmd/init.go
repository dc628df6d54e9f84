package cmd

import (
	"fmt"

	"github.com/gnolang/qeval/eval"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newInitCmd: qeval init
func newInitCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfigurationFile(opts.cfgFile); err != nil {
				opts.logger.Error("Error initializing config file", zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created/updated: %s\n", opts.cfgFile)
			return nil
		},
	}
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = eval.DefaultConfigPath
	}
	return eval.WriteConfig(configurationPath, eval.DefaultConfig())
}
