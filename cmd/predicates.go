package cmd

import (
	"fmt"

	"github.com/gnolang/qeval/internal/quant"
	"github.com/spf13/cobra"
)

func newPredicatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "predicates",
		Short: "List the available predicates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range quant.PredicateNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
