package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gnolang/qeval/eval"
	"github.com/gnolang/qeval/formatter"
	"github.com/gnolang/qeval/internal/quant"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

type evalFlags struct {
	start      int64
	end        int64
	predicate  string
	maxDomain  uint64
	quantifier string
	jsonOutput bool
	outPath    string
}

func newEvalCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the predicate and both quantifiers over a range",
		Long: `Builds the domain [start, end], prints P(x) for every element and the truth
value of ∀x P(x) and ∃x P(x). Flags override values from the configuration file.
Example) qeval eval --start -4 --end 4 --quantifier exists`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts)
		},
	}
}

func addEvalFlags(fs *pflag.FlagSet, flags *evalFlags) {
	defaults := eval.DefaultConfig()
	fs.Int64Var(&flags.start, "start", defaults.Start, "First element of the domain")
	fs.Int64Var(&flags.end, "end", defaults.End, "Last element of the domain")
	fs.StringVar(&flags.predicate, "predicate", defaults.Predicate, "Predicate to evaluate")
	fs.Uint64Var(&flags.maxDomain, "max-domain", defaults.MaxDomainSize, "Largest domain to evaluate")
	fs.StringVarP(&flags.quantifier, "quantifier", "q", "both", "Quantifier to show: all, exists or both")
	fs.BoolVar(&flags.jsonOutput, "json", false, "Output the report in JSON format")
	fs.StringVarP(&flags.outPath, "output", "o", "", "Output path (when using JSON)")
}

// resolveConfig loads the configuration file and applies explicitly set flags.
func resolveConfig(cmd *cobra.Command, cfgFile string, flags *evalFlags) (eval.Config, error) {
	config, err := eval.LoadConfig(cfgFile)
	if err != nil {
		return config, err
	}

	f := cmd.Flags()
	if f.Changed("start") {
		config.Start = flags.start
	}
	if f.Changed("end") {
		config.End = flags.end
	}
	if f.Changed("predicate") {
		config.Predicate = flags.predicate
	}
	if f.Changed("max-domain") {
		config.MaxDomainSize = flags.maxDomain
	}
	return config, config.Validate()
}

func parseQuantifiers(s string) ([]quant.Quantifier, error) {
	switch s {
	case "all", "forall":
		return []quant.Quantifier{quant.Universal}, nil
	case "exists", "any":
		return []quant.Quantifier{quant.Existential}, nil
	case "both", "":
		return []quant.Quantifier{quant.Universal, quant.Existential}, nil
	default:
		return nil, fmt.Errorf("unknown quantifier %q (want all, exists or both)", s)
	}
}

func runEval(cmd *cobra.Command, opts *options) error {
	logger := opts.logger
	flags := &opts.eval

	quantifiers, err := parseQuantifiers(flags.quantifier)
	if err != nil {
		return err
	}

	config, err := resolveConfig(cmd, opts.cfgFile, flags)
	if err != nil {
		logger.Error("Error loading configuration", zap.String("path", opts.cfgFile), zap.Error(err))
		return err
	}

	report, err := eval.Evaluate(logger, eval.New(config), config)
	if err != nil {
		return err
	}

	if flags.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), flags.outPath, report)
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(report, quantifiers...))
	return nil
}

// writeJSON writes v to path, or to out when path is empty.
func writeJSON(out io.Writer, path string, v any) error {
	d, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error marshalling to JSON: %w", err)
	}
	if path == "" {
		_, err = fmt.Fprintln(out, string(d))
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating JSON output file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(d); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
