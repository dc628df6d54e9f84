package eval

import (
	"github.com/gnolang/qeval/internal/quant"
	"go.uber.org/zap"
)

// Engine evaluates a named predicate over an integer range.
type Engine interface {
	Evaluate(start, end int64, predicate string) (quant.Report, error)
}

// New creates an evaluator bounded by the configuration's domain limit.
func New(config Config) *quant.Evaluator {
	return quant.NewWithConfig(quant.Config{MaxDomainSize: config.MaxDomainSize})
}

// Evaluate runs the range and predicate named by config through engine.
func Evaluate(logger *zap.Logger, engine Engine, config Config) (quant.Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	report, err := engine.Evaluate(config.Start, config.End, config.Predicate)
	if err != nil {
		logger.Error("Evaluation failed",
			zap.Int64("start", config.Start),
			zap.Int64("end", config.End),
			zap.String("predicate", config.Predicate),
			zap.Error(err))
		return quant.Report{}, err
	}

	if report.Empty() {
		logger.Warn("Inverted range, evaluating over the empty domain",
			zap.Int64("start", config.Start),
			zap.Int64("end", config.End))
	}
	logger.Debug("Evaluated",
		zap.String("predicate", report.Predicate),
		zap.Int("size", report.Domain.Len()),
		zap.Bool("forall", report.Universal.Value),
		zap.Bool("exists", report.Existential.Value))

	return report, nil
}
