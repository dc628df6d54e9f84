package quant

import (
	"errors"
	"fmt"
)

// DefaultMaxDomainSize bounds how many elements an Evaluator materializes.
const DefaultMaxDomainSize = 1_000_000

// ErrDomainTooLarge is returned when a range exceeds the configured maximum.
var ErrDomainTooLarge = errors.New("domain too large")

// Config configures an Evaluator.
type Config struct {
	// MaxDomainSize is the largest domain the evaluator will build.
	// Zero means DefaultMaxDomainSize.
	MaxDomainSize uint64
}

// DefaultConfig returns the default evaluator configuration.
func DefaultConfig() Config {
	return Config{MaxDomainSize: DefaultMaxDomainSize}
}

// Evaluator builds domains and evaluates predicates over them.
// It holds only immutable configuration and is safe for concurrent use.
type Evaluator struct {
	config Config
}

// New creates an Evaluator with the default configuration.
func New() *Evaluator {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates an Evaluator with the given configuration.
func NewWithConfig(config Config) *Evaluator {
	if config.MaxDomainSize == 0 {
		config.MaxDomainSize = DefaultMaxDomainSize
	}
	return &Evaluator{config: config}
}

// Config returns the evaluator's configuration.
func (e *Evaluator) Config() Config {
	return e.config
}

// Report aggregates everything computed for one range and predicate.
type Report struct {
	Start       int64      `json:"start"`
	End         int64      `json:"end"`
	Predicate   string     `json:"predicate"`
	Domain      Domain     `json:"domain"`
	Table       TruthTable `json:"table"`
	Universal   Result     `json:"forall"`
	Existential Result     `json:"exists"`
}

// Empty reports whether the range was inverted and nothing was evaluated
// beyond the vacuous results.
func (r Report) Empty() bool {
	return r.Domain.IsEmpty()
}

// Summary returns a one-line description of the report.
func (r Report) Summary() string {
	if r.Empty() {
		return fmt.Sprintf("%s over [%d, %d]: empty domain", r.Predicate, r.Start, r.End)
	}
	return fmt.Sprintf(
		"%s over [%d, %d]: %d of %d hold, ∀ %t, ∃ %t",
		r.Predicate, r.Start, r.End,
		len(r.Table.Satisfying()), r.Domain.Len(),
		r.Universal.Value, r.Existential.Value,
	)
}

// Domain builds the domain for [start, end], enforcing MaxDomainSize.
func (e *Evaluator) Domain(start, end int64) (Domain, error) {
	if n := DomainSize(start, end); n > e.config.MaxDomainSize {
		return nil, fmt.Errorf("%w: [%d, %d] has %d elements, limit is %d",
			ErrDomainTooLarge, start, end, n, e.config.MaxDomainSize)
	}
	return BuildDomain(start, end), nil
}

// Evaluate evaluates the named predicate over [start, end].
func (e *Evaluator) Evaluate(start, end int64, predicate string) (Report, error) {
	p, err := LookupPredicate(predicate)
	if err != nil {
		return Report{}, err
	}
	return e.EvaluatePredicate(start, end, predicate, p)
}

// EvaluatePredicate evaluates p over [start, end]. The name is only used
// for reporting.
func (e *Evaluator) EvaluatePredicate(start, end int64, name string, p Predicate) (Report, error) {
	domain, err := e.Domain(start, end)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Start:       start,
		End:         end,
		Predicate:   name,
		Domain:      domain,
		Table:       BuildTruthTable(domain, p),
		Universal:   Quantify(Universal, domain, p),
		Existential: Quantify(Existential, domain, p),
	}, nil
}
