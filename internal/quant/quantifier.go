package quant

import "fmt"

// Quantifier identifies which quantified statement produced a result.
type Quantifier int

const (
	// Universal is ∀x ∈ D, P(x).
	Universal Quantifier = iota
	// Existential is ∃x ∈ D, P(x).
	Existential
)

func (q Quantifier) String() string {
	switch q {
	case Universal:
		return "Universal"
	case Existential:
		return "Existential"
	default:
		return "?"
	}
}

// Symbol returns the logical symbol for the quantifier.
func (q Quantifier) Symbol() string {
	switch q {
	case Universal:
		return "∀"
	case Existential:
		return "∃"
	default:
		return "?"
	}
}

// MarshalText encodes the quantifier by name.
func (q Quantifier) MarshalText() ([]byte, error) {
	switch q {
	case Universal:
		return []byte("forall"), nil
	case Existential:
		return []byte("exists"), nil
	default:
		return nil, fmt.Errorf("invalid quantifier %d", int(q))
	}
}

// UnmarshalText decodes a quantifier encoded by MarshalText.
func (q *Quantifier) UnmarshalText(text []byte) error {
	switch string(text) {
	case "forall":
		*q = Universal
	case "exists":
		*q = Existential
	default:
		return fmt.Errorf("invalid quantifier %q", text)
	}
	return nil
}

// Result is the truth value of a quantified statement over a domain.
//
// When evaluation stopped early, Decider holds the element that decided the
// outcome: a counterexample for Universal, a witness for Existential.
// Vacuous results and results that needed the whole domain have Decided
// set to false.
type Result struct {
	Quantifier Quantifier `json:"quantifier"`
	Value      bool       `json:"value"`
	Decider    int64      `json:"decider"`
	Decided    bool       `json:"decided"`
}

// String returns the statement with its truth value, e.g. "∀x P(x) = false (x=1)".
func (r Result) String() string {
	s := fmt.Sprintf("%sx P(x) = %t", r.Quantifier.Symbol(), r.Value)
	if r.Decided {
		s += fmt.Sprintf(" (x=%d)", r.Decider)
	}
	return s
}

// ForAll reports whether p holds for every element of domain.
// It is vacuously true for an empty domain.
func ForAll(domain Domain, p Predicate) bool {
	return Quantify(Universal, domain, p).Value
}

// Exists reports whether p holds for at least one element of domain.
// It is vacuously false for an empty domain.
func Exists(domain Domain, p Predicate) bool {
	return Quantify(Existential, domain, p).Value
}

// Quantify evaluates q over domain, stopping at the first element that
// decides the outcome.
func Quantify(q Quantifier, domain Domain, p Predicate) Result {
	// ∀ stops at the first false, ∃ at the first true.
	stopOn := q == Existential
	for _, x := range domain {
		if p(x) == stopOn {
			return Result{Quantifier: q, Value: stopOn, Decider: x, Decided: true}
		}
	}
	return Result{Quantifier: q, Value: !stopOn}
}
