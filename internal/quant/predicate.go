package quant

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPredicate is returned when a predicate name is not registered.
var ErrUnknownPredicate = errors.New("unknown predicate")

// Predicate is a total, side-effect free function from an integer to a
// truth value.
type Predicate func(x int64) bool

// IsEven reports whether x is divisible by 2.
//
// Go's % truncates toward zero, so -3 % 2 == -1 and -2 % 2 == 0; comparing
// against zero classifies negative values correctly.
func IsEven(x int64) bool {
	return x%2 == 0
}

// PredicateEven is the name of the parity predicate.
const PredicateEven = "even"

// predicates is fixed at build time and never written to.
var predicates = map[string]Predicate{
	PredicateEven: IsEven,
}

// LookupPredicate returns the predicate registered under name.
func LookupPredicate(name string) (Predicate, error) {
	p, ok := predicates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, name)
	}
	return p, nil
}

// PredicateNames returns the registered predicate names in sorted order.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
