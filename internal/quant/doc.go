// Package quant evaluates quantified propositions over integer domains.
//
// A domain is an inclusive, ascending range of int64 values. A predicate is
// any total function from int64 to bool. The package computes the per-element
// truth table of a predicate over a domain and the two quantified statements:
//
//   - universal (∀x ∈ D, P(x)): true iff P holds for every element,
//     vacuously true on an empty domain
//   - existential (∃x ∈ D, P(x)): true iff P holds for some element,
//     vacuously false on an empty domain
//
// An inverted range (start > end) produces an empty domain, never an error.
// All functions are pure and safe for concurrent use.
package quant
