package quant

// Entry is the value of a predicate at a single domain element.
type Entry struct {
	X     int64 `json:"x"`
	Holds bool  `json:"holds"`
}

// TruthTable records a predicate's value at every element of a domain, in
// domain order.
type TruthTable []Entry

// BuildTruthTable applies p to each element of domain.
func BuildTruthTable(domain Domain, p Predicate) TruthTable {
	table := make(TruthTable, len(domain))
	for i, x := range domain {
		table[i] = Entry{X: x, Holds: p(x)}
	}
	return table
}

// Satisfying returns the elements for which the predicate holds.
func (t TruthTable) Satisfying() []int64 {
	return t.filter(true)
}

// Falsifying returns the elements for which the predicate does not hold.
func (t TruthTable) Falsifying() []int64 {
	return t.filter(false)
}

func (t TruthTable) filter(holds bool) []int64 {
	out := make([]int64, 0, len(t))
	for _, e := range t {
		if e.Holds == holds {
			out = append(out, e.X)
		}
	}
	return out
}
