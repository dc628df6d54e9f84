package quant

import (
	"math"
	"strconv"
	"strings"
)

// Domain is an ascending sequence of distinct integers.
type Domain []int64

// BuildDomain returns the inclusive range [start, end].
// An inverted range (start > end) yields an empty domain.
func BuildDomain(start, end int64) Domain {
	if start > end {
		return Domain{}
	}

	d := make(Domain, 0, capHint(start, end))
	for x := start; ; x++ {
		d = append(d, x)
		// stop before x++ can wrap at math.MaxInt64
		if x == end {
			break
		}
	}
	return d
}

// DomainSize returns the number of elements BuildDomain(start, end) would
// hold without materializing it. The full int64 range saturates at
// math.MaxUint64.
func DomainSize(start, end int64) uint64 {
	if start > end {
		return 0
	}
	span := uint64(end) - uint64(start)
	if span == math.MaxUint64 {
		return span
	}
	return span + 1
}

func capHint(start, end int64) int {
	n := DomainSize(start, end)
	if n > uint64(math.MaxInt32) {
		return math.MaxInt32
	}
	return int(n)
}

// Len returns the number of elements in the domain.
func (d Domain) Len() int { return len(d) }

// IsEmpty reports whether the domain has no elements.
func (d Domain) IsEmpty() bool { return len(d) == 0 }

// String renders the domain as a bracketed, comma separated list.
func (d Domain) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, x := range d {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatInt(x, 10))
	}
	b.WriteByte(']')
	return b.String()
}
