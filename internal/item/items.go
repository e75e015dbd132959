package item

import (
	"math/big"
	"strings"
	"sync"
)

// Items is an immutable ordered run of constraints — the query shape every
// search algorithm consumes. Derived views (the exact prefix, its first
// differences, its partial sums) are memoized on first use; Items values are
// safe for concurrent reads after construction.
type Items struct {
	elems []Item

	once       sync.Once
	prefix     []*big.Int
	derivative *Items
	integral   *Items
	key        string
}

// New creates a run from the given constraints. The slice is copied.
func New(elems ...Item) *Items {
	cp := make([]Item, len(elems))
	copy(cp, elems)
	return &Items{elems: cp}
}

// FromValues creates a fully defined run of Exact constraints.
func FromValues(values []*big.Int) *Items {
	elems := make([]Item, len(values))
	for i, v := range values {
		elems[i] = NewExact(v)
	}
	return &Items{elems: elems}
}

// FromInts is FromValues for machine-word values, used mostly in tests.
func FromInts(values ...int64) *Items {
	elems := make([]Item, len(values))
	for i, v := range values {
		elems[i] = ExactInt(v)
	}
	return &Items{elems: elems}
}

// Len returns the number of positions in the run.
func (it *Items) Len() int { return len(it.elems) }

// At returns the constraint at position i.
func (it *Items) At(i int) Item { return it.elems[i] }

// Elems returns the underlying constraints. Callers must not mutate the
// returned slice.
func (it *Items) Elems() []Item { return it.elems }

// IsFullyDefined reports whether every position is an Exact constraint.
func (it *Items) IsFullyDefined() bool {
	for _, e := range it.elems {
		if _, ok := e.(Exact); !ok {
			return false
		}
	}
	return true
}

// Values returns the concrete values of a fully defined run, or nil when any
// position is non-exact.
func (it *Items) Values() []*big.Int {
	if !it.IsFullyDefined() {
		return nil
	}
	it.derive()
	return it.prefix
}

// Prefix returns the values of the longest exact prefix. It is empty when the
// first position is already non-exact.
func (it *Items) Prefix() []*big.Int {
	it.derive()
	return it.prefix
}

// PrefixItems returns the longest exact prefix as a run of its own.
func (it *Items) PrefixItems() *Items {
	return FromValues(it.Prefix())
}

// Derivative returns the first differences of the exact prefix:
// d[i] = p[i+1] - p[i]. The result has one position fewer than the prefix.
func (it *Items) Derivative() *Items {
	it.derive()
	return it.derivative
}

// Integral returns the running partial sums of the exact prefix, starting
// at zero and excluding the total: the integral of (1, 2, 4) is (0, 1, 3).
// The result has the same length as the prefix.
func (it *Items) Integral() *Items {
	it.derive()
	return it.integral
}

// Key returns a canonical string identity for the run, suitable for map
// deduplication. Two runs share a key exactly when they are Equal.
func (it *Items) Key() string {
	it.derive()
	return it.key
}

// Equal reports pointwise structural equality with another run.
func (it *Items) Equal(other *Items) bool {
	if it.Len() != other.Len() {
		return false
	}
	for i, e := range it.elems {
		if !e.Equal(other.elems[i]) {
			return false
		}
	}
	return true
}

// Match reports whether the given values satisfy the run position by
// position. Runs longer than the value slice never match.
func (it *Items) Match(values []*big.Int) bool {
	if len(values) < len(it.elems) {
		return false
	}
	for i, e := range it.elems {
		if !e.Match(values[i]) {
			return false
		}
	}
	return true
}

// String renders the run in query literal syntax, space separated.
func (it *Items) String() string { return it.Key() }

func (it *Items) derive() {
	it.once.Do(func() {
		var prefix []*big.Int
		for _, e := range it.elems {
			ex, ok := e.(Exact)
			if !ok {
				break
			}
			prefix = append(prefix, ex.Value())
		}
		it.prefix = prefix

		diffs := make([]*big.Int, 0, max(len(prefix)-1, 0))
		for i := 1; i < len(prefix); i++ {
			diffs = append(diffs, new(big.Int).Sub(prefix[i], prefix[i-1]))
		}
		it.derivative = FromValues(diffs)

		sums := make([]*big.Int, 0, len(prefix))
		total := new(big.Int)
		for _, v := range prefix {
			sums = append(sums, new(big.Int).Set(total))
			total.Add(total, v)
		}
		it.integral = FromValues(sums)

		parts := make([]string, len(it.elems))
		for i, e := range it.elems {
			parts[i] = e.String()
		}
		it.key = strings.Join(parts, " ")
	})
}
