package item

import (
	"math/big"
	"sort"
	"strings"
)

// Item is a sealed interface representing one position constraint in a
// pattern run. Only Exact, Any, Interval, Set, LowerBound and UpperBound
// implement it.
//
// Matching is pattern semantics: Any matches every integer, Interval matches
// values within its bounds, Set matches its members. Equal is structural
// equality between two constraints; an Any never equals an Exact even when
// every concrete value would match.
type Item interface {
	// Match reports whether the concrete value satisfies this constraint.
	Match(v *big.Int) bool
	// Equal reports structural equality with another constraint.
	Equal(other Item) bool
	// Size returns the number of concrete values this constraint denotes.
	// ok is false for unbounded constraints (Any, LowerBound, UpperBound).
	Size() (*big.Int, bool)
	// Enumerate returns the concrete values in ascending order, or nil for
	// unbounded constraints.
	Enumerate() []*big.Int
	// String renders the constraint in query literal syntax.
	String() string

	isItem() // sealed
}

// Exact constrains a position to a single concrete value.
type Exact struct {
	value *big.Int
}

// NewExact creates an Exact constraint. The value is not copied; callers
// must not mutate it afterwards.
func NewExact(v *big.Int) Exact {
	return Exact{value: v}
}

// ExactInt creates an Exact constraint from a machine-word value.
func ExactInt(v int64) Exact {
	return Exact{value: big.NewInt(v)}
}

// Value returns the constrained value.
func (e Exact) Value() *big.Int { return e.value }

func (e Exact) Match(v *big.Int) bool { return e.value.Cmp(v) == 0 }

func (e Exact) Equal(other Item) bool {
	o, ok := other.(Exact)
	return ok && e.value.Cmp(o.value) == 0
}

func (e Exact) Size() (*big.Int, bool) { return big.NewInt(1), true }

func (e Exact) Enumerate() []*big.Int { return []*big.Int{e.value} }

func (e Exact) String() string { return e.value.String() }

func (Exact) isItem() {}

// Any matches every integer. Use the ANY singleton.
type Any struct{}

// ANY is the wildcard constraint.
var ANY = Any{}

func (Any) Match(*big.Int) bool { return true }

func (Any) Equal(other Item) bool {
	_, ok := other.(Any)
	return ok
}

func (Any) Size() (*big.Int, bool) { return nil, false }

func (Any) Enumerate() []*big.Int { return nil }

func (Any) String() string { return ".." }

func (Any) isItem() {}

// Interval matches lo <= v <= hi.
type Interval struct {
	lo, hi *big.Int
}

// NewInterval creates an Interval constraint. A degenerate interval with
// lo == hi collapses to Exact so constraint keys stay canonical.
func NewInterval(lo, hi *big.Int) Item {
	if lo.Cmp(hi) == 0 {
		return Exact{value: lo}
	}
	return Interval{lo: lo, hi: hi}
}

// Lo returns the lower bound.
func (i Interval) Lo() *big.Int { return i.lo }

// Hi returns the upper bound.
func (i Interval) Hi() *big.Int { return i.hi }

func (i Interval) Match(v *big.Int) bool {
	return i.lo.Cmp(v) <= 0 && v.Cmp(i.hi) <= 0
}

func (i Interval) Equal(other Item) bool {
	o, ok := other.(Interval)
	return ok && i.lo.Cmp(o.lo) == 0 && i.hi.Cmp(o.hi) == 0
}

func (i Interval) Size() (*big.Int, bool) {
	size := new(big.Int).Sub(i.hi, i.lo)
	size.Add(size, big.NewInt(1))
	return size, true
}

func (i Interval) Enumerate() []*big.Int {
	var values []*big.Int
	v := new(big.Int).Set(i.lo)
	for v.Cmp(i.hi) <= 0 {
		values = append(values, new(big.Int).Set(v))
		v = new(big.Int).Add(v, big.NewInt(1))
	}
	return values
}

func (i Interval) String() string {
	return i.lo.String() + ".." + i.hi.String()
}

func (Interval) isItem() {}

// Set matches any member of a finite value set.
type Set struct {
	values []*big.Int // ascending, unique
}

// NewSet creates a Set constraint from the given values. Duplicates are
// removed; a singleton collapses to Exact.
func NewSet(values ...*big.Int) Item {
	sorted := make([]*big.Int, 0, len(values))
	for _, v := range values {
		sorted = append(sorted, v)
	}
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].Cmp(sorted[b]) < 0 })
	unique := sorted[:0]
	for _, v := range sorted {
		if len(unique) == 0 || unique[len(unique)-1].Cmp(v) != 0 {
			unique = append(unique, v)
		}
	}
	if len(unique) == 1 {
		return Exact{value: unique[0]}
	}
	return Set{values: unique}
}

func (s Set) Match(v *big.Int) bool {
	idx := sort.Search(len(s.values), func(i int) bool { return s.values[i].Cmp(v) >= 0 })
	return idx < len(s.values) && s.values[idx].Cmp(v) == 0
}

func (s Set) Equal(other Item) bool {
	o, ok := other.(Set)
	if !ok || len(s.values) != len(o.values) {
		return false
	}
	for i := range s.values {
		if s.values[i].Cmp(o.values[i]) != 0 {
			return false
		}
	}
	return true
}

func (s Set) Size() (*big.Int, bool) { return big.NewInt(int64(len(s.values))), true }

func (s Set) Enumerate() []*big.Int { return s.values }

func (s Set) String() string {
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

func (Set) isItem() {}

// LowerBound matches v >= lo.
type LowerBound struct {
	lo *big.Int
}

// NewLowerBound creates a LowerBound constraint.
func NewLowerBound(lo *big.Int) LowerBound {
	return LowerBound{lo: lo}
}

// Lo returns the lower bound.
func (l LowerBound) Lo() *big.Int { return l.lo }

func (l LowerBound) Match(v *big.Int) bool { return l.lo.Cmp(v) <= 0 }

func (l LowerBound) Equal(other Item) bool {
	o, ok := other.(LowerBound)
	return ok && l.lo.Cmp(o.lo) == 0
}

func (LowerBound) Size() (*big.Int, bool) { return nil, false }

func (LowerBound) Enumerate() []*big.Int { return nil }

func (l LowerBound) String() string { return l.lo.String() + ".." }

func (LowerBound) isItem() {}

// UpperBound matches v <= hi.
type UpperBound struct {
	hi *big.Int
}

// NewUpperBound creates an UpperBound constraint.
func NewUpperBound(hi *big.Int) UpperBound {
	return UpperBound{hi: hi}
}

// Hi returns the upper bound.
func (u UpperBound) Hi() *big.Int { return u.hi }

func (u UpperBound) Match(v *big.Int) bool { return v.Cmp(u.hi) <= 0 }

func (u UpperBound) Equal(other Item) bool {
	o, ok := other.(UpperBound)
	return ok && u.hi.Cmp(o.hi) == 0
}

func (UpperBound) Size() (*big.Int, bool) { return nil, false }

func (UpperBound) Enumerate() []*big.Int { return nil }

func (u UpperBound) String() string { return ".." + u.hi.String() }

func (UpperBound) isItem() {}
