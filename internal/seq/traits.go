package seq

import "strings"

// Trait is a bitmask of known structural properties of a named sequence.
// Traits drive index-selection in the composition strategy: only an
// injective, positive, reasonably slow-growing sequence is usable as an
// inner index.
type Trait uint16

const (
	// TraitInjective: every value occurs at most once.
	TraitInjective Trait = 1 << iota
	// TraitPositive: every value is >= 0.
	TraitPositive
	// TraitNonZero: no value is 0.
	TraitNonZero
	// TraitIncreasing: values never decrease.
	TraitIncreasing
	// TraitSlow: producing values is expensive; strategies should limit
	// how deep they evaluate.
	TraitSlow
	// TraitFastGrowing: values explode quickly; unusable as an inner index.
	TraitFastGrowing
	// TraitPartiallyKnown: only a finite prefix can be produced.
	TraitPartiallyKnown
)

// Has reports whether all bits of q are set.
func (t Trait) Has(q Trait) bool { return t&q == q }

func (t Trait) String() string {
	if t == 0 {
		return "none"
	}
	names := []struct {
		bit  Trait
		name string
	}{
		{TraitInjective, "injective"},
		{TraitPositive, "positive"},
		{TraitNonZero, "non_zero"},
		{TraitIncreasing, "increasing"},
		{TraitSlow, "slow"},
		{TraitFastGrowing, "fast_growing"},
		{TraitPartiallyKnown, "partially_known"},
	}
	var parts []string
	for _, n := range names {
		if t.Has(n.bit) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}
