package search

import (
	"math/big"

	"github.com/seqwell/seqwell/internal/intmath"
	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// binaryContinuation combines sequences resolved for a sub-run with the
// right-hand sequences fixed at decomposition time.
type binaryContinuation struct {
	target  *item.Items
	right   []seq.Sequence
	combine func(l, r seq.Sequence) seq.Sequence
}

func (c *binaryContinuation) Target() *item.Items { return c.target }

func (c *binaryContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	var out []seq.Sequence
	for _, l := range sequences {
		for _, r := range c.right {
			s := c.combine(l, r)
			if m.Cache().Matches(s, c.target) {
				out = append(out, s)
			}
		}
	}
	return out
}

// AddAlgorithm decomposes runs as l + r with r taken from the catalog.
type AddAlgorithm struct{}

func (*AddAlgorithm) Name() string           { return NameAdd }
func (*AddAlgorithm) MinItems() int          { return 3 }
func (*AddAlgorithm) AcceptsUndefined() bool { return false }

func (*AddAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	m.Catalog().EachEntry(func(entryValues []*big.Int, sequences []seq.Sequence) {
		if len(entryValues) < len(values) {
			return
		}
		sub := make([]*big.Int, len(values))
		for i, v := range values {
			sub[i] = new(big.Int).Sub(v, entryValues[i])
		}
		m.Enqueue(item.FromValues(sub), rank+1, &binaryContinuation{
			target:  run,
			right:   sequences,
			combine: seq.Add,
		})
	})
	return nil
}

// SubAlgorithm decomposes runs as l - r with r taken from the catalog.
type SubAlgorithm struct{}

func (*SubAlgorithm) Name() string           { return NameSub }
func (*SubAlgorithm) MinItems() int          { return 3 }
func (*SubAlgorithm) AcceptsUndefined() bool { return false }

func (*SubAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	m.Catalog().EachEntry(func(entryValues []*big.Int, sequences []seq.Sequence) {
		if len(entryValues) < len(values) {
			return
		}
		sub := make([]*big.Int, len(values))
		for i, v := range values {
			sub[i] = new(big.Int).Add(v, entryValues[i])
		}
		m.Enqueue(item.FromValues(sub), rank+1, &binaryContinuation{
			target:  run,
			right:   sequences,
			combine: seq.Sub,
		})
	})
	return nil
}

// MulAlgorithm decomposes runs as l * r with r taken from the catalog. The
// quotient must be exact at every position; a zero divisor position is
// acceptable only where the run itself is zero.
type MulAlgorithm struct{}

func (*MulAlgorithm) Name() string           { return NameMul }
func (*MulAlgorithm) MinItems() int          { return 3 }
func (*MulAlgorithm) AcceptsUndefined() bool { return false }

func (*MulAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	m.Catalog().EachEntry(func(entryValues []*big.Int, sequences []seq.Sequence) {
		if len(entryValues) < len(values) {
			return
		}
		sub := make([]item.Item, 0, len(values))
		for i, v := range values {
			r := entryValues[i]
			if r.Sign() == 0 {
				if v.Sign() != 0 {
					return
				}
				sub = append(sub, item.ANY)
				continue
			}
			q, rem, err := intmath.FloorDivMod(v, r)
			if err != nil || rem.Sign() != 0 {
				return
			}
			sub = append(sub, item.NewExact(q))
		}
		m.Enqueue(item.New(sub...), rank+1, &binaryContinuation{
			target:  run,
			right:   sequences,
			combine: seq.Mul,
		})
	})
	return nil
}

// DivAlgorithm decomposes runs as l // r with r taken from the catalog. The
// sub-run is an interval at each position, every l with floor(l/r) equal to
// the run value.
type DivAlgorithm struct{}

func (*DivAlgorithm) Name() string           { return NameDiv }
func (*DivAlgorithm) MinItems() int          { return 3 }
func (*DivAlgorithm) AcceptsUndefined() bool { return false }

func (*DivAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	m.Catalog().EachEntry(func(entryValues []*big.Int, sequences []seq.Sequence) {
		if len(entryValues) < len(values) {
			return
		}
		sub := make([]item.Item, 0, len(values))
		for i, v := range values {
			r := entryValues[i]
			if r.Sign() == 0 {
				return
			}
			lo := new(big.Int).Mul(v, r)
			hi := new(big.Int).Add(lo, r)
			if r.Sign() > 0 {
				hi.Sub(hi, big.NewInt(1))
			} else {
				lo, hi = new(big.Int).Add(hi, big.NewInt(1)), lo
			}
			sub = append(sub, item.NewInterval(lo, hi))
		}
		m.Enqueue(item.New(sub...), rank+1, &binaryContinuation{
			target:  run,
			right:   sequences,
			combine: seq.Div,
		})
	})
	return nil
}

// powCandidate is one (base, exponent) value pair for a single position.
type powCandidate struct {
	left  item.Item
	right item.Item
}

// PowAlgorithm decomposes runs as l ** r. Every position is factored into
// its possible root/exponent splits and each combination is scheduled as a
// base run; the exponent run follows once a base is resolved.
type PowAlgorithm struct {
	maxValue  *big.Int
	maxCombos int
}

// NewPowAlgorithm creates the strategy with the default magnitude cap.
func NewPowAlgorithm() *PowAlgorithm {
	return &PowAlgorithm{
		maxValue:  new(big.Int).Lsh(big.NewInt(1), 50),
		maxCombos: 100,
	}
}

func (*PowAlgorithm) Name() string           { return NamePow }
func (*PowAlgorithm) MinItems() int          { return 3 }
func (*PowAlgorithm) AcceptsUndefined() bool { return false }

func (p *PowAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	for _, v := range values {
		if v.Sign() == 0 {
			return nil
		}
	}

	// Process positions from the smallest magnitude up; anything above the
	// cap keeps a fully open candidate.
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && values[order[j]].CmpAbs(values[order[j-1]]) < 0; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	candidates := make([][]powCandidate, len(values))
	for i := range candidates {
		candidates[i] = []powCandidate{{left: item.ANY, right: item.ANY}}
	}
	found := 0
	zero := item.NewExact(big.NewInt(0))
	for _, idx := range order {
		v := values[idx]
		if v.CmpAbs(p.maxValue) > 0 {
			break
		}
		if v.CmpAbs(big.NewInt(1)) == 0 {
			if v.Sign() > 0 {
				candidates[idx] = []powCandidate{{left: item.ANY, right: zero}}
			}
			// -1 has no exponent split; the open candidate stays.
			continue
		}
		found++
		factors := intmath.Factorize(v)
		power := 0
		for _, f := range factors {
			power = int(intmath.Gcd(big.NewInt(int64(power)), big.NewInt(int64(f.Power))).Int64())
		}
		root := big.NewInt(1)
		for _, f := range factors {
			root.Mul(root, intmath.Pow(f.Prime, f.Power/power))
		}
		var list []powCandidate
		for _, xd := range intmath.DivisorsOfInt(power) {
			d := int(xd.Int64())
			if power > 1 && d == power {
				continue
			}
			exp := power / d
			if v.Sign() < 0 && exp%2 == 0 {
				continue
			}
			base := intmath.Pow(root, d)
			if v.Sign() < 0 {
				base.Neg(base)
			}
			list = append(list, powCandidate{
				left:  item.NewExact(base),
				right: item.NewExact(big.NewInt(int64(exp))),
			})
		}
		if len(list) > 0 {
			candidates[idx] = list
		}
	}
	if found < p.MinItems() {
		return nil
	}

	p.enumerate(m, run, rank, candidates)
	return nil
}

// enumerate schedules one base run per candidate combination, up to the
// combination cap.
func (p *PowAlgorithm) enumerate(m *Manager, run *item.Items, rank int, candidates [][]powCandidate) {
	idx := make([]int, len(candidates))
	for combos := 0; combos < p.maxCombos; combos++ {
		left := make([]item.Item, len(candidates))
		right := make([]item.Item, len(candidates))
		for i, c := range idx {
			left[i] = candidates[i][c].left
			right[i] = candidates[i][c].right
		}
		m.Enqueue(item.New(left...), rank+2, &powLeftContinuation{
			orig:  run,
			right: item.New(right...),
			rank:  rank,
		})
		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(candidates[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return
		}
	}
}

// powLeftContinuation waits for base sequences, then schedules the matching
// exponent run.
type powLeftContinuation struct {
	orig  *item.Items
	right *item.Items
	rank  int
}

func (c *powLeftContinuation) Target() *item.Items { return c.orig }

func (c *powLeftContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	m.Enqueue(c.right, c.rank+1, &powRightContinuation{orig: c.orig, left: sequences})
	return nil
}

// powRightContinuation combines resolved exponent sequences with the base
// sequences captured earlier.
type powRightContinuation struct {
	orig *item.Items
	left []seq.Sequence
}

func (c *powRightContinuation) Target() *item.Items { return c.orig }

func (c *powRightContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	var out []seq.Sequence
	for _, l := range c.left {
		for _, r := range sequences {
			s := seq.Pow(l, r)
			if m.Cache().Matches(s, c.orig) {
				out = append(out, s)
			}
		}
	}
	return out
}

// ConstPowAlgorithm decomposes runs as l ** c for a constant exponent c
// shared by every position.
type ConstPowAlgorithm struct {
	maxValue *big.Int
}

// NewConstPowAlgorithm creates the strategy with the default magnitude cap.
func NewConstPowAlgorithm() *ConstPowAlgorithm {
	return &ConstPowAlgorithm{maxValue: new(big.Int).Lsh(big.NewInt(1), 50)}
}

func (*ConstPowAlgorithm) Name() string           { return NameConstPow }
func (*ConstPowAlgorithm) MinItems() int          { return 3 }
func (*ConstPowAlgorithm) AcceptsUndefined() bool { return false }

func (a *ConstPowAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	type split struct {
		root  *big.Int
		power int
	}
	splits := make([]split, 0, len(values))
	common := 0
	for _, v := range values {
		root, power, ok := intmath.PerfectPower(v)
		if !ok {
			return nil
		}
		common = int(intmath.Gcd(big.NewInt(int64(common)), big.NewInt(int64(power))).Int64())
		if common <= 1 {
			return nil
		}
		splits = append(splits, split{root: root, power: power})
	}
	divisors := intmath.DivisorsOfInt(common)
	for i := len(divisors) - 1; i >= 0; i-- {
		d := int(divisors[i].Int64())
		if d <= 1 {
			continue
		}
		sub := make([]*big.Int, len(splits))
		for j, sp := range splits {
			sub[j] = intmath.Pow(sp.root, sp.power/d)
		}
		m.Enqueue(item.FromValues(sub), rank+1, &constPowContinuation{
			target: run,
			power:  d,
		})
	}
	return nil
}

// constPowContinuation raises resolved base sequences to the fixed exponent.
type constPowContinuation struct {
	target *item.Items
	power  int
}

func (c *constPowContinuation) Target() *item.Items { return c.target }

func (c *constPowContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	var out []seq.Sequence
	for _, l := range sequences {
		s := seq.Pow(l, seq.ConstInt(int64(c.power)))
		if m.Cache().Matches(s, c.target) {
			out = append(out, s)
		}
	}
	return out
}
