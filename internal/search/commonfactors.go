package search

import (
	"math/big"

	"github.com/seqwell/seqwell/internal/intmath"
	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// CommonFactorsAlgorithm decomposes runs as c * sub for every nontrivial
// divisor c of the run's gcd, largest divisor first.
type CommonFactorsAlgorithm struct {
	maxValue    *big.Int
	maxDivisors int
}

// NewCommonFactorsAlgorithm creates the strategy with the default gcd cap.
func NewCommonFactorsAlgorithm() *CommonFactorsAlgorithm {
	return &CommonFactorsAlgorithm{
		maxValue:    new(big.Int).Lsh(big.NewInt(1), 100),
		maxDivisors: 10,
	}
}

func (*CommonFactorsAlgorithm) Name() string           { return NameCommonFactors }
func (*CommonFactorsAlgorithm) MinItems() int          { return 3 }
func (*CommonFactorsAlgorithm) AcceptsUndefined() bool { return false }

func (a *CommonFactorsAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	g := intmath.Gcd(values...)
	if g.Cmp(a.maxValue) > 0 {
		return nil
	}
	divisors := intmath.Divisors(g)
	scheduled := 0
	for i := len(divisors) - 1; i >= 0 && scheduled < a.maxDivisors; i-- {
		d := divisors[i]
		if d.Cmp(big.NewInt(1)) <= 0 {
			continue
		}
		sub := make([]*big.Int, len(values))
		for j, v := range values {
			q, _ := intmath.FloorDiv(v, d)
			sub[j] = q
		}
		m.Enqueue(item.FromValues(sub), rank+1, &commonFactorContinuation{
			target:  run,
			divisor: d,
		})
		scheduled++
	}
	return nil
}

// commonFactorContinuation scales resolved sequences back up by the divisor.
type commonFactorContinuation struct {
	target  *item.Items
	divisor *big.Int
}

func (c *commonFactorContinuation) Target() *item.Items { return c.target }

func (c *commonFactorContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	var out []seq.Sequence
	for _, l := range sequences {
		s := seq.Mul(seq.Const(c.divisor), l)
		if m.Cache().Matches(s, c.target) {
			out = append(out, s)
		}
	}
	return out
}
