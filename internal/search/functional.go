package search

import (
	"math/big"

	"github.com/seqwell/seqwell/internal/intmath"
	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// wrapContinuation applies a unary constructor to each resolved operand.
type wrapContinuation struct {
	target *item.Items
	wrap   func(seq.Sequence) seq.Sequence
}

func (c *wrapContinuation) Target() *item.Items { return c.target }

func (c *wrapContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	var out []seq.Sequence
	for _, operand := range sequences {
		s := c.wrap(operand)
		if m.Cache().Matches(s, c.target) {
			out = append(out, s)
		}
	}
	return out
}

// SummationAlgorithm decomposes runs as the partial sums of an operand run.
type SummationAlgorithm struct{}

func (*SummationAlgorithm) Name() string           { return NameSummation }
func (*SummationAlgorithm) MinItems() int          { return 3 }
func (*SummationAlgorithm) AcceptsUndefined() bool { return false }

func (*SummationAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	sub := make([]*big.Int, len(values))
	last := new(big.Int)
	for i, v := range values {
		sub[i] = new(big.Int).Sub(v, last)
		last = v
	}
	m.Enqueue(item.FromValues(sub), rank+1, &wrapContinuation{
		target: run,
		wrap:   seq.Summation,
	})
	return nil
}

// ProductAlgorithm decomposes runs as the partial products of an operand run.
type ProductAlgorithm struct{}

func (*ProductAlgorithm) Name() string           { return NameProduct }
func (*ProductAlgorithm) MinItems() int          { return 3 }
func (*ProductAlgorithm) AcceptsUndefined() bool { return false }

func (*ProductAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	values := run.Values()
	sub := make([]*big.Int, len(values))
	last := big.NewInt(1)
	for i, v := range values {
		if last.Sign() == 0 {
			sub[i] = big.NewInt(0)
		} else {
			q, rem, err := intmath.FloorDivMod(v, last)
			if err != nil || rem.Sign() != 0 {
				return nil
			}
			sub[i] = q
		}
		last = v
	}
	m.Enqueue(item.FromValues(sub), rank+1, &wrapContinuation{
		target: run,
		wrap:   seq.Product,
	})
	return nil
}

// IntegralAlgorithm decomposes runs as the integral of their first
// differences.
type IntegralAlgorithm struct{}

func (*IntegralAlgorithm) Name() string           { return NameIntegral }
func (*IntegralAlgorithm) MinItems() int          { return 3 }
func (*IntegralAlgorithm) AcceptsUndefined() bool { return false }

func (*IntegralAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	start := run.Values()[0]
	m.Enqueue(run.Derivative(), rank+1, &wrapContinuation{
		target: run,
		wrap: func(operand seq.Sequence) seq.Sequence {
			return seq.Simplify(seq.Integral(operand, start))
		},
	})
	return nil
}

// DerivativeAlgorithm decomposes runs as the first differences of their
// integral.
type DerivativeAlgorithm struct{}

func (*DerivativeAlgorithm) Name() string           { return NameDerivative }
func (*DerivativeAlgorithm) MinItems() int          { return 3 }
func (*DerivativeAlgorithm) AcceptsUndefined() bool { return false }

func (*DerivativeAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	m.Enqueue(run.Integral(), rank+1, &wrapContinuation{
		target: run,
		wrap: func(operand seq.Sequence) seq.Sequence {
			return seq.Simplify(seq.Derivative(operand))
		},
	})
	return nil
}
