package search

import (
	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// RoundrobinAlgorithm decomposes runs as an interleaving of 2 or 3 strided
// sub-runs. The strides are resolved one after another; the last one
// triggers the combination.
type RoundrobinAlgorithm struct {
	maxLevel  int
	maxCombos int
}

// NewRoundrobinAlgorithm creates the strategy with the default level cap.
func NewRoundrobinAlgorithm() *RoundrobinAlgorithm {
	return &RoundrobinAlgorithm{maxLevel: 3, maxCombos: 32}
}

func (*RoundrobinAlgorithm) Name() string           { return NameRoundrobin }
func (*RoundrobinAlgorithm) MinItems() int          { return 3 }
func (*RoundrobinAlgorithm) AcceptsUndefined() bool { return true }

func (a *RoundrobinAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	for level := 2; level <= a.maxLevel; level++ {
		first := strideRun(run, 0, level)
		if first.Len() < a.MinItems() {
			continue
		}
		subRank := rank + level - 1
		m.Enqueue(first, subRank, &rrContinuation{
			orig:      run,
			level:     level,
			rank:      subRank,
			maxCombos: a.maxCombos,
		})
	}
	return nil
}

// strideRun picks every level-th element starting at offset.
func strideRun(run *item.Items, offset, level int) *item.Items {
	var elems []item.Item
	for i := offset; i < run.Len(); i += level {
		elems = append(elems, run.At(i))
	}
	return item.New(elems...)
}

// rrContinuation resolves the interleaved strides in order; each stage
// captures the sequences found for the previous ones.
type rrContinuation struct {
	orig      *item.Items
	level     int
	rank      int
	groups    [][]seq.Sequence
	maxCombos int
}

func (c *rrContinuation) Target() *item.Items { return c.orig }

func (c *rrContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	groups := append(append([][]seq.Sequence{}, c.groups...), sequences)
	if len(groups) < c.level {
		m.Enqueue(strideRun(c.orig, len(groups), c.level), c.rank, &rrContinuation{
			orig:      c.orig,
			level:     c.level,
			rank:      c.rank,
			groups:    groups,
			maxCombos: c.maxCombos,
		})
		return nil
	}
	var out []seq.Sequence
	pick := make([]int, len(groups))
	for combos := 0; combos < c.maxCombos; combos++ {
		operands := make([]seq.Sequence, len(groups))
		for i, g := range pick {
			operands[i] = groups[i][g]
		}
		s := seq.Roundrobin(operands...)
		if m.Cache().Matches(s, c.orig) {
			out = append(out, s)
		}
		pos := len(pick) - 1
		for pos >= 0 {
			pick[pos]++
			if pick[pos] < len(groups[pos]) {
				break
			}
			pick[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}
