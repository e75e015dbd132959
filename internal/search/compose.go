package search

import (
	"math/big"

	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// composeIndexed is one registry sequence with a reverse value-to-index map
// over its cached prefix.
type composeIndexed struct {
	seq     seq.Sequence
	indices map[string][]int
}

// ComposeAlgorithm decomposes runs as outer | index: every run value must
// appear in the cached prefix of a registry sequence, and the positions at
// which it appears form the index run.
type ComposeAlgorithm struct {
	groupSize   int
	cacheSize   int
	maxAbsValue *big.Int
	maxResults  int

	injective []composeIndexed
	generic   []composeIndexed
	built     bool
}

// NewComposeAlgorithm creates the strategy with its default caps.
func NewComposeAlgorithm() *ComposeAlgorithm {
	maxAbs := new(big.Int).Exp(big.NewInt(10), big.NewInt(10), nil)
	return &ComposeAlgorithm{
		groupSize:   2,
		cacheSize:   1000,
		maxAbsValue: maxAbs,
		maxResults:  10,
	}
}

func (*ComposeAlgorithm) Name() string           { return NameCompose }
func (*ComposeAlgorithm) MinItems() int          { return 5 }
func (*ComposeAlgorithm) AcceptsUndefined() bool { return false }

// buildIndex scans the registry once. Index sequences must be cheap to
// evaluate and reasonably dense, so slow and fast-growing sequences are
// skipped, as is the identity.
func (a *ComposeAlgorithm) buildIndex(m *Manager) {
	if a.built {
		return
	}
	a.built = true
	for _, e := range m.Registry().Entries() {
		if e.Seq.Key() == seq.Integer().Key() {
			continue
		}
		if e.Traits.Has(seq.TraitSlow) || e.Traits.Has(seq.TraitFastGrowing) {
			continue
		}
		values := seq.Values(e.Seq, a.cacheSize)
		indexed := composeIndexed{seq: e.Seq, indices: make(map[string][]int)}
		if e.Traits.Has(seq.TraitInjective) {
			for i, v := range values {
				indexed.indices[v.String()] = []int{i}
			}
			a.injective = append(a.injective, indexed)
			continue
		}
		for i, v := range values {
			key := v.String()
			if len(indexed.indices[key]) < a.groupSize {
				indexed.indices[key] = append(indexed.indices[key], i)
			}
			if v.CmpAbs(a.maxAbsValue) > 0 {
				break
			}
		}
		a.generic = append(a.generic, indexed)
	}
}

func (a *ComposeAlgorithm) Search(m *Manager, run *item.Items, rank int) []seq.Sequence {
	a.buildIndex(m)
	values := run.Values()
	subRank := rank + 1
	if rank == 0 {
		subRank = 0
	}

	for _, indexed := range a.injective {
		indices := make([]int64, 0, len(values))
		for _, v := range values {
			pos, ok := indexed.indices[v.String()]
			if !ok {
				break
			}
			indices = append(indices, int64(pos[0]))
		}
		if len(indices) < len(values) {
			continue
		}
		m.Enqueue(item.FromInts(indices...), subRank, &composeContinuation{
			target: run,
			outer:  indexed.seq,
		})
	}

	for _, indexed := range a.generic {
		groups := make([][]int, 0, len(values))
		for _, v := range values {
			pos, ok := indexed.indices[v.String()]
			if !ok {
				break
			}
			groups = append(groups, pos)
		}
		if len(groups) < a.MinItems() {
			continue
		}
		for _, indices := range indexProducts(groups, a.maxResults) {
			m.Enqueue(item.FromInts(indices...), subRank, &composeContinuation{
				target: run,
				outer:  indexed.seq,
			})
		}
	}
	return nil
}

// indexProducts enumerates up to limit combinations picking one index per
// group.
func indexProducts(groups [][]int, limit int) [][]int64 {
	var out [][]int64
	pick := make([]int, len(groups))
	for len(out) < limit {
		combo := make([]int64, len(groups))
		for i, c := range pick {
			combo[i] = int64(groups[i][c])
		}
		out = append(out, combo)
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

// composeContinuation pipes resolved index sequences into the fixed outer
// sequence.
type composeContinuation struct {
	target *item.Items
	outer  seq.Sequence
}

func (c *composeContinuation) Target() *item.Items { return c.target }

func (c *composeContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	var out []seq.Sequence
	for _, index := range sequences {
		s := seq.Compose(c.outer, index)
		if m.Cache().Matches(s, c.target) {
			out = append(out, s)
		}
	}
	return out
}
