// Package catalog indexes known sequences by their leading values and
// memoizes sequence evaluation for the search strategies.
package catalog

import (
	"math/big"
	"sort"

	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// Catalog is a prefix index: every registered sequence is filed under its
// first Size values, so a fully defined query run resolves with a binary
// search instead of a scan. Discoveries made during a search are registered
// back, so later lookups of the same values hit the index directly.
type Catalog struct {
	size     int
	prefixes [][]*big.Int              // lexicographically sorted
	groups   []map[string]seq.Sequence // parallel to prefixes, keyed by structural key
	all      map[string]struct{}
}

// New creates a catalog filing sequences under their first size values.
func New(size int) *Catalog {
	return &Catalog{size: size, all: make(map[string]struct{})}
}

// Size returns the prefix length sequences are filed under.
func (c *Catalog) Size() int { return c.size }

// Len returns the number of distinct prefixes.
func (c *Catalog) Len() int { return len(c.prefixes) }

// NumSequences returns the number of registered sequences.
func (c *Catalog) NumSequences() int { return len(c.all) }

// Contains reports whether s is already registered.
func (c *Catalog) Contains(s seq.Sequence) bool {
	_, ok := c.all[s.Key()]
	return ok
}

// Register files the given sequences. Already registered sequences are
// skipped, so registration is idempotent. When values holds at least Size
// known leading values they are used as the shared filing prefix; otherwise
// each sequence is evaluated for its own prefix (truncated at the first
// evaluation error, so partially known sequences are filed under what they
// can produce).
func (c *Catalog) Register(values []*big.Int, sequences ...seq.Sequence) {
	fresh := make([]seq.Sequence, 0, len(sequences))
	for _, s := range sequences {
		key := s.Key()
		if _, dup := c.all[key]; dup {
			continue
		}
		c.all[key] = struct{}{}
		fresh = append(fresh, s)
	}
	if len(fresh) == 0 {
		return
	}
	if len(values) >= c.size {
		c.insert(values[:c.size], fresh)
		return
	}
	for _, s := range fresh {
		c.insert(seq.Values(s, c.size), []seq.Sequence{s})
	}
}

func (c *Catalog) insert(prefix []*big.Int, sequences []seq.Sequence) {
	idx := sort.Search(len(c.prefixes), func(i int) bool {
		return comparePrefix(c.prefixes[i], prefix) >= 0
	})
	if idx < len(c.prefixes) && comparePrefix(c.prefixes[idx], prefix) == 0 {
		for _, s := range sequences {
			c.groups[idx][s.Key()] = s
		}
		return
	}
	group := make(map[string]seq.Sequence, len(sequences))
	for _, s := range sequences {
		group[s.Key()] = s
	}
	c.prefixes = append(c.prefixes, nil)
	copy(c.prefixes[idx+1:], c.prefixes[idx:])
	c.prefixes[idx] = prefix
	c.groups = append(c.groups, nil)
	copy(c.groups[idx+1:], c.groups[idx:])
	c.groups[idx] = group
}

// EachEntry visits every (prefix, sequences) pair in prefix order. The
// sequence list of each group is sorted by structural key.
func (c *Catalog) EachEntry(visit func(values []*big.Int, sequences []seq.Sequence)) {
	for i, prefix := range c.prefixes {
		visit(prefix, sortedGroup(c.groups[i]))
	}
}

// MatchingSequences returns the registered sequences whose filed prefix
// matches the run. Runs longer than Size are matched on their first Size
// positions only; callers verify candidates against the full run. For fully
// defined runs the index is binary searched and scanned forward; otherwise
// every prefix is pattern tested.
func (c *Catalog) MatchingSequences(run *item.Items) []seq.Sequence {
	elems := run.Elems()
	if len(elems) > c.size {
		run = item.New(elems[:c.size]...)
	}
	var out []seq.Sequence
	if run.IsFullyDefined() {
		values := run.Values()
		idx := sort.Search(len(c.prefixes), func(i int) bool {
			return comparePrefix(c.prefixes[i], values) >= 0
		})
		for ; idx < len(c.prefixes); idx++ {
			if !leadingValuesEqual(c.prefixes[idx], values) {
				break
			}
			out = append(out, sortedGroup(c.groups[idx])...)
		}
		return out
	}
	for i, prefix := range c.prefixes {
		if matchLeading(run, prefix) {
			out = append(out, sortedGroup(c.groups[i])...)
		}
	}
	return out
}

func sortedGroup(group map[string]seq.Sequence) []seq.Sequence {
	keys := make([]string, 0, len(group))
	for k := range group {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]seq.Sequence, len(keys))
	for i, k := range keys {
		out[i] = group[k]
	}
	return out
}

// comparePrefix orders value slices lexicographically; a strict leading
// slice sorts before its extensions.
func comparePrefix(a, b []*big.Int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Cmp(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// leadingValuesEqual reports whether a and b agree on their shared leading
// positions.
func leadingValuesEqual(a, b []*big.Int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i].Cmp(b[i]) != 0 {
			return false
		}
	}
	return true
}

// matchLeading pattern tests the run against the shared leading positions
// of the stored prefix.
func matchLeading(run *item.Items, prefix []*big.Int) bool {
	n := run.Len()
	if len(prefix) < n {
		n = len(prefix)
	}
	for i := 0; i < n; i++ {
		if !run.At(i).Match(prefix[i]) {
			return false
		}
	}
	return true
}
