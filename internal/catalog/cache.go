package catalog

import (
	"math/big"

	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// Cache memoizes leading values per sequence. Registered sequences get a
// prefetched prefix of at least the configured size, so repeated pattern
// tests during a search do not re-walk iterator-defined sequences (primes
// especially) from scratch.
type Cache struct {
	size   int
	seqs   map[string]seq.Sequence
	values map[string][]*big.Int
	tried  map[string]int // longest prefix ever requested, caps re-evaluation
	order  []string
}

// NewCache creates a cache with the given prefetch floor.
func NewCache(size int) *Cache {
	return &Cache{
		size:   size,
		seqs:   make(map[string]seq.Sequence),
		values: make(map[string][]*big.Int),
		tried:  make(map[string]int),
	}
}

// Size returns the prefetch floor.
func (c *Cache) Size() int { return c.size }

// Len returns the number of registered sequences.
func (c *Cache) Len() int { return len(c.order) }

// Register adds s to the cache. Values are produced lazily on first use.
func (c *Cache) Register(s seq.Sequence) {
	key := s.Key()
	if _, dup := c.seqs[key]; dup {
		return
	}
	c.seqs[key] = s
	c.order = append(c.order, key)
}

// Values returns up to n leading values of s, memoized when s is
// registered. Like seq.Values the result is truncated at the first
// evaluation error.
func (c *Cache) Values(s seq.Sequence, n int) []*big.Int {
	key := s.Key()
	if _, registered := c.seqs[key]; !registered {
		return seq.Values(s, n)
	}
	cached := c.values[key]
	if len(cached) < n && c.tried[key] < n {
		want := n
		if c.size > want {
			want = c.size
		}
		cached = seq.Values(s, want)
		c.values[key] = cached
		c.tried[key] = want
	}
	if len(cached) > n {
		return cached[:n]
	}
	return cached
}

// Matches reports whether s satisfies the run on every position. A sequence
// that cannot produce enough values does not match.
func (c *Cache) Matches(s seq.Sequence, run *item.Items) bool {
	values := c.Values(s, run.Len())
	return run.Match(values)
}

// MatchingSequences returns the registered sequences satisfying the run, in
// registration order.
func (c *Cache) MatchingSequences(run *item.Items) []seq.Sequence {
	var out []seq.Sequence
	for _, key := range c.order {
		s := c.seqs[key]
		if c.Matches(s, run) {
			out = append(out, s)
		}
	}
	return out
}
