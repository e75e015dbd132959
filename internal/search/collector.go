package search

import (
	"sort"

	"github.com/seqwell/seqwell/internal/seq"
)

// Result is one accepted derivation.
type Result struct {
	Seq        seq.Sequence
	Complexity int
}

// Collector accumulates accepted sequences sorted by complexity, deduped by
// simplified structural identity. Discovery order breaks complexity ties.
type Collector struct {
	results  []Result
	keys     map[string]bool
	partials []seq.Sequence
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{keys: make(map[string]bool)}
}

// Add simplifies and records the given sequences, returning those that were
// new. Duplicates of already collected results are dropped.
func (c *Collector) Add(sequences ...seq.Sequence) []seq.Sequence {
	var added []seq.Sequence
	for _, s := range sequences {
		s = seq.Simplify(s)
		key := s.Key()
		if c.keys[key] {
			continue
		}
		c.keys[key] = true
		r := Result{Seq: s, Complexity: seq.Complexity(s)}
		idx := sort.Search(len(c.results), func(i int) bool {
			return c.results[i].Complexity > r.Complexity
		})
		c.results = append(c.results, Result{})
		copy(c.results[idx+1:], c.results[idx:])
		c.results[idx] = r
		added = append(added, s)
		c.partials = append(c.partials, s)
	}
	return added
}

// Len returns the number of collected results.
func (c *Collector) Len() int { return len(c.results) }

// Results returns the collected results ordered by complexity.
func (c *Collector) Results() []Result { return c.results }

// Best returns the lowest-complexity result.
func (c *Collector) Best() (Result, bool) {
	if len(c.results) == 0 {
		return Result{}, false
	}
	return c.results[0], true
}

// DrainPartials returns the results accepted since the previous drain, in
// discovery order.
func (c *Collector) DrainPartials() []seq.Sequence {
	out := c.partials
	c.partials = nil
	return out
}

// Handler decides when a search may stop.
type Handler interface {
	Collector() *Collector
	Done() bool
}

type stopAtFirst struct{ c *Collector }

// StopAtFirst stops as soon as anything is collected.
func StopAtFirst() Handler { return &stopAtFirst{c: NewCollector()} }

func (h *stopAtFirst) Collector() *Collector { return h.c }
func (h *stopAtFirst) Done() bool            { return h.c.Len() > 0 }

type stopAtLast struct{ c *Collector }

// StopAtLast never stops early; the search runs to queue exhaustion.
func StopAtLast() Handler { return &stopAtLast{c: NewCollector()} }

func (h *stopAtLast) Collector() *Collector { return h.c }
func (h *stopAtLast) Done() bool            { return false }

type stopAtNum struct {
	c *Collector
	n int
}

// StopAtNum stops once n results are collected.
func StopAtNum(n int) Handler { return &stopAtNum{c: NewCollector(), n: n} }

func (h *stopAtNum) Collector() *Collector { return h.c }
func (h *stopAtNum) Done() bool            { return h.c.Len() >= h.n }

type stopBelowComplexity struct {
	c   *Collector
	max int
}

// StopBelowComplexity stops once a result at or below the given complexity
// is collected.
func StopBelowComplexity(max int) Handler {
	return &stopBelowComplexity{c: NewCollector(), max: max}
}

func (h *stopBelowComplexity) Collector() *Collector { return h.c }

func (h *stopBelowComplexity) Done() bool {
	best, ok := h.c.Best()
	return ok && best.Complexity <= h.max
}
