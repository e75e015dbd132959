// Package search implements the derivation engine: a rank-ordered scheduler
// over pattern runs, a set of pluggable search strategies, and result
// collection policies.
//
// Strategies either resolve a run directly or decompose it into sub-runs and
// park a continuation; when a sub-run is resolved the continuation combines
// the partial answers and the discovery propagates breadth-first through
// every run that was waiting on it.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/seqwell/seqwell/internal/catalog"
	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

// Defaults for the scheduler budgets.
const (
	DefaultMaxRank  = 4
	DefaultMaxSteps = 4000
)

// BudgetError reports that a search budget was exhausted. The results
// gathered up to that point are still valid; callers treat this as a
// truncated search, not a failure.
type BudgetError struct {
	Budget string
	Limit  int
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("%s budget exhausted (limit %d)", e.Budget, e.Limit)
}

// IsBudgetError reports whether err wraps a *BudgetError.
func IsBudgetError(err error) bool {
	var be *BudgetError
	return errors.As(err, &be)
}

// Continuation is a parked resume point: a strategy queued a sub-run and
// waits for its sequences. All captured state is fixed at creation.
type Continuation interface {
	// Target returns the run this continuation completes.
	Target() *item.Items
	// Resolved combines sequences found for the sub-run into sequences for
	// the target run. It may enqueue further sub-runs on m.
	Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence
}

// entry is one queued (or previously queued) run.
type entry struct {
	rank          int
	run           *item.Items
	continuations []Continuation
	queued        bool
}

func (e *entry) less(other *entry) bool {
	if e.rank != other.rank {
		return e.rank < other.rank
	}
	// More waiters first: resolving it unblocks more of the tree.
	return len(e.continuations) > len(other.continuations)
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxRank caps the recursion rank; sub-runs above the cap are dropped
// at enqueue time.
func WithMaxRank(n int) Option { return func(m *Manager) { m.maxRank = n } }

// WithMaxSteps caps the number of scheduler iterations per search.
func WithMaxSteps(n int) Option { return func(m *Manager) { m.maxSteps = n } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.logger = l } }

// WithRegistry replaces the default sequence registry.
func WithRegistry(r *seq.Registry) Option { return func(m *Manager) { m.registry = r } }

// Manager owns one search session: the catalog seeded from the registry,
// the value cache, the strategy list and the run queue.
type Manager struct {
	size     int
	maxRank  int
	maxSteps int
	logger   *slog.Logger

	registry   *seq.Registry
	catalog    *catalog.Catalog
	cache      *catalog.Cache
	algorithms []Algorithm

	queue   []*entry
	entries map[string]*entry
}

// NewManager creates a session over runs of up to size positions.
func NewManager(size int, opts ...Option) *Manager {
	m := &Manager{
		size:     size,
		maxRank:  DefaultMaxRank,
		maxSteps: DefaultMaxSteps,
		logger:   slog.Default(),
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = seq.Default()
	}
	m.catalog = catalog.New(size)
	m.cache = catalog.NewCache(max(size, 100))
	for _, e := range m.registry.Entries() {
		m.catalog.Register(nil, e.Seq)
		m.cache.Register(e.Seq)
	}
	return m
}

// Size returns the run length the session indexes on.
func (m *Manager) Size() int { return m.size }

// Registry returns the session registry.
func (m *Manager) Registry() *seq.Registry { return m.registry }

// Catalog returns the session catalog.
func (m *Manager) Catalog() *catalog.Catalog { return m.catalog }

// Cache returns the session value cache.
func (m *Manager) Cache() *catalog.Cache { return m.cache }

// AddAlgorithm appends a strategy. Strategy order is part of the search
// contract: earlier strategies see each run first and cheap direct lookups
// must come before decomposing ones.
func (m *Manager) AddAlgorithm(a Algorithm) {
	m.algorithms = append(m.algorithms, a)
}

// Algorithms returns the registered strategies in order.
func (m *Manager) Algorithms() []Algorithm { return m.algorithms }

// Enqueue schedules a run at the given rank with the given continuations.
// A run already known to the session is merged instead of duplicated: it
// keeps the minimum rank and the union of continuations, and is re-sorted
// only while it still sits in the queue. Runs above the rank budget are
// dropped.
func (m *Manager) Enqueue(run *item.Items, rank int, continuations ...Continuation) {
	if rank > m.maxRank {
		m.logger.Debug("enqueue rejected", "run", run.Key(), "rank", rank, "max_rank", m.maxRank)
		return
	}
	key := run.Key()
	e, known := m.entries[key]
	if known {
		requeue := e.queued
		if requeue {
			m.removeQueued(e)
		}
		if rank < e.rank {
			e.rank = rank
		}
		e.continuations = append(e.continuations, continuations...)
		// A run that already left the queue keeps collecting waiters; they
		// fire when the run is resolved through a later discovery.
		if !requeue {
			return
		}
	} else {
		e = &entry{rank: rank, run: run, continuations: continuations}
		m.entries[key] = e
	}
	m.insertQueued(e)
	m.logger.Debug("enqueued", "run", key, "rank", e.rank, "waiters", len(e.continuations))
}

func (m *Manager) removeQueued(e *entry) {
	for i, q := range m.queue {
		if q == e {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			break
		}
	}
	e.queued = false
}

func (m *Manager) insertQueued(e *entry) {
	idx := sort.Search(len(m.queue), func(i int) bool { return !m.queue[i].less(e) })
	m.queue = append(m.queue, nil)
	copy(m.queue[idx+1:], m.queue[idx:])
	m.queue[idx] = e
	e.queued = true
}

// Search derives sequences matching the run. Results stream into the
// handler's collector; the returned slice is the accepted sequences in
// discovery order. A nil handler stops at the first match. Exhausting the
// step budget returns the results gathered so far together with a
// *BudgetError.
func (m *Manager) Search(ctx context.Context, run *item.Items, handler Handler) ([]seq.Sequence, error) {
	if handler == nil {
		handler = StopAtFirst()
	}
	m.logger.Info("search started", "run", run.Key(), "algorithms", len(m.algorithms))
	m.Enqueue(run, 0, &acceptContinuation{handler: handler})

	var results []seq.Sequence
	steps := 0
	for len(m.queue) > 0 {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		steps++
		if steps > m.maxSteps {
			m.logger.Warn("step budget exhausted", "steps", m.maxSteps, "results", len(results))
			return results, &BudgetError{Budget: "steps", Limit: m.maxSteps}
		}

		e := m.queue[0]
		m.queue = m.queue[1:]
		e.queued = false
		m.logger.Debug("processing", "run", e.run.Key(), "rank", e.rank, "queued", len(m.queue))

		done := false
		for _, a := range m.algorithms {
			found := m.runAlgorithm(a, e.run, e.rank)
			if len(found) > 0 {
				m.logger.Debug("found", "algorithm", a.Name(), "run", e.run.Key(), "count", len(found))
				m.setFound(e.run, found)
			}
			results = append(results, handler.Collector().DrainPartials()...)
			if handler.Done() {
				done = true
				break
			}
		}
		if done {
			break
		}
	}
	m.logger.Info("search finished", "run", run.Key(), "results", len(results), "steps", steps)
	return results, nil
}

// runAlgorithm applies the framework gate: length check, and for strategies
// requiring fully defined runs an automatic retry on the longest exact
// prefix with full-run verification of every candidate.
func (m *Manager) runAlgorithm(a Algorithm, run *item.Items, rank int) []seq.Sequence {
	if run.Len() < a.MinItems() {
		return nil
	}
	if run.IsFullyDefined() || a.AcceptsUndefined() {
		return a.Search(m, run, rank)
	}
	prefix := run.PrefixItems()
	if prefix.Len() < a.MinItems() {
		return nil
	}
	var verified []seq.Sequence
	for _, s := range a.Search(m, prefix, rank) {
		if m.cache.Matches(s, run) {
			verified = append(verified, s)
		}
	}
	return verified
}

// setFound registers discoveries and propagates them breadth-first through
// the continuations parked on each resolved run. Each target run is fed at
// most once per propagation.
func (m *Manager) setFound(run *item.Items, sequences []seq.Sequence) {
	type wave struct {
		run       *item.Items
		sequences []seq.Sequence
	}
	managed := make(map[string]bool)
	current := []wave{{run: run, sequences: sequences}}
	for len(current) > 0 {
		var next []wave
		for _, w := range current {
			for _, s := range w.sequences {
				s = m.registry.Intern(s)
				m.cache.Register(s)
				m.catalog.Register(m.cache.Values(s, m.size), s)
			}
			e, ok := m.entries[w.run.Key()]
			if !ok {
				continue
			}
			for _, cont := range e.continuations {
				completed := dedupSequences(cont.Resolved(m, w.sequences))
				if len(completed) == 0 {
					continue
				}
				target := cont.Target()
				if managed[target.Key()] {
					continue
				}
				managed[target.Key()] = true
				next = append(next, wave{run: target, sequences: completed})
			}
		}
		current = next
	}
}

func dedupSequences(sequences []seq.Sequence) []seq.Sequence {
	if len(sequences) < 2 {
		return sequences
	}
	seen := make(map[string]bool, len(sequences))
	out := sequences[:0]
	for _, s := range sequences {
		key := s.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// acceptContinuation feeds top-level discoveries into the handler.
type acceptContinuation struct {
	handler Handler
}

func (c *acceptContinuation) Target() *item.Items { return item.New() }

func (c *acceptContinuation) Resolved(m *Manager, sequences []seq.Sequence) []seq.Sequence {
	return c.handler.Collector().Add(sequences...)
}
