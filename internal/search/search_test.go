package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqwell/seqwell/internal/seq"
)

// End-to-end derivations exercising the recursive strategies through the
// full scheduler.

func TestSearch_Geometric(t *testing.T) {
	m := newTestManager(t, 5)
	run := mustItems(t, "2 4 8 16 32")
	results, err := m.Search(context.Background(), run, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	matchesRun(t, results[0], run)
}

func TestSearch_MulDecomposition(t *testing.T) {
	// n * 2**n needs a recursive split: no direct strategy covers it.
	m := newTestManager(t, 5)
	run := mustItems(t, "0 2 8 24 64")
	results, err := m.Search(context.Background(), run, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	matchesRun(t, results[0], run)
}

func TestSearch_ConstPowDecomposition(t *testing.T) {
	// Squares of the primes.
	m := newTestManager(t, 4)
	run := mustItems(t, "4 9 25 49")
	results, err := m.Search(context.Background(), run, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	matchesRun(t, results[0], run)
}

func TestSearch_ScaledPrimes(t *testing.T) {
	// 6 * p.
	m := newTestManager(t, 5)
	run := mustItems(t, "12 18 30 42 66")
	results, err := m.Search(context.Background(), run, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	matchesRun(t, results[0], run)
}

func TestSearch_SummationDecomposition(t *testing.T) {
	// Partial sums of the primes.
	m := newTestManager(t, 5)
	run := mustItems(t, "2 5 10 17 28")
	results, err := m.Search(context.Background(), run, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	matchesRun(t, results[0], run)
}

func TestSearch_StopAtNumCollectsSeveral(t *testing.T) {
	m := newTestManager(t, 5)
	run := mustItems(t, "0 1 2 3 4")
	handler := StopAtNum(2)
	results, err := m.Search(context.Background(), run, handler)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(results), 1)
	for _, s := range results {
		matchesRun(t, s, run)
	}
	// The collector keeps the cheapest derivation first.
	best, ok := handler.Collector().Best()
	require.True(t, ok)
	assert.Equal(t, "i", best.Seq.Key())
}

func TestSearch_ResultsAreDeduped(t *testing.T) {
	m := newTestManager(t, 5)
	run := mustItems(t, "1 2 3 4 5")
	results, err := m.Search(context.Background(), run, StopAtNum(3))
	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, s := range results {
		key := s.Key()
		assert.False(t, seen[key], "duplicate result %s", key)
		seen[key] = true
		matchesRun(t, s, run)
	}
}

func TestSearch_InterleavedRun(t *testing.T) {
	// zero_one is interleaved zeros and ones; the catalog already knows it,
	// so this exercises the pattern path end to end.
	m := newTestManager(t, 6)
	run := mustItems(t, "0 1 0 1 0 1")
	results, err := m.Search(context.Background(), run, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "zero_one", results[0].Key())
}

func TestSearch_RoundrobinDecomposition(t *testing.T) {
	// Interleaving of square and power_of_2 over 8 positions. No direct
	// strategy covers it; the strided sub-runs resolve via the catalog.
	m := newTestManager(t, 8)
	run := mustItems(t, "0 1 1 2 4 4 9 8")
	results, err := m.Search(context.Background(), run, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	matchesRun(t, results[0], run)
}

func TestRoundrobinContinuation_CombinesGroups(t *testing.T) {
	m := NewManager(8, WithLogger(quietLogger()))
	run := mustItems(t, "0 1 1 2 4 4 9 8")

	cont := &rrContinuation{orig: run, level: 2, rank: 1, maxCombos: 32}
	// First stride resolves to square; the continuation schedules the second.
	out := cont.Resolved(m, []seq.Sequence{seq.PowerOf(2)})
	assert.Empty(t, out)
	require.Len(t, m.queue, 1)
	assert.Equal(t, "1 2 4 8", m.queue[0].run.Key())

	next, ok := m.queue[0].continuations[0].(*rrContinuation)
	require.True(t, ok)
	out = next.Resolved(m, []seq.Sequence{seq.Geometric(bigSlice(2)[0])})
	require.Len(t, out, 1)
	matchesRun(t, out[0], run)
}
