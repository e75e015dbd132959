package catalog

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

func mustItems(t *testing.T, literals ...string) *item.Items {
	t.Helper()
	run, err := item.ParseItems(literals...)
	require.NoError(t, err)
	return run
}

func keys(sequences []seq.Sequence) []string {
	out := make([]string, len(sequences))
	for i, s := range sequences {
		out[i] = s.Key()
	}
	return out
}

func TestCatalog_RegisterAndLookup(t *testing.T) {
	c := New(5)
	c.Register(nil, seq.Natural(), seq.PowerOf(2))
	assert.Equal(t, 2, c.NumSequences())

	got := c.MatchingSequences(mustItems(t, "1 2 3 4 5"))
	require.Len(t, got, 1)
	assert.Equal(t, "n", got[0].Key())

	got = c.MatchingSequences(mustItems(t, "0 1 4 9 16"))
	require.Len(t, got, 1)
	assert.Equal(t, "square", got[0].String())
}

func TestCatalog_RegisterIdempotent(t *testing.T) {
	c := New(5)
	c.Register(nil, seq.Natural())
	c.Register(nil, seq.Natural())
	assert.Equal(t, 1, c.NumSequences())
	assert.Equal(t, 1, c.Len())
	assert.True(t, c.Contains(seq.Natural()))
}

func TestCatalog_SharedPrefixGroup(t *testing.T) {
	// Two expressions with identical leading values share one index entry.
	c := New(4)
	a := seq.Natural()
	b := seq.Add(seq.Integer(), seq.ConstInt(1))
	c.Register(nil, a, b)
	assert.Equal(t, 1, c.Len())
	got := c.MatchingSequences(mustItems(t, "1 2 3 4"))
	assert.Len(t, got, 2)
}

func TestCatalog_RegisterWithKnownValues(t *testing.T) {
	c := New(3)
	values := []*big.Int{big.NewInt(9), big.NewInt(9), big.NewInt(9)}
	c.Register(values, seq.ConstInt(9))
	got := c.MatchingSequences(mustItems(t, "9 9 9"))
	assert.Len(t, got, 1)
}

func TestCatalog_PatternLookup(t *testing.T) {
	c := New(5)
	c.Register(nil, seq.Natural(), seq.PowerOf(2), seq.Arithmetic(big.NewInt(1), big.NewInt(2)))

	// 1 .. 3 matches n (1,2,3) and odd (1,3,5)? No: position 2 of odd is 5.
	got := c.MatchingSequences(mustItems(t, "1 .. 3"))
	assert.Equal(t, []string{"n"}, keys(got))

	got = c.MatchingSequences(mustItems(t, "1 2,3 .."))
	assert.ElementsMatch(t, []string{"n", "arithmetic(1,2)"}, keys(got))
}

func TestCatalog_LongRunTruncated(t *testing.T) {
	c := New(3)
	c.Register(nil, seq.Natural())
	// Only the first 3 positions are indexed; the mismatching tail is the
	// caller's problem to verify.
	got := c.MatchingSequences(mustItems(t, "1 2 3 999"))
	assert.Len(t, got, 1)
}

func TestCatalog_EachEntryOrdered(t *testing.T) {
	c := New(3)
	c.Register(nil, seq.Natural(), seq.ConstInt(0), seq.PowerOf(2))
	var firsts []int64
	c.EachEntry(func(values []*big.Int, sequences []seq.Sequence) {
		require.NotEmpty(t, sequences)
		firsts = append(firsts, values[0].Int64())
	})
	assert.Equal(t, []int64{0, 0, 1}, firsts)
}

func TestCache_ValuesMemoized(t *testing.T) {
	c := NewCache(10)
	s := seq.Prime()
	c.Register(s)
	v1 := c.Values(s, 3)
	require.Len(t, v1, 3)
	assert.Equal(t, int64(5), v1[2].Int64())
	// Second read is served from the prefetched prefix.
	v2 := c.Values(s, 10)
	require.Len(t, v2, 10)
	assert.Equal(t, int64(29), v2[9].Int64())
}

func TestCache_UnregisteredPassThrough(t *testing.T) {
	c := NewCache(10)
	v := c.Values(seq.Natural(), 4)
	require.Len(t, v, 4)
	assert.Equal(t, 0, c.Len())
}

func TestCache_Matches(t *testing.T) {
	c := NewCache(10)
	assert.True(t, c.Matches(seq.Natural(), mustItems(t, "1 2 .. 4")))
	assert.False(t, c.Matches(seq.Natural(), mustItems(t, "1 2 4")))
	// Error-truncated sequences cannot satisfy positions they cannot produce.
	broken := seq.Div(seq.Natural(), seq.Integer())
	assert.False(t, c.Matches(broken, mustItems(t, "..")))
}

func TestCache_MatchingSequences(t *testing.T) {
	c := NewCache(10)
	c.Register(seq.Natural())
	c.Register(seq.Integer())
	got := c.MatchingSequences(mustItems(t, "0 1 2"))
	require.Len(t, got, 1)
	assert.Equal(t, "i", got[0].Key())
}
