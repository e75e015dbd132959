package search

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqwell/seqwell/internal/item"
	"github.com/seqwell/seqwell/internal/seq"
)

func matchesRun(t *testing.T, s seq.Sequence, run *item.Items) {
	t.Helper()
	values := run.Values()
	require.NotNil(t, values)
	assert.True(t, seq.Matches(s, values), "%s does not match %s", s, run)
}

func TestDefaultAlgorithms(t *testing.T) {
	algorithms := DefaultAlgorithms()
	require.Len(t, algorithms, 23)
	assert.Equal(t, NameCatalog, algorithms[0].Name())
	assert.Equal(t, NameRoundrobin, algorithms[len(algorithms)-1].Name())

	_, err := NewAlgorithm("bogus")
	assert.Error(t, err)

	assert.True(t, KnownAlgorithmName(NamePolynomial))
	assert.False(t, KnownAlgorithmName("bogus"))
}

func TestCatalogAlgorithm(t *testing.T) {
	m := NewManager(5, WithLogger(quietLogger()))
	a := &CatalogAlgorithm{}
	found := a.Search(m, mustItems(t, "2 3 5 7 11"), 0)
	require.NotEmpty(t, found)
	assert.Equal(t, "p", found[0].Key())

	assert.Empty(t, a.Search(m, mustItems(t, "9 9 9 9 9"), 0))
}

func TestConstAlgorithm(t *testing.T) {
	m := NewManager(3, WithLogger(quietLogger()))
	a := &ConstAlgorithm{}
	found := a.Search(m, mustItems(t, "7 7 7"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "7", found[0].Key())

	assert.Empty(t, a.Search(m, mustItems(t, "7 7 8"), 0))
}

func TestArithmeticAlgorithm(t *testing.T) {
	m := NewManager(4, WithLogger(quietLogger()))
	a := &ArithmeticAlgorithm{}

	found := a.Search(m, mustItems(t, "5 8 11 14"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "arithmetic(5,3)", found[0].Key())

	found = a.Search(m, mustItems(t, "0 1 2 3"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "i", found[0].Key())

	assert.Empty(t, a.Search(m, mustItems(t, "1 2 4 8"), 0))
}

func TestGeometricAlgorithm(t *testing.T) {
	m := NewManager(4, WithLogger(quietLogger()))
	a := &GeometricAlgorithm{}

	found := a.Search(m, mustItems(t, "1 3 9 27"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "geometric(3)", found[0].Key())

	// Shifted and scaled: 1 + 2**n.
	run := mustItems(t, "2 3 5 9 17")
	found = a.Search(m, run, 0)
	require.Len(t, found, 1)
	matchesRun(t, found[0], run)

	assert.Empty(t, a.Search(m, mustItems(t, "1 2 3 4"), 0))
}

func TestAffineAlgorithm(t *testing.T) {
	m := NewManager(5, WithLogger(quietLogger()))
	a := &AffineAlgorithm{}

	// 2 + square.
	run := mustItems(t, "2 3 6 11 18")
	found := a.Search(m, run, 0)
	require.NotEmpty(t, found)
	for _, s := range found {
		matchesRun(t, s, run)
	}
}

func TestPowerAlgorithm(t *testing.T) {
	m := NewManager(4, WithLogger(quietLogger()))
	a := &PowerAlgorithm{}

	found := a.Search(m, mustItems(t, "0 1 8 27"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "power(3)", found[0].Key())

	assert.Empty(t, a.Search(m, mustItems(t, "0 1 8 28"), 0))
	assert.Empty(t, a.Search(m, mustItems(t, "1 1 8 27"), 0))
}

func TestFibonacciAlgorithm(t *testing.T) {
	m := NewManager(6, WithLogger(quietLogger()))
	a := &FibonacciAlgorithm{}

	found := a.Search(m, mustItems(t, "1 1 2 3 5 8"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "fib(1,1,1)", found[0].Key())

	// Scaled seeds factor out: 2 * fib11.
	run := mustItems(t, "2 2 4 6 10 16")
	found = a.Search(m, run, 0)
	require.Len(t, found, 1)
	matchesRun(t, found[0], run)

	// Pell recurrence: f(n) = 2*f(n-1) + f(n-2).
	found = a.Search(m, mustItems(t, "0 1 2 5 12 29"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "fib(0,1,2)", found[0].Key())

	assert.Empty(t, a.Search(m, mustItems(t, "1 2 4 8 16 32"), 0))
}

func TestTribonacciAlgorithm(t *testing.T) {
	m := NewManager(6, WithLogger(quietLogger()))
	a := &TribonacciAlgorithm{}

	found := a.Search(m, mustItems(t, "0 0 1 1 2 4"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "trib(0,0,1)", found[0].Key())

	assert.Empty(t, a.Search(m, mustItems(t, "0 0 1 1 2 5"), 0))
}

func TestPolynomialAlgorithm(t *testing.T) {
	m := NewManager(5, WithLogger(quietLogger()))
	a := NewPolynomialAlgorithm(3, 5)

	// 1 + n**3.
	run := mustItems(t, "1 2 9 28 65")
	found := a.Search(m, run, 0)
	require.NotEmpty(t, found)
	matchesRun(t, found[0], run)

	// Non-integer coefficients are rejected.
	assert.Empty(t, a.Search(m, mustItems(t, "1 2 4 9 28"), 0))
}

func TestRepunitAlgorithm(t *testing.T) {
	m := NewManager(4, WithLogger(quietLogger()))
	a := &RepunitAlgorithm{}

	found := a.Search(m, mustItems(t, "1 11 111 1111"), 0)
	require.Len(t, found, 1)
	assert.Equal(t, "repunit(10)", found[0].Key())

	// Shifted: 4 + repunit(3).
	run := mustItems(t, "5 8 17 44")
	found = a.Search(m, run, 0)
	require.Len(t, found, 1)
	matchesRun(t, found[0], run)

	// Base below 2 never applies.
	assert.Empty(t, a.Search(m, mustItems(t, "5 5 5 5"), 0))
	assert.Empty(t, a.Search(m, mustItems(t, "5 6 7 8"), 0))
}

func bigSlice(values ...int64) []*big.Int {
	out := make([]*big.Int, len(values))
	for i, v := range values {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestAffineSolve(t *testing.T) {
	x := bigSlice(0, 1, 2, 3)
	y := bigSlice(5, 8, 11, 14)
	m, q, ok := affineSolve(x, y)
	require.True(t, ok)
	assert.Equal(t, int64(3), m.Int64())
	assert.Equal(t, int64(5), q.Int64())

	// Degenerate: all x equal.
	m, q, ok = affineSolve(bigSlice(2, 2, 2), bigSlice(7, 7, 7))
	require.True(t, ok)
	assert.Equal(t, int64(3), m.Int64())
	assert.Equal(t, int64(1), q.Int64())

	_, _, ok = affineSolve(bigSlice(0, 1, 2), bigSlice(0, 1, 3))
	assert.False(t, ok)
}
