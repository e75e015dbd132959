package item

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems_FullyDefined(t *testing.T) {
	run := FromInts(1, 2, 3)
	assert.True(t, run.IsFullyDefined())
	values := run.Values()
	require.Len(t, values, 3)
	for i, v := range values {
		assert.Equal(t, int64(i+1), v.Int64())
	}
	// On a fully defined run the values are the exact prefix.
	assert.Equal(t, run.Prefix(), values)

	mixed := New(ExactInt(1), ANY)
	assert.False(t, mixed.IsFullyDefined())
	assert.Nil(t, mixed.Values())
}

func TestItems_Prefix(t *testing.T) {
	run := New(ExactInt(1), ExactInt(2), ANY, ExactInt(4))
	prefix := run.Prefix()
	require.Len(t, prefix, 2)
	assert.Equal(t, int64(1), prefix[0].Int64())
	assert.Equal(t, int64(2), prefix[1].Int64())

	undefinedFirst := New(ANY, ExactInt(2))
	assert.Empty(t, undefinedFirst.Prefix())
}

func TestItems_Derivative(t *testing.T) {
	run := FromInts(1, 2, 4, 7)
	d := run.Derivative()
	require.Equal(t, 3, d.Len())
	assert.Equal(t, "1 2 3", d.Key())
}

func TestItems_Integral(t *testing.T) {
	// Partial sums start at zero and exclude the grand total.
	run := FromInts(1, 2, 4, 7)
	in := run.Integral()
	require.Equal(t, 4, in.Len())
	assert.Equal(t, "0 1 3 7", in.Key())
}

func TestItems_DerivativeIntegralInverse(t *testing.T) {
	run := FromInts(3, 5, 9, 17)
	// integral(derivative) gives the run shifted to start at 0, minus the
	// position the difference consumed.
	back := run.Derivative().Integral()
	require.Equal(t, 3, back.Len())
	assert.Equal(t, "0 2 6", back.Key())
}

func TestItems_KeyEqual(t *testing.T) {
	a := New(ExactInt(1), ANY, NewInterval(big.NewInt(3), big.NewInt(7)))
	b := New(ExactInt(1), ANY, NewInterval(big.NewInt(3), big.NewInt(7)))
	c := New(ExactInt(1), ANY, NewInterval(big.NewInt(3), big.NewInt(8)))
	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, a.Equal(b))
	assert.NotEqual(t, a.Key(), c.Key())
	assert.False(t, a.Equal(c))
	assert.Equal(t, "1 .. 3..7", a.Key())
}

func TestItems_Match(t *testing.T) {
	run := New(ExactInt(1), ANY, NewInterval(big.NewInt(3), big.NewInt(7)))
	values := []*big.Int{big.NewInt(1), big.NewInt(100), big.NewInt(5), big.NewInt(9)}
	assert.True(t, run.Match(values))
	assert.False(t, run.Match(values[:2]))
	assert.False(t, run.Match([]*big.Int{big.NewInt(2), big.NewInt(0), big.NewInt(5)}))
}
