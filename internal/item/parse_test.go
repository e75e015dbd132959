package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseItem(t *testing.T) {
	tests := []struct {
		literal string
		want    string
	}{
		{"7", "7"},
		{"-3", "-3"},
		{"..", ".."},
		{"3..7", "3..7"},
		{"-2..2", "-2..2"},
		{"5..", "5.."},
		{"..5", "..5"},
		{"2,8,4", "2,4,8"},
		{"5..5", "5"},   // degenerate interval
		{"3,3", "3"},    // singleton set
		{" 12 ", "12"},  // surrounding whitespace
	}
	for _, tc := range tests {
		it, err := ParseItem(tc.literal)
		require.NoError(t, err, "literal %q", tc.literal)
		assert.Equal(t, tc.want, it.String(), "literal %q", tc.literal)
	}
}

func TestParseItem_Errors(t *testing.T) {
	for _, literal := range []string{"", "abc", "1..x", "x..1", "1,,2", "7..3", "1.5"} {
		_, err := ParseItem(literal)
		require.Error(t, err, "literal %q", literal)
		assert.True(t, IsParseError(err), "literal %q", literal)
	}
}

func TestParseItems(t *testing.T) {
	run, err := ParseItems("1", "2", "..", "3..7")
	require.NoError(t, err)
	assert.Equal(t, 4, run.Len())
	assert.Equal(t, "1 2 .. 3..7", run.Key())
}

func TestParseItems_SplitsSpaces(t *testing.T) {
	run, err := ParseItems("1 2 4")
	require.NoError(t, err)
	assert.Equal(t, 3, run.Len())
	assert.True(t, run.IsFullyDefined())
}

func TestParseItems_Empty(t *testing.T) {
	_, err := ParseItems()
	assert.True(t, IsParseError(err))
}
