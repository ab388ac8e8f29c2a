package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmptyBoard(t *testing.T) {
	b, err := Parse("61/61/61/61/61/61/X", 1)
	require.NoError(t, err)
	assert.Equal(t, A, b.Side())
	assert.Equal(t, Columns, b.LegalCount())
}

func TestParseMatchesAppliedPosition(t *testing.T) {
	b := New(1)
	require.NoError(t, b.Apply(3))
	require.NoError(t, b.Apply(3))
	require.NoError(t, b.Apply(0))

	// Row 0 (bottom) has X at columns 0 and 3; row 1 has O at column 3;
	// side to move is B after three plies.
	parsed, err := Parse("61/61/61/61/3O3/X2X3/O", 1)
	require.NoError(t, err)

	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			assert.Equal(t, b.At(c, r), parsed.At(c, r), "cell (%d,%d)", c, r)
		}
	}
	assert.Equal(t, b.Side(), parsed.Side())
}

func TestParseRejectsMalformedGrammar(t *testing.T) {
	_, err := Parse("61/61/61/61/61/61", 1) // missing side token
	assert.Error(t, err)

	_, err = Parse("8/61/61/61/61/61/X", 1) // digit outside 1-6
	assert.Error(t, err)

	_, err = Parse("61/61/61/61/61/61/Z", 1) // invalid side token
	assert.Error(t, err)

	_, err = Parse("Y6/61/61/61/61/61/X", 1) // invalid cell token
	assert.Error(t, err)
}
