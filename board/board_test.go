package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tworow/board"
)

func TestParseVertex(t *testing.T) {
	cases := []struct {
		in   string
		want board.Vertex
	}{
		{"top-0", board.T(0)},
		{"bottom-12", board.B(12)},
		{" t3 ", board.T(3)},
		{"b-7", board.B(7)},
		{"TOP-2", board.T(2)},
	}
	for _, tc := range cases {
		got, err := board.ParseVertex(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, bad := range []string{"", "middle-1", "top-", "top-x", "b--1"} {
		_, err := board.ParseVertex(bad)
		assert.ErrorIs(t, err, board.ErrInvalidVertex, bad)
		assert.True(t, board.IsContract(err), bad)
	}
}

func TestConnect_NormalisesRows(t *testing.T) {
	c, err := board.Connect(board.B(1), board.T(4))
	require.NoError(t, err)
	assert.Equal(t, board.T(4), c.Top)
	assert.Equal(t, board.B(1), c.Bottom)

	_, err = board.Connect(board.T(0), board.T(1))
	assert.ErrorIs(t, err, board.ErrRowMismatch)
}

func TestCombination_KeyAndImplied(t *testing.T) {
	c, err := board.Combine(board.T(10), board.T(2))
	require.NoError(t, err)
	// Index order, not lexical order: top-2 sorts before top-10.
	assert.Equal(t, "top-2,top-10", c.Key())
	assert.Equal(t, board.Right, c.Implied(board.T(2)))
	assert.Equal(t, board.Left, c.Implied(board.T(10)))

	from, to := c.Endpoints(board.Left)
	assert.Equal(t, board.T(10), from)
	assert.Equal(t, board.T(2), to)

	d, err := board.Combine(board.B(0), board.B(0))
	require.NoError(t, err)
	assert.True(t, d.Degenerate())
	assert.Equal(t, board.Unset, d.Implied(board.B(0)))

	parsed, err := board.ParseCombinationKey(c.Key())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestPairKey_OrderIndependent(t *testing.T) {
	a := board.Connection{Top: board.T(0), Bottom: board.B(0)}
	b := board.Connection{Top: board.T(1), Bottom: board.B(1)}
	p := board.Pair{First: a, Second: b}
	q := board.Pair{First: b, Second: a}

	assert.Equal(t, p.Key(), q.Key())
	assert.Equal(t, board.PairKey(`["top-0|bottom-0","top-1|bottom-1"]`), p.Key())
}

func TestPair_Validate(t *testing.T) {
	a := board.Connection{Top: board.T(0), Bottom: board.B(0)}
	assert.ErrorIs(t, board.Pair{First: a, Second: a}.Validate(), board.ErrMalformedPair)

	bad := board.Connection{Top: board.B(0), Bottom: board.B(1)}
	assert.ErrorIs(t, board.Pair{First: a, Second: bad}.Validate(), board.ErrMalformedPair)

	shared := board.Connection{Top: board.T(1), Bottom: board.B(0)}
	require.NoError(t, board.Pair{First: a, Second: shared}.Validate())
}

func TestPalette(t *testing.T) {
	p := board.NewPalette("#111111", "#222222")
	n := 0
	assert.Equal(t, board.Color("#111111"), p.Next(&n))
	assert.Equal(t, board.Color("#222222"), p.Next(&n))
	generated := p.Next(&n)
	assert.Len(t, string(generated), 7)
	assert.Equal(t, 3, n)
	// Deterministic for a given counter value.
	assert.Equal(t, generated, p.Color(2))
}
