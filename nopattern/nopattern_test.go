package nopattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/colorgroup"
	"github.com/katalvlaran/tworow/nopattern"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

const (
	red   board.Color = "#ff0000"
	green board.Color = "#00ff00"
	blue  board.Color = "#0000ff"
)

func edge(r board.Row, from, to uint, c board.Color) *patternlog.Edge {
	comb, _ := board.Combine(board.V(r, from), board.V(r, to))
	return &patternlog.Edge{
		ID:          comb.Key(),
		Row:         r,
		Vertices:    comb.Vertices(),
		Color:       c,
		Orientation: comb.Implied(board.V(r, from)),
	}
}

func top(from, to uint, c board.Color) patternlog.Derived {
	return patternlog.Derived{Top: edge(board.Top, from, to, c)}
}

func bottom(from, to uint, c board.Color) patternlog.Derived {
	return patternlog.Derived{Bottom: edge(board.Bottom, from, to, c)}
}

func logOf(ds ...patternlog.Derived) *patternlog.Log {
	l := patternlog.New()
	for i, d := range ds {
		l.Append(board.PairKey(rune('a'+i)), d)
	}

	return l
}

func TestTrios_Ordering(t *testing.T) {
	tests := []struct {
		name string
		log  *patternlog.Log
		want [3]board.Vertex
	}{
		{
			name: "center inside: lower index first",
			log:  logOf(top(1, 0, red), top(2, 1, green)),
			want: [3]board.Vertex{board.T(0), board.T(1), board.T(2)},
		},
		{
			name: "center below both: farther neighbor first",
			log:  logOf(top(0, 1, red), top(0, 3, green)),
			want: [3]board.Vertex{board.T(3), board.T(0), board.T(1)},
		},
		{
			name: "center above both: farther neighbor first",
			log:  logOf(top(4, 1, red), top(4, 3, green)),
			want: [3]board.Vertex{board.T(1), board.T(4), board.T(3)},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			trios := nopattern.Trios(tc.log)
			require.Len(t, trios, 1)
			assert.Equal(t, tc.want, trios[0].Points)
		})
	}
}

func TestTrios_Signature(t *testing.T) {
	trios := nopattern.Trios(logOf(top(1, 0, red), top(2, 1, green)))
	require.Len(t, trios, 1)
	assert.Equal(t, "out|#ff0000|in|#00ff00", trios[0].Signature)
	assert.Equal(t, "top-0,top-1,top-2 [out|#ff0000|in|#00ff00]", trios[0].String())
}

// Two different trios, one per row, share a signature.
func TestCheck_DuplicateSignatureAcrossRows(t *testing.T) {
	l := logOf(top(1, 0, red), top(2, 1, green), bottom(5, 3, red))
	require.True(t, nopattern.Check(l).OK)

	res := nopattern.Check(l.With(bottom(4, 5, green)))
	require.False(t, res.OK)
	assert.Equal(t, verdict.NoPattern, res.Code)
	assert.ErrorIs(t, res.Err(), verdict.ErrNoPattern)
	require.Len(t, res.Violations, 1)

	v := res.Violations[0]
	assert.Equal(t, verdict.KindDuplicateTrio, v.Kind)
	assert.Equal(t, board.Bottom, v.Row)
	require.Len(t, v.Trios, 2)
	assert.Equal(t, [3]board.Vertex{board.T(0), board.T(1), board.T(2)}, v.Trios[0].Points)
	assert.Equal(t, [3]board.Vertex{board.B(3), board.B(5), board.B(4)}, v.Trios[1].Points)
	assert.Len(t, v.Edges, 4)

	assert.Equal(t, 3, l.Len(), "With leaves the log alone")
}

func TestCheck_DistinctSignaturesPass(t *testing.T) {
	l := logOf(
		top(0, 1, red), top(1, 2, green), top(2, 3, blue),
		bottom(0, 1, red), bottom(2, 1, green),
	)
	res := nopattern.Check(l)
	assert.True(t, res.OK, res.Message)

	seen := map[string]bool{}
	for _, tr := range nopattern.Trios(l) {
		assert.False(t, seen[tr.Signature], tr.String())
		seen[tr.Signature] = true
	}
}

func TestTrios_RepeatedEdgeCountsOnce(t *testing.T) {
	l := logOf(top(0, 1, red), top(0, 1, red), top(1, 2, red))
	assert.Len(t, nopattern.Trios(l), 1)
}

func colored(t0, b0, t1, b1 uint, c board.Color) board.Pair {
	return board.Pair{
		First:  board.Connection{Top: board.T(t0), Bottom: board.B(b0), Color: c},
		Second: board.Connection{Top: board.T(t1), Bottom: board.B(b1), Color: c},
	}
}

// commitAll merges and orients pairs in order and returns them in their
// group colors.
func commitAll(t *testing.T, gs *colorgroup.Groups, maps *orientation.Maps, pairs ...board.Pair) []board.Pair {
	t.Helper()
	out := make([]board.Pair, 0, len(pairs))
	for _, p := range pairs {
		m, err := gs.Merge(p)
		require.NoError(t, err)
		p = p.WithColor(m.Color)
		o, err := orientation.Preflight(*maps, p, m.Color)
		require.NoError(t, err)
		require.NoError(t, orientation.Apply(maps, o))
		out = append(out, p)
	}

	return out
}

// top-1 reads in|red|out|green until the green group is absorbed into red;
// then it repeats the in|red|out|red trio around bottom-1.
func TestPreflight_AbsorbedGroupRepeatsTrio(t *testing.T) {
	gs := colorgroup.New()
	maps := orientation.NewMaps()
	committed := commitAll(t, gs, &maps,
		colored(0, 0, 1, 1, red),   // top-0->top-1, bottom-0->bottom-1
		colored(0, 1, 1, 2, blue),  // joins red on top-0,top-1; bottom-1->bottom-2
		colored(1, 3, 2, 4, green), // top-1->top-2, bottom-3->bottom-4
		colored(4, 3, 5, 4, blue),  // joins green on bottom-3,bottom-4
	)
	base := patternlog.Rebuild(committed, maps)
	require.True(t, nopattern.Check(base).OK)

	candidate := colored(4, 0, 5, 1, blue)
	merge, sim, err := gs.Simulate(candidate)
	require.NoError(t, err)
	require.Len(t, merge.Absorbed, 1)
	candidate = candidate.WithColor(merge.Color)

	trial := patternlog.Trial{Base: base, Committed: committed, Candidate: candidate, Groups: sim, Maps: maps}
	assert.True(t, nopattern.Check(base.With(patternlog.Derive(candidate, maps))).OK)

	res := nopattern.Preflight(trial)
	require.False(t, res.OK)
	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	require.Len(t, v.Trios, 2)
	assert.Equal(t, [3]board.Vertex{board.T(0), board.T(1), board.T(2)}, v.Trios[0].Points)
	assert.Equal(t, [3]board.Vertex{board.B(0), board.B(1), board.B(2)}, v.Trios[1].Points)
	assert.Equal(t, "in|#ff0000|out|#ff0000", v.Trios[1].Signature)
}
