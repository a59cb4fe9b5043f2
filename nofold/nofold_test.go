package nofold_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/colorgroup"
	"github.com/katalvlaran/tworow/nofold"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

// edge builds a derived edge from -> to on row r.
func edge(r board.Row, from, to uint, c board.Color, pairID board.PairKey) *patternlog.Edge {
	comb, _ := board.Combine(board.V(r, from), board.V(r, to))
	return &patternlog.Edge{
		ID:          comb.Key(),
		Row:         r,
		Vertices:    comb.Vertices(),
		Color:       c,
		Orientation: comb.Implied(board.V(r, from)),
		PairID:      pairID,
	}
}

func logOf(ds ...patternlog.Derived) *patternlog.Log {
	l := patternlog.New()
	for _, d := range ds {
		l.Append(d.PairID, d)
	}

	return l
}

func TestCheck_ChainPasses(t *testing.T) {
	l := logOf(
		patternlog.Derived{PairID: "p1", Top: edge(board.Top, 0, 1, "#ff0000", "p1")},
		patternlog.Derived{PairID: "p2", Top: edge(board.Top, 1, 2, "#ff0000", "p2")},
		// Same vertex, other color.
		patternlog.Derived{PairID: "p3", Top: edge(board.Top, 0, 2, "#00ff00", "p3")},
	)
	assert.True(t, nofold.Check(l).OK)
}

func TestCheck_ReverseSameColorIsTwoCycle(t *testing.T) {
	l := logOf(patternlog.Derived{PairID: "p1", Top: edge(board.Top, 0, 1, "#ff0000", "p1")})
	d := patternlog.Derived{PairID: "p2", Top: edge(board.Top, 1, 0, "#ff0000", "p2")}

	res := nofold.Check(l.With(d))
	require.False(t, res.OK)
	assert.Equal(t, verdict.NoFold, res.Code)
	require.Len(t, res.Violations, 1)

	v := res.Violations[0]
	assert.Equal(t, verdict.KindTwoCycle, v.Kind)
	require.Len(t, v.Edges, 2)
	assert.Equal(t, board.Right, v.Edges[0].Orientation)
	assert.Equal(t, board.Left, v.Edges[1].Orientation)
	assert.Equal(t, []string{"top-0,top-1"}, nofold.Folds(res.Violations))

	assert.Equal(t, 1, l.Len(), "With leaves the log alone")
	assert.ErrorIs(t, res.Err(), verdict.ErrNoFold)
}

func TestCheck_ReportsEveryFold(t *testing.T) {
	l := logOf(
		patternlog.Derived{PairID: "p1", Bottom: edge(board.Bottom, 0, 1, "#ff0000", "p1")},
		patternlog.Derived{PairID: "p2", Bottom: edge(board.Bottom, 0, 2, "#ff0000", "p2")},
		patternlog.Derived{PairID: "p3", Bottom: edge(board.Bottom, 3, 1, "#ff0000", "p3")},
	)

	vs := nofold.Violations(l)
	require.Len(t, vs, 2)
	assert.Equal(t, verdict.KindMultipleOutgoing, vs[0].Kind)
	assert.Equal(t, "bottom-0,bottom-1", vs[0].Edges[0].ID)
	assert.Equal(t, "bottom-0,bottom-2", vs[0].Edges[1].ID)
	assert.Equal(t, verdict.KindMultipleIncoming, vs[1].Kind)
	assert.Equal(t, board.Bottom, vs[1].Row)
	assert.Equal(t, []string{"bottom-0,bottom-1", "bottom-0,bottom-2", "bottom-1,bottom-3"}, nofold.Folds(vs))
}

func TestCheck_RepeatedEdgeIsNotAFold(t *testing.T) {
	l := logOf(
		patternlog.Derived{PairID: "p1", Top: edge(board.Top, 0, 1, "#ff0000", "p1")},
		patternlog.Derived{PairID: "p2", Top: edge(board.Top, 0, 1, "#ff0000", "p2")},
	)
	assert.True(t, nofold.Check(l).OK)
}

// Soundness: after a passing check every (row, color) subgraph has in- and
// out-degree at most one and no two-cycles.
func TestCheck_Soundness(t *testing.T) {
	l := logOf(
		patternlog.Derived{PairID: "a", Top: edge(board.Top, 0, 1, "#a", "a"), Bottom: edge(board.Bottom, 2, 1, "#a", "a")},
		patternlog.Derived{PairID: "b", Top: edge(board.Top, 1, 3, "#a", "b"), Bottom: edge(board.Bottom, 1, 0, "#a", "b")},
		patternlog.Derived{PairID: "c", Top: edge(board.Top, 3, 2, "#b", "c")},
	)
	require.True(t, nofold.Check(l).OK)

	for _, r := range board.Rows {
		out := map[string]int{}
		in := map[string]int{}
		for _, e := range l.Sequence(r) {
			from, to := e.Endpoints()
			out[string(e.Color)+from.ID()]++
			in[string(e.Color)+to.ID()]++
		}
		for k, n := range out {
			assert.LessOrEqual(t, n, 1, k)
		}
		for k, n := range in {
			assert.LessOrEqual(t, n, 1, k)
		}
	}
}

func colored(t0, b0, t1, b1 uint, c board.Color) board.Pair {
	return board.Pair{
		First:  board.Connection{Top: board.T(t0), Bottom: board.B(b0), Color: c},
		Second: board.Connection{Top: board.T(t1), Bottom: board.B(b1), Color: c},
	}
}

// trialBoard commits pairs the way the engine does: merge, recolor to the group
// color, orient.
type trialBoard struct {
	groups *colorgroup.Groups
	maps   orientation.Maps
	pairs  []board.Pair
}

func newTrialBoard(t *testing.T, pairs ...board.Pair) *trialBoard {
	t.Helper()
	b := &trialBoard{groups: colorgroup.New(), maps: orientation.NewMaps()}
	for _, p := range pairs {
		m, err := b.groups.Merge(p)
		require.NoError(t, err)
		p = p.WithColor(m.Color)
		b.orient(t, p)
		b.pairs = append(b.pairs, p)
	}

	return b
}

func (b *trialBoard) orient(t *testing.T, p board.Pair) {
	t.Helper()
	out, err := orientation.Preflight(b.maps, p, p.Color())
	require.NoError(t, err)
	require.NoError(t, orientation.Apply(&b.maps, out))
}

// A candidate that joins two groups recolors the absorbed group's pairs;
// the fold they form with the surviving group is only visible after that
// recoloring.
func TestPreflight_AbsorbedGroupFolds(t *testing.T) {
	b := newTrialBoard(t,
		colored(0, 0, 1, 1, "#e6194b"), // group A: top-0->top-1, bottom-0->bottom-1
		colored(0, 2, 2, 3, "#3cb44b"), // group B: top-0->top-2
		colored(5, 2, 6, 3, "#4363d8"), // shares bottom-2,bottom-3 with B
	)
	require.Equal(t, 2, b.groups.Len())
	base := patternlog.Rebuild(b.pairs, b.maps)
	require.True(t, nofold.Check(base).OK)

	// bottom-0,bottom-1 belongs to A and top-5,top-6 to B: A absorbs B.
	candidate := colored(5, 0, 6, 1, "#ffe119")
	merge, sim, err := b.groups.Simulate(candidate)
	require.NoError(t, err)
	require.Equal(t, []int{1}, merge.Absorbed)
	candidate = candidate.WithColor(merge.Color)

	maps := b.maps.Clone()
	out, err := orientation.Preflight(maps, candidate, merge.Color)
	require.NoError(t, err)
	require.NoError(t, orientation.Apply(&maps, out))

	// Appending with stale colors misses the fold.
	assert.True(t, nofold.Check(base.With(patternlog.Derive(candidate, maps))).OK)

	res := nofold.Preflight(patternlog.Trial{
		Base:      base,
		Committed: b.pairs,
		Candidate: candidate,
		Groups:    sim,
		Maps:      maps,
	})
	require.False(t, res.OK)
	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, verdict.KindMultipleOutgoing, v.Kind)
	assert.Equal(t, board.Top, v.Row)
	assert.Equal(t, []string{"top-0,top-1", "top-0,top-2"}, nofold.Folds(res.Violations))
	assert.Equal(t, board.Color("#e6194b"), v.Edges[1].Color, "absorbed pair carries the surviving color")

	assert.Equal(t, board.Color("#3cb44b"), b.pairs[1].Color(), "committed pairs are untouched")
	assert.Equal(t, 2, b.groups.Len(), "groups are untouched")
}

func TestPreflight_NoRecolorExtendsBase(t *testing.T) {
	b := newTrialBoard(t, colored(0, 0, 1, 1, "#e6194b"))
	base := patternlog.Rebuild(b.pairs, b.maps)

	// The candidate runs top-0,top-1 backwards; the stored direction wins
	// and its bottom edge bottom-2->bottom-3 is new.
	candidate := colored(1, 2, 0, 3, "#3cb44b")
	merge, sim, err := b.groups.Simulate(candidate)
	require.NoError(t, err)
	require.Empty(t, merge.Absorbed)
	candidate = candidate.WithColor(merge.Color)

	maps := b.maps.Clone()
	out, err := orientation.Preflight(maps, candidate, merge.Color, orientation.WithMinCycle(0))
	require.NoError(t, err)
	orientation.ApplyAssignments(&maps, out)

	res := nofold.Preflight(patternlog.Trial{Base: base, Committed: b.pairs, Candidate: candidate, Groups: sim, Maps: maps})
	assert.True(t, res.OK, res.Message)
	assert.Equal(t, board.Color("#e6194b"), merge.Color, "joins the group owning top-0,top-1")
	assert.Equal(t, 2, base.Len(), "base is extended on a copy")
}
