package dfs_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tworow/core"
	"github.com/katalvlaran/tworow/dfs"
)

func TestDetectCycles(t *testing.T) {
	has, cycles, err := dfs.DetectCycles(nil)
	require.NoError(t, err)
	assert.False(t, has)
	assert.Nil(t, cycles)

	has, _, err = dfs.DetectCycles(directed([2]string{"A", "B"}, [2]string{"B", "C"}))
	require.NoError(t, err)
	assert.False(t, has)

	has, cycles, err = dfs.DetectCycles(directed([2]string{"B", "C"}, [2]string{"C", "A"}, [2]string{"A", "B"}))
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, [][]string{{"A", "B", "C", "A"}}, cycles)

	// An undirected edge walked back to its parent is not a cycle.
	has, _, err = dfs.DetectCycles(undirected([2]string{"A", "B"}))
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSimpleCycles_Directed(t *testing.T) {
	// Two cycles sharing B->C: A->B->C->A and B->C->B.
	g := directed(
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "A"},
		[2]string{"C", "B"},
	)
	cycles, err := dfs.SimpleCycles(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"B", "C", "B"},
		{"A", "B", "C", "A"},
	}, cycles)

	short, err := dfs.SimpleCycles(g, dfs.WithMaxLength(2))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"B", "C", "B"}}, short)

	first, err := dfs.SimpleCycles(g, dfs.WithLimit(1))
	require.NoError(t, err)
	assert.Len(t, first, 1)
}

func TestSimpleCycles_UndirectedReportsEachOnce(t *testing.T) {
	// Square with one diagonal: three simple cycles.
	g := undirected(
		[2]string{"A", "B"}, [2]string{"B", "C"}, [2]string{"C", "D"}, [2]string{"D", "A"},
		[2]string{"A", "C"},
	)
	cycles, err := dfs.SimpleCycles(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"A", "B", "C", "A"},
		{"A", "C", "D", "A"},
		{"A", "B", "C", "D", "A"},
	}, cycles)

	tri, err := dfs.SimpleCycles(g, dfs.WithMaxLength(3))
	require.NoError(t, err)
	assert.Len(t, tri, 2)

	// A path has no cycles.
	none, err := dfs.SimpleCycles(undirected([2]string{"A", "B"}, [2]string{"B", "C"}))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSimpleCycles_LoopsAndCancel(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithLoops())
	_, _ = g.AddEdge("A", "A")
	cycles, err := dfs.SimpleCycles(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "A"}}, cycles)

	_, err = dfs.SimpleCycles(nil)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dfs.SimpleCycles(g, dfs.WithCycleContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

// Visiting C first records C->A->B->C; the result is still rotated to start
// at the smallest vertex, and an undirected walk picks the smaller direction.
func TestDetectCycles_MinimalRotation(t *testing.T) {
	reversed := func(a, b string) int { return strings.Compare(b, a) }

	g := core.NewGraph(core.WithDirected(true), core.WithVertexOrder(reversed))
	for _, e := range [][2]string{{"C", "A"}, {"A", "B"}, {"B", "C"}} {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	_, cycles, err := dfs.DetectCycles(g)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "C", "A"}}, cycles)

	u := core.NewGraph(core.WithVertexOrder(reversed))
	for _, e := range [][2]string{{"A", "C"}, {"C", "B"}, {"B", "A"}} {
		_, err = u.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	_, cycles, err = dfs.DetectCycles(u)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "C", "A"}}, cycles)
}
