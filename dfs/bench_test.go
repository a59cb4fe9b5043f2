package dfs_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/tworow/core"
	"github.com/katalvlaran/tworow/dfs"
)

// ladder builds an undirected ladder of n rungs, which has O(n²) simple cycles.
func ladder(n int) *core.Graph {
	g := core.NewGraph()
	for i := 0; i < n; i++ {
		_, _ = g.AddEdge(fmt.Sprintf("a%02d", i), fmt.Sprintf("b%02d", i))
		if i > 0 {
			_, _ = g.AddEdge(fmt.Sprintf("a%02d", i-1), fmt.Sprintf("a%02d", i))
			_, _ = g.AddEdge(fmt.Sprintf("b%02d", i-1), fmt.Sprintf("b%02d", i))
		}
	}

	return g
}

// BenchmarkSimpleCycles_Bounded measures the girth-style bounded search.
func BenchmarkSimpleCycles_Bounded(b *testing.B) {
	g := ladder(16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dfs.SimpleCycles(g, dfs.WithMaxLength(5))
	}
}

// BenchmarkSimpleCycles_Full measures exhaustive enumeration.
func BenchmarkSimpleCycles_Full(b *testing.B) {
	g := ladder(8)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dfs.SimpleCycles(g)
	}
}
