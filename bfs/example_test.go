package bfs_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tworow/bfs"
	"github.com/katalvlaran/tworow/core"
)

// ExampleShortestCycle finds the girth witness of an undirected row graph:
// a triangle bottom-0, bottom-1, bottom-2 next to a longer loop.
func ExampleShortestCycle() {
	g := core.NewGraph()
	for _, e := range [][2]string{
		{"bottom-0", "bottom-1"}, {"bottom-1", "bottom-2"}, {"bottom-0", "bottom-2"},
		{"bottom-2", "bottom-3"}, {"bottom-3", "bottom-4"}, {"bottom-4", "bottom-5"}, {"bottom-5", "bottom-2"},
	} {
		_, _ = g.AddEdge(e[0], e[1])
	}

	cycle, err := bfs.ShortestCycle(context.Background(), g, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(cycle, len(cycle)-1)

	// Output:
	// [bottom-0 bottom-1 bottom-2 bottom-0] 3
}

// ExampleBFS shows layered visit order on a path.
func ExampleBFS() {
	g := core.NewGraph()
	_, _ = g.AddEdge("A", "B")
	_, _ = g.AddEdge("B", "C")

	res, _ := bfs.BFS(g, "B")
	fmt.Println(res.Order, res.Depth["C"])

	// Output:
	// [B A C] 1
}
