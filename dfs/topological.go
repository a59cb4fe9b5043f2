package dfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/tworow/core"
)

// ErrUndirected is returned by TopologicalSort for undirected graphs.
var ErrUndirected = errors.New("dfs: TopologicalSort requires directed graph")

// TopoOption configures TopologicalSort.
type TopoOption func(*context.Context)

// WithCancelContext sets the cancellation context. A nil ctx has no effect.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(c *context.Context) {
		if ctx != nil {
			*c = ctx
		}
	}
}

// TopologicalSort orders the vertices of the directed graph g so that every
// edge u→v has u before v. Among vertices with no ordering constraint the
// graph's vertex order wins.
//
// Errors: ErrGraphNil, ErrUndirected, ErrCycleDetected, ErrNeighborFetch,
// or the context error.
//
// Time Complexity: O(V + E).
// Memory: O(V) for colors, the result and the recursion.
func TopologicalSort(g *core.Graph, opts ...TopoOption) ([]string, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.Directed() {
		return nil, ErrUndirected
	}

	// 2. Apply options
	ctx := context.Background()
	for _, opt := range opts {
		opt(&ctx)
	}

	verts := g.Vertices()
	color := make(map[string]int, len(verts))
	// finished collects vertices in reverse topological order. Roots and
	// neighbors are taken last-first so the reversal restores vertex order.
	finished := make([]string, 0, len(verts))

	var visit func(id string) error
	visit = func(id string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch color[id] {
		case Gray:
			return fmt.Errorf("%w: at %q", ErrCycleDetected, id)
		case Black:
			return nil
		}
		color[id] = Gray
		nbrs, err := g.NeighborIDs(id)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
		}
		for i := len(nbrs) - 1; i >= 0; i-- {
			if err = visit(nbrs[i]); err != nil {
				return err
			}
		}
		color[id] = Black
		finished = append(finished, id)

		return nil
	}

	// 3. Visit roots last-first
	for i := len(verts) - 1; i >= 0; i-- {
		if err := visit(verts[i]); err != nil {
			return nil, err
		}
	}

	// 4. Reverse finish order
	order := make([]string, len(finished))
	for i, id := range finished {
		order[len(finished)-1-i] = id
	}

	return order, nil
}
