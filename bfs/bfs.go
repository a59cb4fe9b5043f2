package bfs

import (
	"fmt"

	"github.com/katalvlaran/tworow/core"
)

// BFS grows the breadth-first tree of g from root. Neighbors are expanded
// in graph vertex order, so Order is reproducible.
//
// Time Complexity: O(V + E).
// Memory: O(V) for the frontier and the tree maps.
func BFS(g *core.Graph, root string, opts ...Option) (*Tree, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options and surface any option error
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	// 3. Verify root
	if !g.HasVertex(root) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, root)
	}

	// 4. Initialize tree with capacity hint
	n := g.VertexCount()
	t := &Tree{
		Root:   root,
		Order:  make([]string, 0, n),
		Depth:  map[string]int{root: 0},
		Parent: make(map[string]string, n),
	}

	// 5. Expand one layer at a time
	frontier := []string{root}
	for depth := 0; len(frontier) > 0; depth++ {
		if err := o.Ctx.Err(); err != nil {
			return t, err
		}
		t.Order = append(t.Order, frontier...)
		if o.MaxDepth > 0 && depth == o.MaxDepth {
			break
		}
		var next []string
		for _, id := range frontier {
			nbrs, err := g.NeighborIDs(id)
			if err != nil {
				return t, fmt.Errorf("%w: neighbors of %q: %v", ErrNeighbors, id, err)
			}
			for _, nbr := range nbrs {
				if _, seen := t.Depth[nbr]; seen {
					continue
				}
				t.Depth[nbr] = depth + 1
				t.Parent[nbr] = id
				next = append(next, nbr)
			}
		}
		frontier = next
	}

	return t, nil
}
