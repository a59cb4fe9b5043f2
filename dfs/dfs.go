package dfs

import (
	"fmt"

	"github.com/katalvlaran/tworow/core"
)

// frame is one vertex on the explicit stack with the index of the next
// neighbor to try.
type frame struct {
	id   string
	nbrs []string
	next int
}

// DFS walks g depth-first from start, or every tree of g with
// WithFullTraversal. Neighbors are tried in graph vertex order and
// self-loops are ignored, so Order is deterministic.
//
// Time Complexity: O(V + E).
// Memory: O(V) for the explicit stack and the result maps.
func DFS(g *core.Graph, start string, opts ...Option) (*Result, error) {
	// 1. Validate input graph
	if g == nil {
		return nil, ErrGraphNil
	}

	// 2. Apply options
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	// 3. Single-source mode: verify start
	if !o.FullTraversal && !g.HasVertex(start) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, start)
	}

	// 4. Initialize result with capacity hint
	n := g.VertexCount()
	res := &Result{
		Order:   make([]string, 0, n),
		Depth:   make(map[string]int, n),
		Parent:  make(map[string]string, n),
		Visited: make(map[string]bool, n),
	}

	// 5. Traverse: forest or single tree
	roots := []string{start}
	if o.FullTraversal {
		roots = g.Vertices()
	}
	for _, root := range roots {
		if res.Visited[root] {
			continue
		}
		if err := walk(g, root, o, res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// walk runs one tree from root on an explicit stack, appending to res.
//
// Time Complexity: O(V_t + E_t) for the tree it reaches.
func walk(g *core.Graph, root string, o DFSOptions, res *Result) error {
	enter := func(id string, depth int) (frame, error) {
		res.Visited[id] = true
		res.Depth[id] = depth
		if o.MaxDepth >= 0 && depth >= o.MaxDepth {
			return frame{id: id}, nil
		}
		nbrs, err := g.NeighborIDs(id)
		if err != nil {
			return frame{}, fmt.Errorf("%w: %q: %v", ErrNeighborFetch, id, err)
		}
		return frame{id: id, nbrs: nbrs}, nil
	}

	// 1. Seed the stack with the root
	f, err := enter(root, 0)
	if err != nil {
		return err
	}
	stack := []frame{f}

	for len(stack) > 0 {
		// 2. Cancellation check
		if err = o.Ctx.Err(); err != nil {
			return err
		}

		// 3. Finished frame: record post-order and pop
		top := &stack[len(stack)-1]
		if top.next == len(top.nbrs) {
			res.Order = append(res.Order, top.id)
			stack = stack[:len(stack)-1]
			continue
		}

		// 4. Advance to the next unvisited neighbor
		nid := top.nbrs[top.next]
		top.next++
		if nid == top.id || res.Visited[nid] {
			continue
		}
		res.Parent[nid] = top.id
		if f, err = enter(nid, len(stack)); err != nil {
			return err
		}
		stack = append(stack, f)
	}

	return nil
}
