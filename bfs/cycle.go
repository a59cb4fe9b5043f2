package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tworow/core"
)

// ShortestCycle returns a shortest simple cycle of the undirected graph g,
// closed ([v0, ..., v0]) and rooted at its smallest vertex in graph order,
// walking towards the smaller of the root's two cycle neighbors first.
// It returns nil when g is acyclic.
//
// Pass maxLen > 0 to only look for cycles of at most maxLen edges; the BFS
// from each root is then cut at depth maxLen/2.
//
// Implementation:
//   - Stage 1: BFS from every vertex (in vertex order).
//   - Stage 2: each edge u–w outside the BFS tree closes a walk of length
//     Depth[u]+Depth[w]+1 through the root; keep the strictly shortest.
//   - Stage 3: rebuild the walk from both PathTo results. At the global
//     minimum the two paths share only the root, so the walk is simple.
//
// Time Complexity: O(V·(V + E)), one BFS per vertex.
// Memory: O(V) per BFS tree.
func ShortestCycle(ctx context.Context, g *core.Graph, maxLen int) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if g.Directed() {
		return nil, ErrDirectedGraph
	}

	opts := []Option{WithContext(ctx)}
	if maxLen > 0 {
		opts = append(opts, WithMaxDepth(maxLen/2+1))
	}

	verts := g.Vertices()
	rank := make(map[string]int, len(verts))
	for i, v := range verts {
		rank[v] = i
	}

	var best []string
	for _, root := range verts {
		res, err := BFS(g, root, opts...)
		if err != nil {
			return nil, fmt.Errorf("bfs: ShortestCycle: %w", err)
		}
		for _, u := range res.Order {
			nbrs, err := g.NeighborIDs(u)
			if err != nil {
				return nil, fmt.Errorf("%w: neighbors of %q: %v", ErrNeighbors, u, err)
			}
			for _, w := range nbrs {
				dw, ok := res.Depth[w]
				if !ok || res.Parent[u] == w || res.Parent[w] == u {
					continue
				}
				length := res.Depth[u] + dw + 1
				if u == w {
					length = 2*res.Depth[u] + 1
				}
				if maxLen > 0 && length > maxLen {
					continue
				}
				if best != nil && length >= len(best)-1 {
					continue
				}
				cycle, ok := closeWalk(res, u, w)
				if ok {
					best = cycle
				}
			}
		}
	}
	if best == nil {
		return nil, nil
	}

	return canonicalCycle(best, rank), nil
}

// closeWalk joins root..u, the edge u–w and w..root. It reports false when
// the two tree paths meet before the root, i.e. the walk is not simple.
func closeWalk(res *Tree, u, w string) ([]string, bool) {
	pu, _ := res.PathTo(u)
	pw, _ := res.PathTo(w)
	if u == w {
		if len(pu) != 1 {
			return nil, false
		}
		return []string{u, u}, true
	}
	seen := make(map[string]bool, len(pu))
	for _, v := range pu[1:] {
		seen[v] = true
	}
	for _, v := range pw[1:] {
		if seen[v] {
			return nil, false
		}
	}
	cycle := make([]string, 0, len(pu)+len(pw))
	cycle = append(cycle, pu...)
	for i := len(pw) - 1; i >= 0; i-- {
		cycle = append(cycle, pw[i])
	}

	return cycle, true
}

// canonicalCycle rotates a closed cycle to start at its lowest-ranked vertex
// and orients it towards the lower-ranked of that vertex's two neighbors.
//
// Time Complexity: O(L) for a cycle of L vertices.
func canonicalCycle(closed []string, rank map[string]int) []string {
	base := closed[:len(closed)-1]
	n := len(base)
	if n == 1 {
		return []string{base[0], base[0]}
	}
	start := 0
	for i, v := range base {
		if rank[v] < rank[base[start]] {
			start = i
		}
	}
	next := base[(start+1)%n]
	prev := base[(start-1+n)%n]
	step := 1
	if rank[prev] < rank[next] {
		step = n - 1
	}
	out := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		out = append(out, base[(start+i*step)%n])
	}

	return append(out, base[start])
}
