// File: edges.go
// Role: Edge lifecycle & queries: AddEdge/RemoveEdge/HasEdge/Edges/Neighbors.
// Determinism:
//   - Edges() and Neighbors() return edges in creation order ("e1" < "e2" < "e10").
//   - NeighborIDs() returns unique IDs in the graph's vertex order.
// Concurrency:
//   - Mutations under the write lock, queries under the read lock.

package core

import (
	"cmp"
	"slices"
	"strconv"
)

const edgeIDPrefix = "e"

// AddEdge creates a new edge from→to, adding missing endpoints.
//
// Steps:
//  1. Validate IDs and the loop policy.
//  2. Ensure both endpoints exist.
//  3. Check the multi-edge policy (in either direction for undirected graphs).
//  4. Assign the next textual ID and link adjacency, mirrored when undirected.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string) (string, error) {
	// 1. Validate IDs and the loop policy
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// 2. Ensure both endpoints exist
	g.addVertexLocked(from)
	g.addVertexLocked(to)

	// 3. Multi-edge policy; undirected adjacency is mirrored, so one lookup
	//    covers both directions
	if !g.allowMulti && len(g.adjacency[from][to]) > 0 {
		return "", ErrMultiEdgeNotAllowed
	}

	// 4. Assign the next ID and link adjacency
	g.nextEdgeID++
	e := &Edge{
		ID:       edgeIDPrefix + strconv.FormatUint(g.nextEdgeID, 10),
		From:     from,
		To:       to,
		Directed: g.directed,
		seq:      g.nextEdgeID,
	}
	g.edges[e.ID] = e
	g.link(from, to, e.ID)
	if !g.directed && from != to {
		g.link(to, from, e.ID)
	}

	return e.ID, nil
}

func (g *Graph) link(from, to, eid string) {
	inner, ok := g.adjacency[from][to]
	if !ok {
		inner = make(map[string]struct{})
		g.adjacency[from][to] = inner
	}
	inner[eid] = struct{}{}
}

func (g *Graph) unlink(from, to, eid string) {
	inner := g.adjacency[from][to]
	delete(inner, eid)
	if len(inner) == 0 {
		delete(g.adjacency[from], to)
	}
}

// RemoveEdge deletes one edge and its mirror.
//
// Errors:
//   - ErrEdgeNotFound: if eid is unknown.
//
// Complexity: O(1).
func (g *Graph) RemoveEdge(eid string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	// 1. Look up the edge
	e, ok := g.edges[eid]
	if !ok {
		return ErrEdgeNotFound
	}

	// 2. Drop it and both adjacency entries
	delete(g.edges, eid)
	g.unlink(e.From, e.To, eid)
	if !e.Directed && e.From != e.To {
		g.unlink(e.To, e.From, eid)
	}

	return nil
}

// HasEdge reports whether at least one edge leads from→to. For undirected
// graphs the direction is irrelevant.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.adjacency[from][to]) > 0
}

// Edges returns every edge in creation order.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sortBySeq(out)

	return out
}

// EdgeCount returns |E|.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.edges)
}

// Neighbors returns the edges leaving id: outgoing edges in a directed
// graph, every incident edge in an undirected one. A loop appears once.
//
// Errors:
//   - ErrVertexNotFound: if id is unknown.
//
// Complexity: O(d log d).
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	row, ok := g.adjacency[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	out := make([]*Edge, 0, len(row))
	for _, inner := range row {
		for eid := range inner {
			out = append(out, g.edges[eid])
		}
	}
	sortBySeq(out)

	return out, nil
}

// NeighborIDs returns the unique vertices reachable from id in one step,
// in vertex order.
//
// Errors:
//   - ErrVertexNotFound: if id is unknown.
//
// Complexity: O(d log d).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	row, ok := g.adjacency[id]
	if !ok {
		return nil, ErrVertexNotFound
	}
	out := make([]string, 0, len(row))
	for to, inner := range row {
		if len(inner) > 0 {
			out = append(out, to)
		}
	}
	slices.SortFunc(out, g.order)

	return out, nil
}

func sortBySeq(es []*Edge) {
	slices.SortFunc(es, func(a, b *Edge) int { return cmp.Compare(a.seq, b.seq) })
}
