// File: clone.go
// Role: Cloning and clearing graph instances.
// Determinism:
//   - Clone carries over nextEdgeID so later AddEdge calls never collide.

package core

// Clone returns a deep copy of the Graph: configuration, vertices, edges and adjacency.
// Complexity: O(V + E)
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// 1. Copy configuration and the ID counter
	c := &Graph{
		directed:   g.directed,
		allowMulti: g.allowMulti,
		allowLoops: g.allowLoops,
		order:      g.order,
		nextEdgeID: g.nextEdgeID,
		vertices:   make(map[string]struct{}, len(g.vertices)),
		edges:      make(map[string]*Edge, len(g.edges)),
		adjacency:  make(map[string]map[string]map[string]struct{}, len(g.adjacency)),
	}

	// 2. Vertices with empty adjacency rows
	for id := range g.vertices {
		c.vertices[id] = struct{}{}
		c.adjacency[id] = make(map[string]map[string]struct{})
	}

	// 3. Edges by value, relinked (mirrored when undirected)
	for eid, e := range g.edges {
		ne := *e
		c.edges[eid] = &ne
		c.link(e.From, e.To, eid)
		if !e.Directed && e.From != e.To {
			c.link(e.To, e.From, eid)
		}
	}

	return c
}

// Clear resets the graph to an empty state while preserving configuration.
// Edge IDs resume from "e1".
// Complexity: O(1), the old maps are left to the collector.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vertices = make(map[string]struct{})
	g.edges = make(map[string]*Edge)
	g.adjacency = make(map[string]map[string]map[string]struct{})
	g.nextEdgeID = 0
}
