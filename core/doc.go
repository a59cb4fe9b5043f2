// Package core provides the small in-memory Graph that the tworow checkers
// build per row: vertices are string IDs, edges are directed or undirected,
// and every enumeration is deterministic.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Parallel edges (WithMultiEdges)
//   - Self-loops (WithLoops)
//   - A caller-supplied vertex order (WithVertexOrder), so that IDs such as
//     "top-2" and "top-10" enumerate by index instead of lexically
//   - Monotonic textual edge IDs ("e1", "e2", ...)
//   - A single sync.RWMutex guarding vertices, edges and adjacency
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error          // O(1)
//	HasVertex(id string) bool           // O(1)
//
//	// Edge lifecycle
//	AddEdge(from, to string) (edgeID string, err error) // O(1)
//	RemoveEdge(edgeID string) error     // O(1)
//	HasEdge(from, to string) bool       // O(1)
//
//	// Query
//	Neighbors(id string) ([]*Edge, error)    // O(d log d), edge-ID order
//	NeighborIDs(id string) ([]string, error) // O(d log d), unique, vertex order
//	Vertices() []string                      // O(V log V), vertex order
//	Edges() []*Edge                          // O(E log E), edge-ID order
//	VertexCount(), EdgeCount() int           // O(1)
//
//	// Copies
//	Clone() *Graph                       // O(V+E)
//	Clear()                              // O(1)
//
// Errors:
//
//	ErrEmptyVertexID       - zero-length vertex ID
//	ErrVertexNotFound      - missing vertex
//	ErrEdgeNotFound        - missing edge
//	ErrLoopNotAllowed      - self-loop when loops are disabled
//	ErrMultiEdgeNotAllowed - parallel edge when multi-edges are disabled
package core
