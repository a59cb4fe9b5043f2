// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted distances, parent links and visit order, and the shortest
// cycle search built on it.
//
// What
//
//   - BFS grows the tree of a root layer by layer and returns it as a Tree
//     (Order, Depth, Parent). Options fill a BFSOptions (see
//     DefaultOptions): WithMaxDepth bounds the walk, WithContext cancels it.
//   - ShortestCycle runs BFS from every vertex of an undirected graph and
//     closes each non-tree edge into a candidate cycle. The minimum over all
//     roots is the girth, and the cycle that realises it is simple.
//
// Determinism
//
//	core.NeighborIDs returns neighbors in the graph's vertex order and BFS
//	expands them in that order, so visit sequences are reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - BFS:           Time O(V + E), Memory O(V)
//   - ShortestCycle: Time O(V·(V + E)), Memory O(V)
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNeighbors            if core.NeighborIDs fails for any vertex.
//   - ErrDirectedGraph        if ShortestCycle is given a directed graph.
package bfs
