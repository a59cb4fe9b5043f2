// Package dfs implements depth-first search, cycle enumeration and
// topological sort on a core.Graph.
//
// What:
//
//   - DFS: iterative walk with an explicit stack; post-order, depths and
//     parents of one tree or of the whole forest. Used for reachability
//     over the level prerequisite graph.
//   - DetectCycles: reports cycles found through back edges (White, Gray,
//     Black marking), each in canonical minimal rotation (Booth).
//   - SimpleCycles: enumerates every simple cycle, optionally bounded by
//     length. Each cycle is rooted at its smallest vertex in graph order,
//     so one cycle is reported exactly once. This is what the orientation
//     short-cycle test and the exhaustive girth check run on.
//   - TopologicalSort: linear order of a DAG; ErrCycleDetected otherwise.
//
// Complexity:
//
//   - DFS:             Time O(V+E), Memory O(V)
//   - DetectCycles:    Time O(V+E + C*L), Memory O(V+L_max)
//   - SimpleCycles:    exponential in the worst case; bounded by
//     WithMaxLength, Time O(V * d^k) for max length k and degree d
//   - TopologicalSort: Time O(V+E), Memory O(V)
//
// Options (DFSOptions, see DefaultOptions):
//
//   - WithContext(ctx)       allows cancellation via context.Context.
//   - WithMaxDepth(limit)    stops descending below the given depth (>=0).
//   - WithFullTraversal()    walks every tree of the forest.
//
// Errors:
//
//   - ErrGraphNil             graph pointer is nil
//   - ErrStartVertexNotFound  start vertex ID not in graph
//   - ErrCycleDetected        cycle discovered in DAG operations
//   - ErrNeighborFetch        neighbor lookup failed
//   - context.Canceled        search canceled via context
package dfs
