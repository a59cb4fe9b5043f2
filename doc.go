// Package tworow validates moves in a two-row vertex-matching puzzle, one
// pair of connections at a time.
//
// The board is two rows of numbered vertices, "top" and "bottom". A move
// joins two top vertices and two bottom vertices with a pair of connections.
// Every pair is checked against the constraints of the active level before
// it is committed; a rejected pair leaves no trace.
//
// What gets checked:
//
//   - Orientation: each pair orients one top edge and one bottom edge, and
//     the orientation stored for an edge never flips
//   - No-fold: within one color, no vertex has two outgoing (or two
//     incoming) edges in a row
//   - No-pattern: the in/out color signature around a vertex never repeats
//   - Girth: the undirected graph of each row has no short cycles
//
// Packages:
//
//	board/         vertices, connections, pairs, palette
//	core/          small deterministic graph used by the checkers
//	dfs/, bfs/     traversals and cycle searches over core graphs
//	colorgroup/    union of pairs that share an edge, and their colors
//	orientation/   per-row edge orientation maps and their preflight
//	patternlog/    incremental in/out signatures per vertex
//	nofold/, nopattern/, girth/   the individual checks
//	levels/        the level catalogue and the check runner
//	history/       snapshots and the bounded undo stack
//	engine/        SubmitPair, Connect, Undo, Reset, Restore
//	scenario/      JSON, YAML and compact sequences, and replay reports
//	store/         saved boards in badger
//	server/        the engine over HTTP (gin)
//	config/        YAML settings and logger construction
//	cmd/tworow/    the command-line tool
//
// Quick ASCII example:
//
//	top     0 ──► 1
//	        │     │
//	bottom  0 ──► 1
//
//	the pair (top-0:bottom-0, top-1:bottom-1) orients top-0→top-1 and
//	bottom-0→bottom-1, both "right".
//
//	go install github.com/katalvlaran/tworow/cmd/tworow@latest
package tworow
