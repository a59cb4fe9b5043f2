package dfs

import (
	"context"
	"errors"
)

// Visitation colors.
const (
	White = iota // not reached
	Gray         // on the current path
	Black        // finished
)

var (
	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrStartVertexNotFound is returned when the start vertex is absent.
	ErrStartVertexNotFound = errors.New("dfs: start vertex not found")

	// ErrCycleDetected is returned by TopologicalSort on a cyclic graph.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch wraps a failed neighbor lookup.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")
)

// Option configures DFS. Use with DFS(g, start, opts...).
type Option func(*DFSOptions)

// DFSOptions holds the parameters of one DFS run.
// Complexity stays O(V+E) whatever the options.
type DFSOptions struct {
	// Ctx aborts the walk once done; defaults to context.Background().
	Ctx context.Context

	// MaxDepth, if non-negative, leaves vertices more than MaxDepth edges
	// below the root unvisited. A depth of 0 visits only the root.
	// Default is -1 (no limit).
	MaxDepth int

	// FullTraversal walks every tree of the forest, rooting each new tree
	// at the first unvisited vertex in graph order. The start vertex is
	// ignored. Default is false.
	FullTraversal bool
}

// DefaultOptions returns a DFSOptions with:
//   - Background context
//   - No depth limit (MaxDepth = -1)
//   - Single-source traversal (FullTraversal = false)
func DefaultOptions() DFSOptions {
	return DFSOptions{
		Ctx:           context.Background(),
		MaxDepth:      -1,
		FullTraversal: false,
	}
}

// WithContext returns an Option that sets the cancellation context.
// Passing a nil context has no effect (Background is retained).
func WithContext(ctx context.Context) Option {
	return func(o *DFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth returns an Option that limits traversal depth to limit.
// A negative limit means unbounded.
func WithMaxDepth(limit int) Option {
	return func(o *DFSOptions) {
		o.MaxDepth = limit
	}
}

// WithFullTraversal returns an Option that enables forest traversal.
func WithFullTraversal() Option {
	return func(o *DFSOptions) {
		o.FullTraversal = true
	}
}

// Result is what one DFS run reached.
type Result struct {
	// Order lists vertices as they finished (post-order).
	Order []string
	// Depth is the tree depth of every reached vertex.
	Depth map[string]int
	// Parent links every non-root vertex to the vertex it was reached from.
	Parent map[string]string
	// Visited marks every reached vertex.
	Visited map[string]bool
}

// CycleOption configures SimpleCycles.
type CycleOption func(*cycleOptions)

type cycleOptions struct {
	ctx    context.Context
	maxLen int
	limit  int
}

func defaultCycleOptions() cycleOptions {
	return cycleOptions{ctx: context.Background()}
}

// WithMaxLength bounds cycles to at most n edges. n <= 0 means unbounded.
func WithMaxLength(n int) CycleOption {
	return func(o *cycleOptions) { o.maxLen = n }
}

// WithLimit stops the enumeration after n cycles. n <= 0 means no limit.
func WithLimit(n int) CycleOption {
	return func(o *cycleOptions) { o.limit = n }
}

// WithCycleContext sets the cancellation context. A nil ctx has no effect.
func WithCycleContext(ctx context.Context) CycleOption {
	return func(o *cycleOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}
