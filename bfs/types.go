package bfs

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrGraphNil is returned for a nil graph.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrStartVertexNotFound is returned when the root is not in the graph.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrOptionViolation is returned for an invalid Option.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNeighbors wraps a failed neighbor lookup.
	ErrNeighbors = errors.New("bfs: neighbor iteration error")

	// ErrDirectedGraph is returned by ShortestCycle for directed graphs.
	ErrDirectedGraph = errors.New("bfs: directed graphs not supported")
)

// Option configures one BFS run.
type Option func(*BFSOptions)

// BFSOptions holds the parameters of one BFS run.
type BFSOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a BFSOptions with:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
func DefaultOptions() BFSOptions {
	return BFSOptions{
		Ctx:      context.Background(),
		MaxDepth: 0,
	}
}

// WithContext sets a custom context for cancellation.
// A nil ctx has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *BFSOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxDepth limits the search depth:
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option, BFS returns ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *BFSOptions) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}

// Tree is the BFS tree grown from one root.
type Tree struct {
	// Root is the start vertex.
	Root string
	// Order lists vertices in visit order.
	Order []string
	// Depth is the edge distance from Root.
	Depth map[string]int
	// Parent links every non-root vertex to its predecessor.
	Parent map[string]string
}

// PathTo returns the tree path Root..dest.
func (t *Tree) PathTo(dest string) ([]string, error) {
	d, ok := t.Depth[dest]
	if !ok {
		return nil, fmt.Errorf("bfs: no path to %q", dest)
	}
	path := make([]string, d+1)
	cur := dest
	for i := d; i >= 0; i-- {
		path[i] = cur
		cur = t.Parent[cur]
	}

	return path, nil
}
