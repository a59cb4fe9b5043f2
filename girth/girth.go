// Package girth checks that neither row graph contains a cycle shorter than
// a level's minimum.
//
// Each row is read as an undirected graph whose edges are the combination
// keys of that row's orientation map; direction plays no part. Two search
// methods are offered:
//
//	Exhaustive - enumerate simple cycles by DFS, pruned below the bound.
//	BFS        - shortest cycle by breadth-first search from every vertex.
//
// Exhaustive enumeration is exponential on dense graphs; board rows are
// small. Both methods agree on pass/fail and on the reported length.
package girth

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/katalvlaran/tworow/bfs"
	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/dfs"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/verdict"
)

// Method selects the cycle search.
type Method string

const (
	// Exhaustive enumerates all short simple cycles.
	Exhaustive Method = "exhaustive"
	// BFS finds one shortest cycle per row.
	BFS Method = "bfs"
)

// ErrUnknownMethod is returned by ParseMethod.
var ErrUnknownMethod = errors.New("girth: unknown method")

// ParseMethod accepts "exhaustive" and "bfs" (case-insensitive); "" is
// Exhaustive.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", Exhaustive:
		return Exhaustive, nil
	case BFS:
		return BFS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Option tunes Check.
type Option func(*options)

type options struct {
	method Method
	ctx    context.Context
}

// WithMethod selects the search method.
func WithMethod(m Method) Option {
	return func(o *options) { o.method = m }
}

// WithContext makes the search cancellable.
func WithContext(ctx context.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

// Check fails with one violation per row that holds a cycle of fewer than
// bound edges, naming the shortest such cycle. A search that cannot finish
// (cancellation, malformed key) is an error, not a verdict.
//
// Simple undirected cycles have at least three edges, so a bound of three or
// less always passes.
func Check(maps orientation.Maps, bound int, opts ...Option) (verdict.Result, error) {
	o := options{method: Exhaustive, ctx: context.Background()}
	for _, fn := range opts {
		fn(&o)
	}
	if bound <= 3 {
		return verdict.Pass(), nil
	}

	var vs []verdict.Violation
	for _, r := range board.Rows {
		cycle, count, err := shortest(o, maps, r, bound-1)
		if err != nil {
			return verdict.Result{}, fmt.Errorf("girth: %s: %w", r, err)
		}
		if cycle == nil {
			continue
		}
		vs = append(vs, violation(maps, r, cycle, count, bound))
	}

	return verdict.Collect(verdict.Girth, vs), nil
}

// Shortest returns the shortest cycle of row r with at most maxLen edges
// (maxLen <= 0: any length), closed as [v0, ..., v0], or nil.
func Shortest(maps orientation.Maps, r board.Row, maxLen int, opts ...Option) ([]string, error) {
	o := options{method: Exhaustive, ctx: context.Background()}
	for _, fn := range opts {
		fn(&o)
	}
	cycle, _, err := shortest(o, maps, r, maxLen)

	return cycle, err
}

// shortest also reports how many distinct short cycles the exhaustive
// method saw; BFS always reports one.
func shortest(o options, maps orientation.Maps, r board.Row, maxLen int) ([]string, int, error) {
	g, err := maps.Graph(r, false)
	if err != nil {
		return nil, 0, err
	}
	if o.method == BFS {
		cycle, err := bfs.ShortestCycle(o.ctx, g, maxLen)
		if err != nil || cycle == nil {
			return nil, 0, err
		}
		return cycle, 1, nil
	}

	cycles, err := dfs.SimpleCycles(g, dfs.WithMaxLength(maxLen), dfs.WithCycleContext(o.ctx))
	if err != nil {
		return nil, 0, err
	}
	if len(cycles) == 0 {
		return nil, 0, nil
	}

	return cycles[0], len(distinct(cycles)), nil
}

// distinct dedupes cycles by their sorted vertex set.
func distinct(cycles [][]string) map[string]struct{} {
	seen := make(map[string]struct{}, len(cycles))
	for _, c := range cycles {
		set := slices.Clone(c[:len(c)-1])
		slices.SortFunc(set, board.CompareIDs)
		seen[strings.Join(set, ",")] = struct{}{}
	}

	return seen
}

func violation(maps orientation.Maps, r board.Row, cycle []string, count, bound int) verdict.Violation {
	vertices := make([]board.Vertex, 0, len(cycle))
	for _, id := range cycle {
		vertices = append(vertices, board.MustParseVertex(id))
	}
	edges := make([]verdict.EdgeRef, 0, len(cycle)-1)
	for i := 0; i+1 < len(vertices); i++ {
		c, _ := board.Combine(vertices[i], vertices[i+1])
		edges = append(edges, verdict.EdgeRef{
			ID:          c.Key(),
			Row:         r,
			Vertices:    c.Vertices(),
			Orientation: maps.Lookup(c),
		})
	}
	detail := fmt.Sprintf("%s cycle of length %d < %d: %s", r, len(cycle)-1, bound, strings.Join(cycle[:len(cycle)-1], ","))
	if count > 1 {
		detail += fmt.Sprintf(" (%d short cycles)", count)
	}

	return verdict.Violation{
		Code:   verdict.Girth,
		Kind:   verdict.KindCycleTooShort,
		Row:    r,
		Edges:  edges,
		Cycle:  vertices,
		Detail: detail,
	}
}
