// Package orientation assigns and validates the left/right direction of
// each same-row combination.
//
// A completed pair implies, per row, a direction from the first
// connection's vertex to the second's. An unset key takes the implied
// direction (so a first pair drawn low-to-high stores right); a stored key
// that disagrees is a conflict. The row's directed graph must also stay
// free of cycles shorter than four edges.
//
// Preflight is pure; Apply is the only mutation.
package orientation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/dfs"
	"github.com/katalvlaran/tworow/verdict"
)

// DefaultMinCycle is the shortest directed cycle a row may contain.
const DefaultMinCycle = 4

// ErrRejected is returned by Apply for an Outcome with violations.
var ErrRejected = errors.New("orientation: outcome has violations")

// Assignment is one orientation for one combination.
type Assignment struct {
	Combination board.Combination
	Orientation board.Orientation
}

// Outcome is the result of a preflight.
type Outcome struct {
	// Implied holds the direction the pair implies per row (Unset for a
	// degenerate row).
	Implied [2]board.Orientation
	// Assignments are the keys Apply will set.
	Assignments []Assignment
	// Violations are conflicts or short cycles; empty means the pair fits.
	Violations []verdict.Violation
}

// OK reports whether the outcome has no violations.
func (o Outcome) OK() bool { return len(o.Violations) == 0 }

// Result converts the outcome to an ORIENTATION verdict.
func (o Outcome) Result() verdict.Result {
	return verdict.Collect(verdict.Orientation, o.Violations)
}

// Option tunes Preflight.
type Option func(*options)

type options struct {
	minCycle int
}

// WithMinCycle sets the shortest permitted directed cycle. n < 2 disables
// the cycle test.
func WithMinCycle(n int) Option {
	return func(o *options) { o.minCycle = n }
}

// Preflight computes what committing pair would do to maps without
// touching them. color is the pair's color after grouping; it only
// decorates violation edges.
//
// A rejected pair is an Outcome with violations. The error is reserved for
// maps that cannot be read as row graphs (malformed keys) and wraps
// board.ErrContract in that case.
func Preflight(maps Maps, pair board.Pair, color board.Color, opts ...Option) (Outcome, error) {
	o := options{minCycle: DefaultMinCycle}
	for _, fn := range opts {
		fn(&o)
	}

	var (
		out         Outcome
		conflicts   []string
		conflictRow board.Row
	)
	for _, r := range board.Rows {
		c := pair.Combination(r)
		if c.Degenerate() {
			continue
		}
		implied := c.Implied(pair.First.Endpoint(r))
		out.Implied[r] = implied
		switch stored := maps.Lookup(c); stored {
		case board.Unset:
			out.Assignments = append(out.Assignments, Assignment{Combination: c, Orientation: implied})
		case implied:
		default:
			if len(conflicts) == 0 {
				conflictRow = r
			}
			conflicts = append(conflicts, fmt.Sprintf("%s stored %s, pair implies %s", c.Key(), stored, implied))
		}
	}
	if len(conflicts) > 0 {
		out.Violations = append(out.Violations, verdict.Violation{
			Code:   verdict.Orientation,
			Kind:   verdict.KindConflict,
			Row:    conflictRow,
			Edges:  pairEdges(maps, pair, color, out.Implied),
			Detail: strings.Join(conflicts, "; "),
		})

		return out, nil
	}
	if o.minCycle < 2 || len(out.Assignments) == 0 {
		return out, nil
	}

	trial := maps.Clone()
	for _, a := range out.Assignments {
		trial.Row(a.Combination.Row)[a.Combination.Key()] = a.Orientation
	}
	for _, a := range out.Assignments {
		v, ok, err := shortCycle(trial, a, color, o.minCycle)
		if err != nil {
			return Outcome{}, fmt.Errorf("orientation: Preflight: %w", err)
		}
		if ok {
			out.Violations = append(out.Violations, v)
		}
	}

	return out, nil
}

// Apply commits the assignments of a passing outcome to maps.
func Apply(maps *Maps, o Outcome) error {
	if !o.OK() {
		return ErrRejected
	}
	for _, a := range o.Assignments {
		maps.Row(a.Combination.Row)[a.Combination.Key()] = a.Orientation
	}

	return nil
}

// ApplyAssignments commits only the unset keys of o, ignoring violations.
// Levels that do not enforce orientation still record first-come directions.
func ApplyAssignments(maps *Maps, o Outcome) {
	for _, a := range o.Assignments {
		key := a.Combination.Key()
		row := maps.Row(a.Combination.Row)
		if _, set := row[key]; !set {
			row[key] = a.Orientation
		}
	}
}

// pairEdges describes both row edges of pair: id, vertices, current color,
// stored orientation (or the implied one when unset).
func pairEdges(maps Maps, pair board.Pair, color board.Color, implied [2]board.Orientation) []verdict.EdgeRef {
	refs := make([]verdict.EdgeRef, 0, 2)
	for _, r := range board.Rows {
		c := pair.Combination(r)
		if c.Degenerate() {
			continue
		}
		o := maps.Lookup(c)
		if o == board.Unset {
			o = implied[r]
		}
		refs = append(refs, verdict.EdgeRef{
			ID:          c.Key(),
			Row:         r,
			Vertices:    c.Vertices(),
			Color:       color,
			Orientation: o,
		})
	}

	return refs
}

// shortCycle looks for a directed cycle shorter than minCycle through the
// freshly assigned edge a.
func shortCycle(trial Maps, a Assignment, color board.Color, minCycle int) (verdict.Violation, bool, error) {
	r := a.Combination.Row
	g, err := trial.Graph(r, true)
	if err != nil {
		return verdict.Violation{}, false, err
	}
	cycles, err := dfs.SimpleCycles(g, dfs.WithMaxLength(minCycle-1))
	if err != nil {
		return verdict.Violation{}, false, fmt.Errorf("%w: %s cycles: %w", ErrInvalidEntry, r, err)
	}
	from, to := a.Combination.Endpoints(a.Orientation)
	for _, cyc := range cycles {
		if !usesEdge(cyc, from.ID(), to.ID()) {
			continue
		}
		vertices := make([]board.Vertex, 0, len(cyc))
		for _, id := range cyc {
			vertices = append(vertices, board.MustParseVertex(id))
		}
		edges := make([]verdict.EdgeRef, 0, len(cyc)-1)
		for i := 0; i+1 < len(vertices); i++ {
			c, _ := board.Combine(vertices[i], vertices[i+1])
			ref := verdict.EdgeRef{
				ID:          c.Key(),
				Row:         r,
				Vertices:    c.Vertices(),
				Orientation: trial.Lookup(c),
			}
			if c == a.Combination {
				ref.Color = color
			}
			edges = append(edges, ref)
		}

		return verdict.Violation{
			Code:   verdict.Orientation,
			Kind:   verdict.KindShortCycle,
			Row:    r,
			Edges:  edges,
			Cycle:  vertices,
			Detail: fmt.Sprintf("%s directed cycle of length %d: %s", r, len(cyc)-1, strings.Join(cyc, "->")),
		}, true, nil
	}

	return verdict.Violation{}, false, nil
}

func usesEdge(closed []string, from, to string) bool {
	for i := 0; i+1 < len(closed); i++ {
		if closed[i] == from && closed[i+1] == to {
			return true
		}
	}

	return false
}
