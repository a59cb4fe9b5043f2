// Package nofold checks that, within one row and one color, the derived
// horizontal edges form a partial function: every vertex has at most one
// outgoing and one incoming edge of that color, and no edge is matched by
// its reverse.
package nofold

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

// Check scans both row sequences of log front to back and reports every
// fold.
func Check(log *patternlog.Log) verdict.Result {
	return verdict.Collect(verdict.NoFold, Violations(log))
}

// Preflight runs Check against the log t would leave behind, with every
// pair recolored by the simulated merge. Nothing in t is modified.
func Preflight(t patternlog.Trial) verdict.Result {
	return Check(patternlog.Preview(t))
}

type colorIndex struct {
	out map[board.Vertex]patternlog.Edge
	in  map[board.Vertex]patternlog.Edge
}

// Violations lists every fold in sequence order, top row first.
func Violations(log *patternlog.Log) []verdict.Violation {
	var vs []verdict.Violation
	for _, r := range board.Rows {
		byColor := make(map[board.Color]*colorIndex)
		for _, e := range log.Sequence(r) {
			idx, ok := byColor[e.Color]
			if !ok {
				idx = &colorIndex{
					out: make(map[board.Vertex]patternlog.Edge),
					in:  make(map[board.Vertex]patternlog.Edge),
				}
				byColor[e.Color] = idx
			}
			from, to := e.Endpoints()

			if prev, ok := idx.out[from]; ok {
				if _, prevTo := prev.Endpoints(); prevTo != to {
					vs = append(vs, fold(verdict.KindMultipleOutgoing, r, prev, e,
						fmt.Sprintf("%s leaves %s twice in %s", e.Color, from, r)))
				}
			}
			if prev, ok := idx.in[to]; ok {
				if prevFrom, _ := prev.Endpoints(); prevFrom != from {
					vs = append(vs, fold(verdict.KindMultipleIncoming, r, prev, e,
						fmt.Sprintf("%s enters %s twice in %s", e.Color, to, r)))
				}
			}
			if prev, ok := idx.out[to]; ok {
				if _, prevTo := prev.Endpoints(); prevTo == from {
					vs = append(vs, fold(verdict.KindTwoCycle, r, prev, e,
						fmt.Sprintf("%s runs %s and back in %s", e.Color, e.ID, r)))
				}
			}

			if _, ok := idx.out[from]; !ok {
				idx.out[from] = e
			}
			if _, ok := idx.in[to]; !ok {
				idx.in[to] = e
			}
		}
	}

	return vs
}

func fold(kind verdict.Kind, r board.Row, prev, cur patternlog.Edge, detail string) verdict.Violation {
	return verdict.Violation{
		Code:   verdict.NoFold,
		Kind:   kind,
		Row:    r,
		Edges:  []verdict.EdgeRef{prev.Ref(), cur.Ref()},
		Detail: detail,
	}
}

// Folds returns the sorted, distinct combination keys named by vs, suitable
// for highlighting.
func Folds(vs []verdict.Violation) []string {
	var keys []string
	for _, v := range vs {
		for _, e := range v.Edges {
			if !slices.Contains(keys, e.ID) {
				keys = append(keys, e.ID)
			}
		}
	}
	slices.Sort(keys)

	return keys
}
