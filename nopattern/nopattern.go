// Package nopattern checks that no two horizontal trios share a signature.
//
// A trio is a center vertex with two of its row neighbors, ordered
// (pt1, center, pt3). When the center lies outside the index interval of its
// neighbors the neighbor farther from it is pt1; otherwise the lower index is
// pt1. The signature is "o1|c1|o2|c2", where o1 is "out" if the center is the
// source of the pt1 edge and c1 is that edge's color, and o2, c2 describe the
// pt3 edge the same way. Signatures are unique across both rows.
//
// Centers are visited in row then index order, neighbor pairs in index
// order, so repeated runs over one log yield identical trios.
package nopattern

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

// Direction labels used in signatures.
const (
	Out = "out"
	In  = "in"
)

func vertexComparator(a, b interface{}) int {
	return board.Compare(a.(board.Vertex), b.(board.Vertex))
}

// center is one vertex with its neighbors and the first edge seen to each.
type center struct {
	neighbors *treeset.Set
	edges     map[board.Vertex]patternlog.Edge
}

// index builds the center tree of log: vertex -> *center.
func index(log *patternlog.Log) *redblacktree.Tree {
	tree := redblacktree.NewWith(vertexComparator)
	link := func(v, n board.Vertex, e patternlog.Edge) {
		var c *center
		if found, ok := tree.Get(v); ok {
			c = found.(*center)
		} else {
			c = &center{
				neighbors: treeset.NewWith(vertexComparator),
				edges:     make(map[board.Vertex]patternlog.Edge),
			}
			tree.Put(v, c)
		}
		if _, seen := c.edges[n]; !seen {
			c.neighbors.Add(n)
			c.edges[n] = e
		}
	}
	for _, r := range board.Rows {
		for _, e := range log.Sequence(r) {
			link(e.Vertices[0], e.Vertices[1], e)
			link(e.Vertices[1], e.Vertices[0], e)
		}
	}

	return tree
}

// order returns (pt1, pt3) for the neighbors n1, n2 of c, with n1 < n2.
func order(c, n1, n2 board.Vertex) (board.Vertex, board.Vertex) {
	ic, i1, i2 := int(c.Index), int(n1.Index), int(n2.Index)
	outside := (ic < i1 && ic < i2) || (ic > i1 && ic > i2)
	if !outside {
		return n1, n2
	}
	if abs(i2-ic) > abs(i1-ic) {
		return n2, n1
	}

	return n1, n2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

func direction(e patternlog.Edge, c board.Vertex) string {
	if from, _ := e.Endpoints(); from == c {
		return Out
	}

	return In
}

type trio struct {
	verdict.Trio
	edges [2]patternlog.Edge
}

// walk calls fn for every trio in visiting order.
func walk(log *patternlog.Log, fn func(trio)) {
	it := index(log).Iterator()
	for it.Next() {
		v := it.Key().(board.Vertex)
		c := it.Value().(*center)
		ns := c.neighbors.Values()
		for i := 0; i < len(ns); i++ {
			for j := i + 1; j < len(ns); j++ {
				pt1, pt3 := order(v, ns[i].(board.Vertex), ns[j].(board.Vertex))
				e1, e2 := c.edges[pt1], c.edges[pt3]
				sig := strings.Join([]string{
					direction(e1, v), string(e1.Color),
					direction(e2, v), string(e2.Color),
				}, "|")
				fn(trio{
					Trio: verdict.Trio{
						Row:       v.Row,
						Points:    [3]board.Vertex{pt1, v, pt3},
						Signature: sig,
					},
					edges: [2]patternlog.Edge{e1, e2},
				})
			}
		}
	}
}

// Trios lists every trio of log with its signature.
func Trios(log *patternlog.Log) []verdict.Trio {
	var out []verdict.Trio
	walk(log, func(t trio) { out = append(out, t.Trio) })

	return out
}

// Violations reports every trio whose signature was already taken, naming
// the first holder of the signature and the repeat.
func Violations(log *patternlog.Log) []verdict.Violation {
	seen := make(map[string]trio)
	var vs []verdict.Violation
	walk(log, func(t trio) {
		first, dup := seen[t.Signature]
		if !dup {
			seen[t.Signature] = t
			return
		}
		vs = append(vs, verdict.Violation{
			Code: verdict.NoPattern,
			Kind: verdict.KindDuplicateTrio,
			Row:  t.Row,
			Edges: []verdict.EdgeRef{
				first.edges[0].Ref(), first.edges[1].Ref(),
				t.edges[0].Ref(), t.edges[1].Ref(),
			},
			Trios:  []verdict.Trio{first.Trio, t.Trio},
			Detail: fmt.Sprintf("signature %s repeats: %s and %s", t.Signature, first.Trio, t.Trio),
		})
	})

	return vs
}

// Check reports duplicate trio signatures across both rows of log.
func Check(log *patternlog.Log) verdict.Result {
	return verdict.Collect(verdict.NoPattern, Violations(log))
}

// Preflight runs Check against the log t would leave behind, with every
// pair recolored by the simulated merge. Nothing in t is modified.
func Preflight(t patternlog.Trial) verdict.Result {
	return Check(patternlog.Preview(t))
}
