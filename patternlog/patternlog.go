// Package patternlog keeps the ordered ledger of horizontal edges derived
// from committed pairs, one sequence per row.
//
// Edges are never created directly. Derive computes them from a pair and the
// resolved orientation maps; Append pushes them; Rebuild discards everything
// and re-derives from the full pair history, which is how the log is
// restored after undo. Sequence order is append order and is what the fold
// check scans.
package patternlog

import (
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/verdict"
)

// Edge is one derived horizontal edge.
type Edge struct {
	ID          string            `json:"id"`
	Row         board.Row         `json:"row"`
	Vertices    [2]board.Vertex   `json:"vertices"`
	Color       board.Color       `json:"color"`
	Orientation board.Orientation `json:"orientation"`
	PairID      board.PairKey     `json:"pairId"`
}

// Endpoints returns (from, to) following the edge orientation.
func (e Edge) Endpoints() (board.Vertex, board.Vertex) {
	if e.Orientation == board.Left {
		return e.Vertices[1], e.Vertices[0]
	}

	return e.Vertices[0], e.Vertices[1]
}

// Ref converts e to the highlight form used in violations.
func (e Edge) Ref() verdict.EdgeRef {
	return verdict.EdgeRef{
		ID:          e.ID,
		Row:         e.Row,
		Vertices:    e.Vertices,
		Color:       e.Color,
		Orientation: e.Orientation,
	}
}

// Derived holds at most one edge per row for one pair.
type Derived struct {
	PairID board.PairKey
	Top    *Edge
	Bottom *Edge
}

// Edges returns the derived edges, top first.
func (d Derived) Edges() []Edge {
	out := make([]Edge, 0, 2)
	if d.Top != nil {
		out = append(out, *d.Top)
	}
	if d.Bottom != nil {
		out = append(out, *d.Bottom)
	}

	return out
}

// Derive builds the horizontal edges of pair from the resolved orientation of
// each row's combination. A row whose key is unset, or whose combination is
// degenerate, yields no edge. The edge color is the pair color.
func Derive(pair board.Pair, maps orientation.Maps) Derived {
	d := Derived{PairID: pair.Key()}
	for _, r := range board.Rows {
		c := pair.Combination(r)
		if c.Degenerate() {
			continue
		}
		o := maps.Lookup(c)
		if o == board.Unset {
			continue
		}
		e := &Edge{
			ID:          c.Key(),
			Row:         r,
			Vertices:    c.Vertices(),
			Color:       pair.Color(),
			Orientation: o,
			PairID:      d.PairID,
		}
		if r == board.Top {
			d.Top = e
		} else {
			d.Bottom = e
		}
	}

	return d
}

// Log is the two-row ledger. The zero value is usable and logs to
// slog.Default().
type Log struct {
	top    []Edge
	bottom []Edge
	logger *slog.Logger
}

// Option configures a Log.
type Option func(*Log)

// WithLogger routes mutation traces to l.
func WithLogger(l *slog.Logger) Option {
	return func(lg *Log) { lg.logger = l }
}

// New returns an empty Log.
func New(opts ...Option) *Log {
	l := &Log{}
	for _, fn := range opts {
		fn(l)
	}

	return l
}

// Rebuild returns a new Log re-derived from pairs in order.
func Rebuild(pairs []board.Pair, maps orientation.Maps, opts ...Option) *Log {
	l := New(opts...)
	l.Rebuild(pairs, maps)

	return l
}

// Append pushes the edges of d, stamped with pairID, to the end of their
// row sequences.
func (l *Log) Append(pairID board.PairKey, d Derived) {
	if d.Top != nil {
		e := *d.Top
		e.PairID = pairID
		l.top = append(l.top, e)
	}
	if d.Bottom != nil {
		e := *d.Bottom
		e.PairID = pairID
		l.bottom = append(l.bottom, e)
	}
	l.trace("append", pairID)
}

// Rebuild clears both sequences and re-derives every pair in order.
func (l *Log) Rebuild(pairs []board.Pair, maps orientation.Maps) {
	l.top, l.bottom = nil, nil
	for _, p := range pairs {
		d := Derive(p, maps)
		if d.Top != nil {
			l.top = append(l.top, *d.Top)
		}
		if d.Bottom != nil {
			l.bottom = append(l.bottom, *d.Bottom)
		}
	}
	l.trace("rebuild", "")
}

// RemoveByPairID drops every edge stamped with id and returns how many were
// removed.
func (l *Log) RemoveByPairID(id board.PairKey) int {
	n := l.Len()
	match := func(e Edge) bool { return e.PairID == id }
	l.top = slices.DeleteFunc(l.top, match)
	l.bottom = slices.DeleteFunc(l.bottom, match)
	l.trace("remove", id)

	return n - l.Len()
}

// Clear empties the log.
func (l *Log) Clear() {
	l.top, l.bottom = nil, nil
	l.trace("clear", "")
}

// Clone returns an independent copy sharing the logger.
func (l *Log) Clone() *Log {
	return &Log{
		top:    slices.Clone(l.top),
		bottom: slices.Clone(l.bottom),
		logger: l.logger,
	}
}

// With returns a clone with d appended under its own PairID. l is unchanged.
func (l *Log) With(d Derived) *Log {
	c := l.Clone()
	c.Append(d.PairID, d)

	return c
}

// Sequence returns a copy of the sequence of row r.
func (l *Log) Sequence(r board.Row) []Edge {
	if r == board.Top {
		return slices.Clone(l.top)
	}

	return slices.Clone(l.bottom)
}

// Len returns the number of edges across both rows.
func (l *Log) Len() int { return len(l.top) + len(l.bottom) }

type wire struct {
	Top    []Edge `json:"topSequence"`
	Bottom []Edge `json:"bottomSequence"`
}

// MarshalJSON encodes both sequences.
func (l *Log) MarshalJSON() ([]byte, error) {
	w := wire{Top: l.top, Bottom: l.bottom}
	if w.Top == nil {
		w.Top = []Edge{}
	}
	if w.Bottom == nil {
		w.Bottom = []Edge{}
	}

	return json.Marshal(w)
}

func (l *Log) trace(action string, pairID board.PairKey) {
	lg := l.logger
	if lg == nil {
		lg = slog.Default()
	}
	lg.Debug("patternlog: "+action,
		slog.String("pair", string(pairID)),
		slog.Int("top", len(l.top)),
		slog.Int("bottom", len(l.bottom)),
	)
}
