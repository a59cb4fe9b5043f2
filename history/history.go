// Package history holds deep snapshots of committed board state and the
// bounded stack undo pops them from.
//
// The pattern log is deliberately absent: it is re-derived from Pairs and
// Orientation whenever a snapshot is restored.
package history

import (
	"slices"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/colorgroup"
	"github.com/katalvlaran/tworow/orientation"
)

// RowCounts is the number of vertices in each row.
type RowCounts struct {
	Top    uint `json:"top"`
	Bottom uint `json:"bottom"`
}

// Of returns the count of row r.
func (rc RowCounts) Of(r board.Row) uint {
	if r == board.Top {
		return rc.Top
	}

	return rc.Bottom
}

// Contains reports whether v lies within the current rows.
func (rc RowCounts) Contains(v board.Vertex) bool {
	return v.Index < rc.Of(v.Row)
}

// Snapshot is the full committed state of one board.
type Snapshot struct {
	Connections  []board.Connection `json:"connections"`
	Pairs        []board.Pair       `json:"pairs"`
	Pending      *board.Connection  `json:"pending,omitempty"`
	Groups       *colorgroup.Groups `json:"groups"`
	Rows         RowCounts          `json:"rows"`
	Orientation  orientation.Maps   `json:"orientation"`
	ColorCounter int                `json:"colorCounter"`
}

// Empty returns the state of a fresh board: one vertex per row.
func Empty() Snapshot {
	return Snapshot{
		Connections: []board.Connection{},
		Pairs:       []board.Pair{},
		Groups:      colorgroup.New(),
		Rows:        RowCounts{Top: 1, Bottom: 1},
		Orientation: orientation.NewMaps(),
	}
}

// Clone returns a deep copy.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Connections = slices.Clone(s.Connections)
	c.Pairs = slices.Clone(s.Pairs)
	if s.Pending != nil {
		p := *s.Pending
		c.Pending = &p
	}
	if s.Groups != nil {
		c.Groups = s.Groups.Clone()
	} else {
		c.Groups = colorgroup.New()
	}
	c.Orientation = s.Orientation.Clone()

	return c
}

// Stack is a LIFO of snapshots. A positive limit drops the oldest entries
// once exceeded.
type Stack struct {
	items []Snapshot
	limit int
}

// NewStack returns an empty stack; limit <= 0 means unbounded.
func NewStack(limit int) *Stack {
	return &Stack{limit: limit}
}

// Push stores a deep copy of s.
func (st *Stack) Push(s Snapshot) {
	st.items = append(st.items, s.Clone())
	if st.limit > 0 && len(st.items) > st.limit {
		st.items = slices.Delete(st.items, 0, len(st.items)-st.limit)
	}
}

// Pop removes and returns the newest snapshot.
func (st *Stack) Pop() (Snapshot, bool) {
	if len(st.items) == 0 {
		return Snapshot{}, false
	}
	s := st.items[len(st.items)-1]
	st.items = st.items[:len(st.items)-1]

	return s, true
}

// Len returns the number of stored snapshots.
func (st *Stack) Len() int { return len(st.items) }

// Clear drops every snapshot.
func (st *Stack) Clear() { st.items = nil }
