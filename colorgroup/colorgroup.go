// Package colorgroup merges connection pairs that share a same-row
// combination into ownership groups with one canonical color.
//
// Groups live in an arena; a combination-key index points into it. Merging
// two groups tombstones the absorbed record and rewrites every index entry
// that pointed at it, so each key maps to at most one live group and no
// group references another.
package colorgroup

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/katalvlaran/tworow/board"
)

// ErrUncolored is returned when a pair must seed a new group but its first
// connection carries no color.
var ErrUncolored = fmt.Errorf("%w: colorgroup: pair has no color", board.ErrContract)

// Group is one color class.
type Group struct {
	ID       int             `json:"id"`
	Color    board.Color     `json:"color"`
	Vertices []board.Vertex  `json:"vertices"`
	Pairs    []board.PairKey `json:"pairs"`
	Keys     []string        `json:"keys"`
}

func (g Group) clone() Group {
	g.Vertices = slices.Clone(g.Vertices)
	g.Pairs = slices.Clone(g.Pairs)
	g.Keys = slices.Clone(g.Keys)

	return g
}

type record struct {
	Group
	absorbed bool
}

// Groups is the arena plus the combination-key index. The zero value is
// ready to use.
type Groups struct {
	arena []record
	index map[string]int
}

// New returns an empty Groups.
func New() *Groups {
	return &Groups{index: make(map[string]int)}
}

// Merge is the outcome of merging one pair.
type Merge struct {
	// Color is the effective color for the pair and every group member.
	Color board.Color
	// Group is the ID of the surviving group.
	Group int
	// Created is true when no existing group matched.
	Created bool
	// Absorbed lists the IDs of groups folded into Group.
	Absorbed []int
}

// Merge registers pair in the group owning either of its combination keys.
// The bottom key is looked up first; the first group found survives. With
// no match a new group is seeded with the first connection's color.
func (gs *Groups) Merge(pair board.Pair) (Merge, error) {
	if gs.index == nil {
		gs.index = make(map[string]int)
	}
	bottomKey := pair.Combination(board.Bottom).Key()
	topKey := pair.Combination(board.Top).Key()

	bi, bok := gs.index[bottomKey]
	ti, tok := gs.index[topKey]

	var m Merge
	switch {
	case !bok && !tok:
		if pair.First.Color == "" {
			return Merge{}, ErrUncolored
		}
		m.Group = len(gs.arena)
		m.Created = true
		gs.arena = append(gs.arena, record{Group: Group{ID: m.Group, Color: pair.First.Color}})
	case bok && tok && bi != ti:
		m.Group = bi
		gs.absorb(bi, ti)
		m.Absorbed = []int{ti}
	case bok:
		m.Group = bi
	default:
		m.Group = ti
	}

	g := &gs.arena[m.Group].Group
	for _, v := range []board.Vertex{pair.First.Top, pair.First.Bottom, pair.Second.Top, pair.Second.Bottom} {
		g.Vertices = insertVertex(g.Vertices, v)
	}
	g.Pairs = insertSorted(g.Pairs, pair.Key())
	for _, k := range []string{bottomKey, topKey} {
		g.Keys = insertSorted(g.Keys, k)
		gs.index[k] = m.Group
	}
	m.Color = g.Color

	return m, nil
}

// absorb moves everything owned by src into dst and tombstones src.
func (gs *Groups) absorb(dst, src int) {
	d, s := &gs.arena[dst], &gs.arena[src]
	for _, v := range s.Vertices {
		d.Vertices = insertVertex(d.Vertices, v)
	}
	for _, p := range s.Pairs {
		d.Pairs = insertSorted(d.Pairs, p)
	}
	for _, k := range s.Keys {
		d.Keys = insertSorted(d.Keys, k)
	}
	for k, i := range gs.index {
		if i == src {
			gs.index[k] = dst
		}
	}
	s.absorbed = true
	s.Vertices, s.Pairs, s.Keys = nil, nil, nil
}

// Simulate computes the Merge of pair on a deep copy, leaving gs untouched.
// The returned Groups is the merged copy.
func (gs *Groups) Simulate(pair board.Pair) (Merge, *Groups, error) {
	c := gs.Clone()
	m, err := c.Merge(pair)
	if err != nil {
		return Merge{}, nil, err
	}

	return m, c, nil
}

// Clone returns a deep copy.
func (gs *Groups) Clone() *Groups {
	c := &Groups{
		arena: make([]record, len(gs.arena)),
		index: make(map[string]int, len(gs.index)),
	}
	for i, r := range gs.arena {
		c.arena[i] = record{Group: r.Group.clone(), absorbed: r.absorbed}
	}
	for k, i := range gs.index {
		c.index[k] = i
	}

	return c
}

// Lookup returns the live group owning key.
func (gs *Groups) Lookup(key string) (Group, bool) {
	i, ok := gs.index[key]
	if !ok {
		return Group{}, false
	}

	return gs.arena[i].Group.clone(), true
}

// ColorOf returns the color of the group owning key, or "".
func (gs *Groups) ColorOf(key string) board.Color {
	if i, ok := gs.index[key]; ok {
		return gs.arena[i].Color
	}

	return ""
}

// ColorOfPair returns the color of the group that owns pair.
func (gs *Groups) ColorOfPair(pair board.Pair) (board.Color, bool) {
	for _, r := range board.Rows {
		if c := gs.ColorOf(pair.Combination(r).Key()); c != "" {
			return c, true
		}
	}

	return "", false
}

// Groups returns the live groups in creation order.
func (gs *Groups) Groups() []Group {
	out := make([]Group, 0, len(gs.arena))
	for _, r := range gs.arena {
		if !r.absorbed {
			out = append(out, r.Group.clone())
		}
	}

	return out
}

// Len returns the number of live groups.
func (gs *Groups) Len() int {
	n := 0
	for _, r := range gs.arena {
		if !r.absorbed {
			n++
		}
	}

	return n
}

// MarshalJSON encodes the live groups. Tombstones are not persisted.
func (gs *Groups) MarshalJSON() ([]byte, error) {
	return json.Marshal(gs.Groups())
}

// UnmarshalJSON rebuilds the arena and index from encoded groups.
func (gs *Groups) UnmarshalJSON(b []byte) error {
	var groups []Group
	if err := json.Unmarshal(b, &groups); err != nil {
		return fmt.Errorf("colorgroup: decode: %w", err)
	}
	gs.arena = make([]record, 0, len(groups))
	gs.index = make(map[string]int)
	for i, g := range groups {
		g.ID = i
		gs.arena = append(gs.arena, record{Group: g})
		for _, k := range g.Keys {
			if _, dup := gs.index[k]; dup {
				return fmt.Errorf("colorgroup: decode: key %q owned by two groups", k)
			}
			gs.index[k] = i
		}
	}

	return nil
}

func insertSorted[T ~string](s []T, v T) []T {
	i, found := slices.BinarySearch(s, v)
	if found {
		return s
	}

	return slices.Insert(s, i, v)
}

func insertVertex(s []board.Vertex, v board.Vertex) []board.Vertex {
	i, found := slices.BinarySearchFunc(s, v, board.Compare)
	if found {
		return s
	}

	return slices.Insert(s, i, v)
}
