package orientation

import (
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/core"
)

// ErrInvalidEntry marks an orientation entry no board could have produced.
var ErrInvalidEntry = fmt.Errorf("%w: orientation entry", board.ErrContract)

// Maps holds the stored orientation of every combination key, per row.
type Maps struct {
	Top    map[string]board.Orientation `json:"top"`
	Bottom map[string]board.Orientation `json:"bottom"`
}

// NewMaps returns empty maps.
func NewMaps() Maps {
	return Maps{
		Top:    make(map[string]board.Orientation),
		Bottom: make(map[string]board.Orientation),
	}
}

// Row returns the map for r, allocating it on first use.
func (m *Maps) Row(r board.Row) map[string]board.Orientation {
	if r == board.Top {
		if m.Top == nil {
			m.Top = make(map[string]board.Orientation)
		}
		return m.Top
	}
	if m.Bottom == nil {
		m.Bottom = make(map[string]board.Orientation)
	}

	return m.Bottom
}

// Clone returns a deep copy.
func (m Maps) Clone() Maps {
	c := NewMaps()
	maps.Copy(c.Top, m.Top)
	maps.Copy(c.Bottom, m.Bottom)

	return c
}

// Lookup returns the stored orientation of c, or board.Unset.
func (m Maps) Lookup(c board.Combination) board.Orientation {
	if c.Row == board.Top {
		return m.Top[c.Key()]
	}

	return m.Bottom[c.Key()]
}

// Len returns the number of entries across both rows.
func (m Maps) Len() int { return len(m.Top) + len(m.Bottom) }

// Keys returns the combination keys of row r in vertex-index order.
func (m Maps) Keys(r board.Row) []string {
	src := m.Bottom
	if r == board.Top {
		src = m.Top
	}
	keys := slices.Collect(maps.Keys(src))
	slices.SortFunc(keys, compareKeys)

	return keys
}

// Entries returns the combinations of row r with their orientations, in
// vertex-index order. Keys that do not parse are reported as an error.
func (m Maps) Entries(r board.Row) ([]Assignment, error) {
	keys := m.Keys(r)
	src := m.Bottom
	if r == board.Top {
		src = m.Top
	}
	out := make([]Assignment, 0, len(keys))
	for _, k := range keys {
		c, err := board.ParseCombinationKey(k)
		if err != nil {
			return nil, fmt.Errorf("orientation: entry %q: %w", k, err)
		}
		out = append(out, Assignment{Combination: c, Orientation: src[k]})
	}

	return out, nil
}

// Validate checks every entry of both rows: the key is a canonical
// combination of two distinct vertices of that row, and the value is left
// or right. Errors wrap board.ErrContract.
func (m Maps) Validate() error {
	for _, r := range board.Rows {
		src := m.Bottom
		if r == board.Top {
			src = m.Top
		}
		for _, k := range m.Keys(r) {
			c, err := board.ParseCombinationKey(k)
			if err != nil {
				return fmt.Errorf("orientation: entry %q: %w", k, err)
			}
			switch {
			case c.Row != r:
				return fmt.Errorf("%w: %q stored under %s", board.ErrRowMismatch, k, r)
			case c.Degenerate():
				return fmt.Errorf("%w: %q joins a vertex to itself", ErrInvalidEntry, k)
			case c.Key() != k:
				return fmt.Errorf("%w: %q is not canonical (want %q)", ErrInvalidEntry, k, c.Key())
			case !src[k].Valid():
				return fmt.Errorf("%w: %q has orientation %q", ErrInvalidEntry, k, src[k])
			}
		}
	}

	return nil
}

// Graph builds the row graph of r: one edge per entry, oriented by its
// stored value when directed, plain otherwise. Vertices enumerate by index.
func (m Maps) Graph(r board.Row, directed bool) (*core.Graph, error) {
	entries, err := m.Entries(r)
	if err != nil {
		return nil, err
	}
	g := core.NewGraph(core.WithDirected(directed), core.WithVertexOrder(board.CompareIDs))
	for _, a := range entries {
		if a.Combination.Degenerate() {
			continue
		}
		from, to := a.Combination.Endpoints(a.Orientation)
		if _, err = g.AddEdge(from.ID(), to.ID()); err != nil {
			return nil, fmt.Errorf("%w: graph %s: %w", ErrInvalidEntry, r, err)
		}
	}

	return g, nil
}

// compareKeys orders "top-0,top-1" before "top-0,top-10" before "top-1,top-2".
func compareKeys(a, b string) int {
	ca, errA := board.ParseCombinationKey(a)
	cb, errB := board.ParseCombinationKey(b)
	if errA != nil || errB != nil {
		return board.CompareIDs(a, b)
	}
	if c := board.Compare(ca.Low, cb.Low); c != 0 {
		return c
	}

	return board.Compare(ca.High, cb.High)
}
