package board

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Connection is one vertical link drawn by the player between a top and a
// bottom vertex. Color is assigned by the engine.
type Connection struct {
	Top    Vertex `json:"top"`
	Bottom Vertex `json:"bottom"`
	Color  Color  `json:"color,omitempty"`
}

// Connect builds a Connection from two vertices given in either order.
// It returns ErrRowMismatch unless exactly one endpoint is on each row.
func Connect(a, b Vertex) (Connection, error) {
	switch {
	case a.Row == Top && b.Row == Bottom:
		return Connection{Top: a, Bottom: b}, nil
	case a.Row == Bottom && b.Row == Top:
		return Connection{Top: b, Bottom: a}, nil
	default:
		return Connection{}, fmt.Errorf("%w: %s and %s", ErrRowMismatch, a, b)
	}
}

// Validate checks the row placement of both endpoints.
func (c Connection) Validate() error {
	if c.Top.Row != Top || c.Bottom.Row != Bottom {
		return fmt.Errorf("%w: connection %s", ErrRowMismatch, c.Key())
	}

	return nil
}

// Endpoint returns the endpoint on row r.
func (c Connection) Endpoint(r Row) Vertex {
	if r == Top {
		return c.Top
	}

	return c.Bottom
}

// SameLink reports whether c and o join the same two vertices.
func (c Connection) SameLink(o Connection) bool {
	return c.Top == o.Top && c.Bottom == o.Bottom
}

// Key returns "top-i|bottom-j", independent of color.
func (c Connection) Key() string {
	return c.Top.ID() + "|" + c.Bottom.ID()
}

// Pair is a completed connection pair: two vertical connections that share
// one color and together induce one horizontal edge per row.
type Pair struct {
	First  Connection `json:"first"`
	Second Connection `json:"second"`
}

// Validate checks both connections and rejects a pair that repeats the same
// link twice. Pairs whose connections share one vertex are valid: that row
// forms a degenerate combination.
func (p Pair) Validate() error {
	if err := p.First.Validate(); err != nil {
		return fmt.Errorf("%w: first: %v", ErrMalformedPair, err)
	}
	if err := p.Second.Validate(); err != nil {
		return fmt.Errorf("%w: second: %v", ErrMalformedPair, err)
	}
	if p.First.SameLink(p.Second) {
		return fmt.Errorf("%w: both connections are %s", ErrMalformedPair, p.First.Key())
	}

	return nil
}

// Color returns the pair color. After grouping both connections agree; the
// second connection wins otherwise, matching how edges are derived.
func (p Pair) Color() Color {
	if p.Second.Color != "" {
		return p.Second.Color
	}

	return p.First.Color
}

// WithColor returns a copy of p with both connections set to c.
func (p Pair) WithColor(c Color) Pair {
	p.First.Color = c
	p.Second.Color = c

	return p
}

// Combination returns the same-row combination induced on row r.
func (p Pair) Combination(r Row) Combination {
	// Endpoints of a validated pair always share row r, so Combine cannot fail.
	c, _ := Combine(p.First.Endpoint(r), p.Second.Endpoint(r))

	return c
}

// Key returns the canonical PairKey of p.
func (p Pair) Key() PairKey { return KeyOf(p) }

// String renders the pair as "top-0->bottom-0 , top-1->bottom-1".
func (p Pair) String() string {
	return p.First.Top.ID() + "->" + p.First.Bottom.ID() + " , " +
		p.Second.Top.ID() + "->" + p.Second.Bottom.ID()
}

// PairKey is an order-independent identity for a pair, built from the
// connections' vertex sets. Swapping First and Second yields the same key.
type PairKey string

// KeyOf computes the PairKey of p as a JSON-style list of the two sorted
// connection keys, e.g. ["top-0|bottom-0","top-1|bottom-1"].
func KeyOf(p Pair) PairKey {
	keys := []string{p.First.Key(), p.Second.Key()}
	sort.Strings(keys)

	return PairKey("[" + strconv.Quote(keys[0]) + "," + strconv.Quote(keys[1]) + "]")
}

// Combination is an unordered pair of same-row vertices, stored with Low at
// the smaller index. Its Key addresses orientation entries, color groups and
// horizontal edges.
type Combination struct {
	Row  Row
	Low  Vertex
	High Vertex
}

// Combine builds the combination of two same-row vertices.
func Combine(a, b Vertex) (Combination, error) {
	if a.Row != b.Row {
		return Combination{}, fmt.Errorf("%w: combine %s with %s", ErrRowMismatch, a, b)
	}
	if b.Index < a.Index {
		a, b = b, a
	}

	return Combination{Row: a.Row, Low: a, High: b}, nil
}

// Key returns "low,high", e.g. "top-0,top-1".
func (c Combination) Key() string {
	return c.Low.ID() + "," + c.High.ID()
}

// Vertices returns the endpoints ordered by index.
func (c Combination) Vertices() [2]Vertex { return [2]Vertex{c.Low, c.High} }

// Degenerate reports whether both endpoints are the same vertex.
func (c Combination) Degenerate() bool { return c.Low == c.High }

// Implied returns the orientation implied by an edge leaving from.
// Leaving from the lower-index endpoint is Right.
func (c Combination) Implied(from Vertex) Orientation {
	if c.Degenerate() {
		return Unset
	}
	if from == c.Low {
		return Right
	}

	return Left
}

// Endpoints returns (from, to) for the given orientation.
func (c Combination) Endpoints(o Orientation) (Vertex, Vertex) {
	if o == Left {
		return c.High, c.Low
	}

	return c.Low, c.High
}

// ParseCombinationKey decodes a key produced by Combination.Key.
func ParseCombinationKey(key string) (Combination, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return Combination{}, fmt.Errorf("%w: combination key %q", ErrInvalidVertex, key)
	}
	a, err := ParseVertex(parts[0])
	if err != nil {
		return Combination{}, err
	}
	b, err := ParseVertex(parts[1])
	if err != nil {
		return Combination{}, err
	}

	return Combine(a, b)
}
