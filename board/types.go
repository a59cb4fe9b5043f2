// Package board defines the primitive vocabulary shared by every part of the
// engine: rows, vertices, vertical connections, connection pairs, same-row
// combinations, orientations, colors and the contract errors raised when a
// caller hands the engine something malformed.
//
// Errors:
//
//	ErrContract            - umbrella sentinel every contract error wraps.
//	ErrInvalidVertex       - vertex text cannot be parsed.
//	ErrRowMismatch         - a connection or combination mixes rows incorrectly.
//	ErrVertexNotFound      - vertex index is beyond the current row count.
//	ErrDuplicateConnection - the same top/bottom link already exists.
//	ErrMalformedPair       - pair is incomplete or its connections disagree.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrContract marks errors that indicate a caller contract breach rather than
// a puzzle-rule failure. Every other sentinel in this package wraps it.
var ErrContract = errors.New("board: contract breach")

// Sentinel contract errors.
var (
	// ErrInvalidVertex indicates a vertex identifier that cannot be parsed.
	ErrInvalidVertex = fmt.Errorf("%w: invalid vertex", ErrContract)

	// ErrRowMismatch indicates a connection that does not join one top and
	// one bottom vertex, or a combination built from two different rows.
	ErrRowMismatch = fmt.Errorf("%w: row mismatch", ErrContract)

	// ErrVertexNotFound indicates a vertex index beyond the current row count.
	ErrVertexNotFound = fmt.Errorf("%w: vertex not found", ErrContract)

	// ErrDuplicateConnection indicates the same top/bottom link was drawn twice.
	ErrDuplicateConnection = fmt.Errorf("%w: duplicate connection", ErrContract)

	// ErrMalformedPair indicates a pair whose connections are incomplete.
	ErrMalformedPair = fmt.Errorf("%w: malformed pair", ErrContract)
)

// IsContract reports whether err is (or wraps) a contract breach.
func IsContract(err error) bool {
	return errors.Is(err, ErrContract)
}

// Row identifies one of the two vertex rows.
type Row uint8

const (
	// Top is the upper row.
	Top Row = iota
	// Bottom is the lower row.
	Bottom
)

// Rows lists both rows in canonical iteration order.
var Rows = [2]Row{Top, Bottom}

// String returns "top" or "bottom".
func (r Row) String() string {
	if r == Top {
		return "top"
	}

	return "bottom"
}

// MarshalText encodes the row by name.
func (r Row) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes "top" or "bottom".
func (r *Row) UnmarshalText(b []byte) error {
	switch string(b) {
	case "top":
		*r = Top
	case "bottom":
		*r = Bottom
	default:
		return fmt.Errorf("%w: unknown row %q", ErrInvalidVertex, string(b))
	}

	return nil
}

// Vertex is a single puzzle vertex, addressed by row and index.
type Vertex struct {
	Row   Row
	Index uint
}

// V is shorthand for Vertex{Row: r, Index: i}.
func V(r Row, i uint) Vertex { return Vertex{Row: r, Index: i} }

// T returns the top-row vertex with index i.
func T(i uint) Vertex { return Vertex{Row: Top, Index: i} }

// B returns the bottom-row vertex with index i.
func B(i uint) Vertex { return Vertex{Row: Bottom, Index: i} }

// ID returns the textual identifier, e.g. "top-3".
func (v Vertex) ID() string {
	return v.Row.String() + "-" + strconv.FormatUint(uint64(v.Index), 10)
}

// String implements fmt.Stringer.
func (v Vertex) String() string { return v.ID() }

// MarshalText encodes the vertex as its ID.
func (v Vertex) MarshalText() ([]byte, error) {
	return []byte(v.ID()), nil
}

// UnmarshalText decodes any form accepted by ParseVertex.
func (v *Vertex) UnmarshalText(b []byte) error {
	parsed, err := ParseVertex(string(b))
	if err != nil {
		return err
	}
	*v = parsed

	return nil
}

// Less orders vertices by row, then by index.
func Less(a, b Vertex) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}

	return a.Index < b.Index
}

// Compare returns -1, 0 or +1 following Less.
func Compare(a, b Vertex) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	default:
		return 0
	}
}

// ParseVertex accepts "top-3", "bottom-0" and the short forms "t3", "b0",
// "t-3", "b-0". Surrounding whitespace is ignored.
func ParseVertex(s string) (Vertex, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	var (
		row  Row
		rest string
	)
	switch {
	case strings.HasPrefix(raw, "top"):
		row, rest = Top, raw[len("top"):]
	case strings.HasPrefix(raw, "bottom"):
		row, rest = Bottom, raw[len("bottom"):]
	case strings.HasPrefix(raw, "t"):
		row, rest = Top, raw[1:]
	case strings.HasPrefix(raw, "b"):
		row, rest = Bottom, raw[1:]
	default:
		return Vertex{}, fmt.Errorf("%w: %q", ErrInvalidVertex, s)
	}
	rest = strings.TrimPrefix(rest, "-")
	idx, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return Vertex{}, fmt.Errorf("%w: %q", ErrInvalidVertex, s)
	}

	return Vertex{Row: row, Index: uint(idx)}, nil
}

// MustParseVertex is ParseVertex that panics on error. Intended for tests and
// static tables.
func MustParseVertex(s string) Vertex {
	v, err := ParseVertex(s)
	if err != nil {
		panic(err)
	}

	return v
}

// Orientation is the direction assigned to a same-row combination.
// Right means the edge runs from the lower-index vertex to the higher-index
// vertex; Left means the opposite.
type Orientation string

const (
	// Unset is the zero value: no direction has been assigned yet.
	Unset Orientation = ""
	// Left points from the higher index to the lower index.
	Left Orientation = "left"
	// Right points from the lower index to the higher index.
	Right Orientation = "right"
)

// Flip returns the opposite orientation; Unset stays Unset.
func (o Orientation) Flip() Orientation {
	switch o {
	case Left:
		return Right
	case Right:
		return Left
	default:
		return Unset
	}
}

// Valid reports whether o is Left or Right.
func (o Orientation) Valid() bool { return o == Left || o == Right }

// Color is a CSS-style hex color such as "#ff0000".
type Color string

// CompareIDs orders two vertex IDs like Compare, so "top-2" sorts before
// "top-10". IDs that do not parse fall back to string order after all
// valid IDs.
func CompareIDs(a, b string) int {
	va, errA := ParseVertex(a)
	vb, errB := ParseVertex(b)
	switch {
	case errA == nil && errB == nil:
		return Compare(va, vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
