// Package verdict holds the player-facing outcome of a rule check: a pass,
// or a failure code with every violation that caused it.
//
// Rule failures are values, not errors. Result.Err converts a failing
// Result into a *Error for callers that prefer the error path; it matches
// the package sentinels with errors.Is.
package verdict

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/tworow/board"
)

// Code names the rule family that failed.
type Code string

// Failure codes, in the order levels usually run them.
const (
	None        Code = ""
	Orientation Code = "ORIENTATION"
	NoFold      Code = "NO_FOLD"
	NoPattern   Code = "NO_PATTERN"
	Girth       Code = "GIRTH"
)

// Sentinels matched by *Error.
var (
	ErrOrientation = errors.New("verdict: orientation violation")
	ErrNoFold      = errors.New("verdict: fold violation")
	ErrNoPattern   = errors.New("verdict: pattern violation")
	ErrGirth       = errors.New("verdict: girth violation")
)

var sentinels = map[Code]error{
	Orientation: ErrOrientation,
	NoFold:      ErrNoFold,
	NoPattern:   ErrNoPattern,
	Girth:       ErrGirth,
}

// Kind refines a Code.
type Kind string

// Violation kinds.
const (
	KindConflict         Kind = "conflict"
	KindShortCycle       Kind = "short-cycle"
	KindMultipleOutgoing Kind = "multiple-outgoing"
	KindMultipleIncoming Kind = "multiple-incoming"
	KindTwoCycle         Kind = "two-cycle"
	KindDuplicateTrio    Kind = "duplicate-signature"
	KindCycleTooShort    Kind = "cycle-too-short"
)

// EdgeRef identifies one horizontal edge for highlighting.
type EdgeRef struct {
	ID          string            `json:"id"`
	Row         board.Row         `json:"row"`
	Vertices    [2]board.Vertex   `json:"vertices"`
	Color       board.Color       `json:"color,omitempty"`
	Orientation board.Orientation `json:"orientation,omitempty"`
}

// String renders "top-0->top-1 (#e6194b)".
func (e EdgeRef) String() string {
	from, to := e.Vertices[0], e.Vertices[1]
	if e.Orientation == board.Left {
		from, to = to, from
	}
	s := from.ID() + "->" + to.ID()
	if e.Orientation == board.Unset {
		s = from.ID() + "," + to.ID()
	}
	if e.Color != "" {
		s += " (" + string(e.Color) + ")"
	}

	return s
}

// Trio is an ordered (pt1, center, pt3) vertex triple with its signature.
type Trio struct {
	Row       board.Row       `json:"row"`
	Points    [3]board.Vertex `json:"points"`
	Signature string          `json:"signature"`
}

// String renders "top-2,top-1,top-0 [out|#a|in|#b]".
func (t Trio) String() string {
	return t.Points[0].ID() + "," + t.Points[1].ID() + "," + t.Points[2].ID() + " [" + t.Signature + "]"
}

// Violation is one reason a check failed.
type Violation struct {
	Code   Code           `json:"code"`
	Kind   Kind           `json:"kind"`
	Row    board.Row      `json:"row"`
	Edges  []EdgeRef      `json:"edges,omitempty"`
	Trios  []Trio         `json:"trios,omitempty"`
	Cycle  []board.Vertex `json:"cycle,omitempty"`
	Detail string         `json:"detail"`
}

// Result is the outcome of a check or of a whole level run.
type Result struct {
	OK         bool        `json:"ok"`
	Code       Code        `json:"code,omitempty"`
	Message    string      `json:"message,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

// Pass returns a successful Result.
func Pass() Result { return Result{OK: true} }

// Fail builds a failing Result. With no message, one is composed from the
// violation details.
func Fail(code Code, message string, vs ...Violation) Result {
	if message == "" {
		details := make([]string, 0, len(vs))
		for _, v := range vs {
			details = append(details, v.Detail)
		}
		message = string(code)
		if len(details) > 0 {
			message += ": " + strings.Join(details, "; ")
		}
	}

	return Result{OK: false, Code: code, Message: message, Violations: vs}
}

// Collect returns Pass when vs is empty and Fail(code, "", vs...) otherwise.
func Collect(code Code, vs []Violation) Result {
	if len(vs) == 0 {
		return Pass()
	}

	return Fail(code, "", vs...)
}

// Err returns nil for a passing Result and a *Error otherwise.
func (r Result) Err() error {
	if r.OK {
		return nil
	}

	return &Error{Result: r}
}

// Error carries a failing Result through the error path.
type Error struct {
	Result Result
}

// Error implements error.
func (e *Error) Error() string {
	return fmt.Sprintf("verdict: %s", e.Result.Message)
}

// Is matches the sentinel for the Result's code.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Result.Code]

	return ok && s == target
}

// CodeOf extracts the failure code from err, or None.
func CodeOf(err error) Code {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Result.Code
	}

	return None
}
