// Package engine runs the turn protocol of a two-row board.
//
// Every candidate pair is evaluated on a deep copy of the committed state:
// its colors are merged, its orientation resolved, its horizontal edges
// appended to the pattern log and the level's checks run in order. A pair
// that passes is committed by swapping the copy in and pushing the previous
// state onto the undo stack; a failing pair leaves the engine untouched.
//
// An Engine is not safe for concurrent use; callers that share one must
// serialise access.
//
// Errors:
//
//	ErrPending - SubmitPair was called while a Connect pair is half drawn.
//
// Contract errors from board and levels (ErrVertexNotFound,
// ErrDuplicateConnection, ErrMalformedPair, ErrUnknownLevel, ...) are
// returned unchanged. Rule failures are never errors: they come back as a
// TurnResult with OK=false.
package engine

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/colorgroup"
	"github.com/katalvlaran/tworow/config"
	"github.com/katalvlaran/tworow/girth"
	"github.com/katalvlaran/tworow/history"
	"github.com/katalvlaran/tworow/levels"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

// DefaultLevel is the level an Engine starts at.
const DefaultLevel = "Level 2"

// ErrPending is returned by SubmitPair while Connect holds an open pair.
var ErrPending = fmt.Errorf("%w: engine: a connection is pending", board.ErrContract)

// TurnResult describes one turn.
type TurnResult struct {
	OK         bool                `json:"ok"`
	Code       verdict.Code        `json:"code,omitempty"`
	Message    string              `json:"message,omitempty"`
	Violations []verdict.Violation `json:"violations,omitempty"`
	Steps      []levels.Step       `json:"steps,omitempty"`

	// TurnID is unique per call and ties log lines to a result.
	TurnID  string        `json:"turnId"`
	PairKey board.PairKey `json:"pairKey,omitempty"`
	// Color is the effective pair color after grouping.
	Color board.Color `json:"color,omitempty"`
	// Duplicate marks a pair that was already committed; nothing changed.
	Duplicate bool `json:"duplicate,omitempty"`
	// Pending is the open first connection after a Connect call, if any.
	Pending *board.Connection `json:"pending,omitempty"`
}

// Result returns the verdict part of r.
func (r TurnResult) Result() verdict.Result {
	return verdict.Result{OK: r.OK, Code: r.Code, Message: r.Message, Violations: r.Violations}
}

// Engine owns one board.
type Engine struct {
	state   history.Snapshot
	log     *patternlog.Log
	history *history.Stack

	policy       *levels.Policy
	level        string
	palette      *board.Palette
	girthMethod  girth.Method
	minCycle     int
	historyLimit int
	logger       *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes engine and pattern log records to l.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPolicy replaces the embedded level catalogue.
func WithPolicy(p *levels.Policy) Option {
	return func(e *Engine) {
		if p != nil {
			e.policy = p
		}
	}
}

// WithLevel sets the level Connect validates against.
func WithLevel(id string) Option {
	return func(e *Engine) { e.level = id }
}

// WithPalette sets the pair colors.
func WithPalette(p *board.Palette) Option {
	return func(e *Engine) {
		if p != nil {
			e.palette = p
		}
	}
}

// WithGirthMethod selects the cycle search used by girth checks.
func WithGirthMethod(m girth.Method) Option {
	return func(e *Engine) { e.girthMethod = m }
}

// WithMinCycle sets the shortest directed cycle the orientation check
// allows. n < 2 turns the cycle test off.
func WithMinCycle(n int) Option {
	return func(e *Engine) { e.minCycle = n }
}

// WithHistoryLimit bounds the undo stack; n <= 0 means unbounded.
func WithHistoryLimit(n int) Option {
	return func(e *Engine) { e.historyLimit = n }
}

// WithConfig applies the engine fields of c.
func WithConfig(c config.Config) Option {
	return func(e *Engine) {
		if c.Level != "" {
			e.level = c.Level
		}
		if c.GirthMethod != "" {
			e.girthMethod = girth.Method(c.GirthMethod)
		}
		if c.MinCycle > 0 {
			e.minCycle = c.MinCycle
		}
		e.historyLimit = c.HistoryLimit
		if len(c.Palette) > 0 {
			e.palette = board.NewPalette(c.Colors()...)
		}
	}
}

// New returns an engine with an empty board.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		policy:      levels.Default(),
		level:       DefaultLevel,
		palette:     board.NewPalette(),
		girthMethod: girth.Exhaustive,
		minCycle:    orientation.DefaultMinCycle,
		logger:      slog.Default(),
	}
	for _, fn := range opts {
		fn(e)
	}
	if _, err := e.policy.Level(e.level); err != nil {
		return nil, fmt.Errorf("engine: New: %w", err)
	}
	if _, err := girth.ParseMethod(string(e.girthMethod)); err != nil {
		return nil, fmt.Errorf("engine: New: %w", err)
	}
	e.state = history.Empty()
	e.history = history.NewStack(e.historyLimit)
	e.log = patternlog.New(patternlog.WithLogger(e.logger))

	return e, nil
}

// SetLevel changes the level Connect validates against.
func (e *Engine) SetLevel(id string) error {
	if _, err := e.policy.Level(id); err != nil {
		return fmt.Errorf("engine: SetLevel: %w", err)
	}
	e.level = id

	return nil
}

// Level returns the current level.
func (e *Engine) Level() string { return e.level }

// Policy returns the level catalogue in use.
func (e *Engine) Policy() *levels.Policy { return e.policy }

// RowCounts returns the current number of vertices per row.
func (e *Engine) RowCounts() history.RowCounts { return e.state.Rows }

// Groups returns the live color groups.
func (e *Engine) Groups() []colorgroup.Group { return e.state.Groups.Groups() }

// Orientation returns the stored orientation of a combination key, or
// board.Unset.
func (e *Engine) Orientation(key string) board.Orientation {
	c, err := board.ParseCombinationKey(key)
	if err != nil {
		return board.Unset
	}

	return e.state.Orientation.Lookup(c)
}

// Orientations returns a copy of both orientation maps.
func (e *Engine) Orientations() orientation.Maps { return e.state.Orientation.Clone() }

// PatternLog returns a copy of the pattern log.
func (e *Engine) PatternLog() *patternlog.Log { return e.log.Clone() }

// Pairs returns the committed pairs in order.
func (e *Engine) Pairs() []board.Pair { return slices.Clone(e.state.Pairs) }

// Connections returns every drawn connection, the pending one included.
func (e *Engine) Connections() []board.Connection { return slices.Clone(e.state.Connections) }

// Pending returns the open first connection, or nil.
func (e *Engine) Pending() *board.Connection {
	if e.state.Pending == nil {
		return nil
	}
	c := *e.state.Pending

	return &c
}

// HistoryLen returns the number of undo steps available.
func (e *Engine) HistoryLen() int { return e.history.Len() }

// Snapshot returns a deep copy of the committed state.
func (e *Engine) Snapshot() history.Snapshot { return e.state.Clone() }
