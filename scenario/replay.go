package scenario

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/colorgroup"
	"github.com/katalvlaran/tworow/engine"
	"github.com/katalvlaran/tworow/levels"
	"github.com/katalvlaran/tworow/nofold"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

// Options tune Replay.
type Options struct {
	// Continue keeps replaying after a rejected pair. The rejected pair is
	// rolled back either way.
	Continue bool
	// Verbose attaches the board state to every step.
	Verbose bool
}

// State is the board as seen after a step.
type State struct {
	Orientation orientation.Maps   `json:"orientation"`
	PatternLog  *patternlog.Log    `json:"patternLog"`
	Groups      []colorgroup.Group `json:"groups"`
	Pairs       []board.Pair       `json:"pairs,omitempty"`
}

// Step records one replayed pair.
type Step struct {
	Index       int                 `json:"index"`
	Label       string              `json:"inputLabel,omitempty"`
	PairID      board.PairKey       `json:"pairId"`
	Connections [2]board.Connection `json:"connections"`
	Color       board.Color         `json:"color,omitempty"`
	Checks      []levels.Step       `json:"checks"`
	OK          bool                `json:"ok"`
	Duplicate   bool                `json:"duplicate,omitempty"`
	Code        verdict.Code        `json:"code,omitempty"`
	Message     string              `json:"message,omitempty"`
	Folds       []string            `json:"folds,omitempty"`
	StateAfter  *State              `json:"stateAfter,omitempty"`
}

// Report is the outcome of a replay.
type Report struct {
	Level  string         `json:"level"`
	Checks []levels.Check `json:"constraints"`
	Steps  []Step         `json:"steps"`
	Final  State          `json:"finalState"`
}

// Failed returns the first rejected step, or nil.
func (r *Report) Failed() *Step {
	for i := range r.Steps {
		if !r.Steps[i].OK {
			return &r.Steps[i]
		}
	}

	return nil
}

// OK reports whether every replayed pair was accepted.
func (r *Report) OK() bool { return r.Failed() == nil }

// Replay submits every pair of sc to e at sc.Level. A contract error (an
// unknown level, a missing vertex, a repeated connection) aborts the replay
// and is returned with the report so far.
func Replay(ctx context.Context, e *engine.Engine, sc Scenario, opts Options) (*Report, error) {
	lvl, err := e.Policy().Level(sc.Level)
	if err != nil {
		return nil, fmt.Errorf("scenario: replay: %w", err)
	}
	rep := &Report{Level: lvl.ID, Checks: lvl.Checks, Steps: []Step{}}

	for i, p := range sc.Pairs {
		if !opts.Continue && !rep.OK() {
			break
		}
		res, err := e.SubmitPair(ctx, p.Pair, sc.Level)
		if err != nil {
			rep.Final = state(e, true)
			return rep, fmt.Errorf("scenario: replay: pair #%d (%s): %w", i+1, p.Pair, err)
		}
		step := Step{
			Index:       i + 1,
			Label:       p.Label,
			PairID:      res.PairKey,
			Connections: [2]board.Connection{p.Pair.First, p.Pair.Second},
			Color:       res.Color,
			Checks:      res.Steps,
			OK:          res.OK,
			Duplicate:   res.Duplicate,
			Code:        res.Code,
			Message:     res.Message,
			Folds:       folds(res.Violations),
		}
		step.Connections[0].Color = res.Color
		step.Connections[1].Color = res.Color
		if step.Checks == nil {
			step.Checks = []levels.Step{}
		}
		if opts.Verbose {
			s := state(e, false)
			step.StateAfter = &s
		}
		rep.Steps = append(rep.Steps, step)
	}
	rep.Final = state(e, true)

	return rep, nil
}

func folds(vs []verdict.Violation) []string {
	var fs []verdict.Violation
	for _, v := range vs {
		if v.Code == verdict.NoFold {
			fs = append(fs, v)
		}
	}
	if len(fs) == 0 {
		return nil
	}

	return nofold.Folds(fs)
}

func state(e *engine.Engine, withPairs bool) State {
	s := State{
		Orientation: e.Orientations(),
		PatternLog:  e.PatternLog(),
		Groups:      e.Groups(),
	}
	if withPairs {
		s.Pairs = e.Pairs()
	}

	return s
}

// WriteText prints r the way a person reads it: one line per pair, one
// line per check, then a closing verdict.
func (r *Report) WriteText(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Level: %s\n", r.Level)
	names := make([]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		names = append(names, c.String())
	}
	if len(names) == 0 {
		names = append(names, "none")
	}
	fmt.Fprintf(&b, "Constraints: %s\n", strings.Join(names, ", "))
	if len(r.Steps) == 0 {
		b.WriteString("No connection pairs processed.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, s := range r.Steps {
		status := "OK"
		if !s.OK {
			status = "FAIL"
		}
		label := ""
		if s.Label != "" {
			label = " (" + s.Label + ")"
		}
		fmt.Fprintf(&b, "#%d%s: %s->%s , %s->%s [%s]\n", s.Index, label,
			s.Connections[0].Top, s.Connections[0].Bottom,
			s.Connections[1].Top, s.Connections[1].Bottom, status)
		if s.Duplicate {
			b.WriteString("  - already committed\n")
		}
		for _, c := range s.Checks {
			st := "ok"
			if !c.OK {
				st = "fail"
			}
			msg := ""
			if c.Message != "" {
				msg = " :: " + c.Message
			}
			fmt.Fprintf(&b, "  - %-4s %s%s\n", st, c.Check, msg)
		}
		if len(s.Folds) > 0 {
			fmt.Fprintf(&b, "  - folds: %s\n", strings.Join(s.Folds, ", "))
		}
		if s.StateAfter != nil {
			for _, row := range board.Rows {
				fmt.Fprintf(&b, "  - %s orientation: %s\n", row, formatMap(s.StateAfter.Orientation, row))
			}
		}
	}

	failed := r.Failed()
	switch {
	case failed == nil:
		b.WriteString("All checks passed.\n")
	default:
		reason := "validation failure"
		for _, c := range failed.Checks {
			if !c.OK {
				reason = c.Check.String()
				break
			}
		}
		if r.Steps[len(r.Steps)-1].Index > failed.Index {
			fmt.Fprintf(&b, "Failure at step #%d due to %s, continued processing remaining steps.\n", failed.Index, reason)
		} else {
			fmt.Fprintf(&b, "Stopped at step #%d due to %s.\n", failed.Index, reason)
		}
	}
	_, err := io.WriteString(w, b.String())

	return err
}

func formatMap(m orientation.Maps, r board.Row) string {
	keys := m.Keys(r)
	parts := make([]string, 0, len(keys))
	row := m.Row(r)
	for _, k := range keys {
		parts = append(parts, k+"="+string(row[k]))
	}

	return "{" + strings.Join(parts, " ") + "}"
}
