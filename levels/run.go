package levels

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tworow/girth"
	"github.com/katalvlaran/tworow/nofold"
	"github.com/katalvlaran/tworow/nopattern"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
	"github.com/katalvlaran/tworow/verdict"
)

// Input is the trial state the checks read. Every field describes the board
// as it would be after the candidate pair: orientation maps with the
// candidate's assignments, the pattern log with its edges, and the
// orientation preflight of the candidate itself.
type Input struct {
	Maps        orientation.Maps
	Orientation orientation.Outcome
	Log         *patternlog.Log
	GirthMethod girth.Method
}

// Step records one executed check.
type Step struct {
	Check      Check               `json:"check"`
	OK         bool                `json:"ok"`
	Message    string              `json:"message,omitempty"`
	Violations []verdict.Violation `json:"violations,omitempty"`
}

// Run executes checks in order and stops at the first failure, returning
// that failure. Steps lists every check that ran. An error means a check
// could not reach a verdict; steps then ends before that check.
func Run(ctx context.Context, checks []Check, in Input) (verdict.Result, []Step, error) {
	steps := make([]Step, 0, len(checks))
	for _, c := range checks {
		res, err := runOne(ctx, c, in)
		if err != nil {
			return verdict.Result{}, steps, fmt.Errorf("levels: %s: %w", c, err)
		}
		steps = append(steps, Step{Check: c, OK: res.OK, Message: res.Message, Violations: res.Violations})
		if !res.OK {
			return res, steps, nil
		}
	}

	return verdict.Pass(), steps, nil
}

// RunLevel looks up the checks of level id and runs them.
func (p *Policy) RunLevel(ctx context.Context, id string, in Input) (verdict.Result, []Step, error) {
	checks, err := p.Checks(id)
	if err != nil {
		return verdict.Result{}, nil, err
	}

	return Run(ctx, checks, in)
}

func runOne(ctx context.Context, c Check, in Input) (verdict.Result, error) {
	log := in.Log
	if log == nil {
		log = patternlog.New()
	}
	switch c.Kind {
	case Orientation:
		return in.Orientation.Result(), nil
	case NoFold:
		return nofold.Check(log), nil
	case NoPattern:
		return nopattern.Check(log), nil
	case Girth:
		return girth.Check(in.Maps, c.Bound, girth.WithMethod(in.GirthMethod), girth.WithContext(ctx))
	default:
		return verdict.Result{}, fmt.Errorf("%w: %s", ErrUnknownCheck, c)
	}
}

// Has reports whether checks contains a check of kind k.
func Has(checks []Check, k Kind) bool {
	for _, c := range checks {
		if c.Kind == k {
			return true
		}
	}

	return false
}
