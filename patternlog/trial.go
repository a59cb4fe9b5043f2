package patternlog

import (
	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/orientation"
)

// Colorer reports the group color that currently owns a pair.
// *colorgroup.Groups satisfies it.
type Colorer interface {
	ColorOfPair(pair board.Pair) (board.Color, bool)
}

// Trial is a candidate pair on top of a committed board.
type Trial struct {
	// Base is the log of Committed. Nil forces a rebuild.
	Base *Log
	// Committed are the pairs already on the board, in commit order, with
	// the colors they were committed with.
	Committed []board.Pair
	// Candidate is the pair under test.
	Candidate board.Pair
	// Groups are the color groups after Candidate has been merged.
	Groups Colorer
	// Maps are the orientations with Candidate's assignments applied.
	Maps orientation.Maps
}

// Preview returns the log the board would carry once t.Candidate is
// committed. Every pair takes its color from t.Groups first, so a merge
// that absorbs a group is seen with the absorbed pairs already recolored.
// When no committed pair changes color the base log is extended; otherwise
// the whole log is rebuilt. Neither t.Base nor t.Committed is modified.
func Preview(t Trial, opts ...Option) *Log {
	candidate, _ := recolored(t.Groups, t.Candidate)
	pairs := make([]board.Pair, 0, len(t.Committed)+1)
	changed := false
	for _, p := range t.Committed {
		p, ok := recolored(t.Groups, p)
		changed = changed || ok
		pairs = append(pairs, p)
	}
	if t.Base != nil && !changed {
		return t.Base.With(Derive(candidate, t.Maps))
	}

	return Rebuild(append(pairs, candidate), t.Maps, opts...)
}

// recolored returns p in its group color and whether that differs from the
// color it carries.
func recolored(groups Colorer, p board.Pair) (board.Pair, bool) {
	if groups == nil {
		return p, false
	}
	c, ok := groups.ColorOfPair(p)
	if !ok || c == p.Color() {
		return p, false
	}

	return p.WithColor(c), true
}
