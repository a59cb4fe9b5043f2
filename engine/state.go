package engine

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/colorgroup"
	"github.com/katalvlaran/tworow/history"
	"github.com/katalvlaran/tworow/patternlog"
)

// Undo restores the state before the last committed action and reports
// whether there was one. The pattern log is rebuilt from the restored pairs.
func (e *Engine) Undo(ctx context.Context) bool {
	_, span := tracer.Start(ctx, "engine.Undo")
	defer span.End()

	s, ok := e.history.Pop()
	span.SetAttributes(attribute.Bool("tworow.undone", ok))
	if !ok {
		return false
	}
	e.state = s
	e.log = patternlog.Rebuild(s.Pairs, s.Orientation, patternlog.WithLogger(e.logger))
	undoTotal.Inc()
	e.logger.Info("engine: undo",
		slog.Int("pairs", len(s.Pairs)),
		slog.Int("history", e.history.Len()),
		slog.Bool("pending", s.Pending != nil),
	)

	return true
}

// Reset empties the board and drops the undo history.
func (e *Engine) Reset(ctx context.Context) {
	_, span := tracer.Start(ctx, "engine.Reset")
	defer span.End()

	e.state = history.Empty()
	e.history.Clear()
	e.log = patternlog.New(patternlog.WithLogger(e.logger))
	e.logger.Info("engine: reset")
}

// Restore replaces the board with s and drops the undo history. Groups
// missing from s are rebuilt from its pairs.
func (e *Engine) Restore(ctx context.Context, s history.Snapshot) error {
	_, span := tracer.Start(ctx, "engine.Restore", trace.WithAttributes(
		attribute.Int("tworow.pairs", len(s.Pairs)),
	))
	defer span.End()

	if err := validateSnapshot(s); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("engine: Restore: %w", err)
	}

	rebuildGroups := s.Groups == nil
	s = s.Clone()
	if rebuildGroups {
		s.Groups = colorgroup.New()
		for _, p := range s.Pairs {
			if _, err := s.Groups.Merge(p); err != nil {
				return fmt.Errorf("engine: Restore: %w", err)
			}
		}
		recolor(&s)
	}

	e.state = s
	e.history.Clear()
	e.log = patternlog.Rebuild(s.Pairs, s.Orientation, patternlog.WithLogger(e.logger))
	e.logger.Info("engine: restore", slog.Int("pairs", len(s.Pairs)))

	return nil
}

// validateSnapshot rejects a snapshot the engine could not have produced:
// vertices outside the rows, pairs or a pending connection that are not
// among the connections, and orientation entries that do not name an edge
// of the board. Every error wraps board.ErrContract.
func validateSnapshot(s history.Snapshot) error {
	// 1. Rows and connections.
	if s.Rows.Top == 0 || s.Rows.Bottom == 0 {
		return fmt.Errorf("%w: empty row", board.ErrVertexNotFound)
	}
	links := make(map[string]struct{}, len(s.Connections))
	for _, c := range s.Connections {
		if err := c.Validate(); err != nil {
			return err
		}
		if err := inRows(s.Rows, c.Top, c.Bottom); err != nil {
			return fmt.Errorf("%w (connection %s)", err, c.Key())
		}
		links[c.Key()] = struct{}{}
	}

	// 2. Pairs and the pending connection must be drawn connections.
	drawn := func(c board.Connection) error {
		if _, ok := links[c.Key()]; !ok {
			return fmt.Errorf("%w: %s is not among the connections", board.ErrVertexNotFound, c.Key())
		}
		return nil
	}
	for _, p := range s.Pairs {
		if err := p.Validate(); err != nil {
			return err
		}
		for _, c := range []board.Connection{p.First, p.Second} {
			if err := inRows(s.Rows, c.Top, c.Bottom); err != nil {
				return fmt.Errorf("%w (pair %s)", err, p.Key())
			}
			if err := drawn(c); err != nil {
				return fmt.Errorf("%w (pair %s)", err, p.Key())
			}
		}
	}
	if s.Pending != nil {
		if err := s.Pending.Validate(); err != nil {
			return err
		}
		if err := drawn(*s.Pending); err != nil {
			return fmt.Errorf("%w (pending)", err)
		}
	}

	// 3. Orientation entries: well formed, then within the rows.
	if err := s.Orientation.Validate(); err != nil {
		return err
	}
	for _, r := range board.Rows {
		entries, err := s.Orientation.Entries(r)
		if err != nil {
			return err
		}
		for _, a := range entries {
			if err = inRows(s.Rows, a.Combination.Low, a.Combination.High); err != nil {
				return fmt.Errorf("%w (orientation %s)", err, a.Combination.Key())
			}
		}
	}

	return nil
}

// inRows returns ErrVertexNotFound for the first vertex outside rc.
func inRows(rc history.RowCounts, vs ...board.Vertex) error {
	for _, v := range vs {
		if !rc.Contains(v) {
			return fmt.Errorf("%w: %s (row has %d)", board.ErrVertexNotFound, v, rc.Of(v.Row))
		}
	}

	return nil
}
