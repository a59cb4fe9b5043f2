package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/tworow/board"
	"github.com/katalvlaran/tworow/history"
	"github.com/katalvlaran/tworow/levels"
	"github.com/katalvlaran/tworow/orientation"
	"github.com/katalvlaran/tworow/patternlog"
)

// SubmitPair validates a complete pair at level and commits it if every
// check passes. The colors carried by pair are ignored; the engine assigns
// them. Resubmitting a committed pair is a no-op reported as Duplicate.
func (e *Engine) SubmitPair(ctx context.Context, pair board.Pair, level string) (TurnResult, error) {
	start := time.Now()
	tr := TurnResult{TurnID: uuid.NewString(), PairKey: pair.Key()}
	ctx, span := tracer.Start(ctx, "engine.SubmitPair", trace.WithAttributes(
		attribute.String("tworow.turn_id", tr.TurnID),
		attribute.String("tworow.level", level),
		attribute.String("tworow.pair", string(tr.PairKey)),
	))
	defer span.End()

	err := e.submitPair(ctx, pair, level, &tr)
	e.finish(span, "SubmitPair", level, start, &tr, err)

	return tr, err
}

func (e *Engine) submitPair(ctx context.Context, pair board.Pair, level string, tr *TurnResult) error {
	checks, err := e.policy.Checks(level)
	if err != nil {
		return fmt.Errorf("engine: SubmitPair: %w", err)
	}
	if err = pair.Validate(); err != nil {
		return fmt.Errorf("engine: SubmitPair: %w", err)
	}
	if e.state.Pending != nil {
		return ErrPending
	}
	if committed, ok := e.committedPair(tr.PairKey); ok {
		tr.OK = true
		tr.Duplicate = true
		tr.Color = committed.Color()

		return nil
	}

	s := e.state.Clone()
	pair = pair.WithColor(e.palette.Next(&s.ColorCounter))
	for _, c := range []board.Connection{pair.First, pair.Second} {
		if err = addConnection(&s, c); err != nil {
			return fmt.Errorf("engine: SubmitPair: %w", err)
		}
	}

	return e.evaluate(ctx, s, pair, checks, tr)
}

// Connect draws one connection. The first call of a pair opens it and is
// committed immediately (it can be undone); the second completes the pair
// and validates it at the current level. A failing second connection is
// discarded and the first stays pending.
func (e *Engine) Connect(ctx context.Context, a, b board.Vertex) (TurnResult, error) {
	start := time.Now()
	tr := TurnResult{TurnID: uuid.NewString()}
	ctx, span := tracer.Start(ctx, "engine.Connect", trace.WithAttributes(
		attribute.String("tworow.turn_id", tr.TurnID),
		attribute.String("tworow.level", e.level),
		attribute.String("tworow.a", a.ID()),
		attribute.String("tworow.b", b.ID()),
	))
	defer span.End()

	err := e.connect(ctx, a, b, &tr)
	e.finish(span, "Connect", e.level, start, &tr, err)

	return tr, err
}

func (e *Engine) connect(ctx context.Context, a, b board.Vertex, tr *TurnResult) error {
	conn, err := board.Connect(a, b)
	if err != nil {
		return fmt.Errorf("engine: Connect: %w", err)
	}

	if e.state.Pending == nil {
		s := e.state.Clone()
		conn.Color = e.palette.Next(&s.ColorCounter)
		if err = addConnection(&s, conn); err != nil {
			return fmt.Errorf("engine: Connect: %w", err)
		}
		s.Pending = &conn
		e.commit(s, e.log)

		tr.OK = true
		tr.Color = conn.Color
		tr.Pending = e.Pending()

		return nil
	}

	first := *e.state.Pending
	conn.Color = first.Color
	pair := board.Pair{First: first, Second: conn}
	tr.PairKey = pair.Key()
	if err = pair.Validate(); err != nil {
		return fmt.Errorf("engine: Connect: %w", err)
	}
	checks, err := e.policy.Checks(e.level)
	if err != nil {
		return fmt.Errorf("engine: Connect: %w", err)
	}

	s := e.state.Clone()
	s.Pending = nil
	if err = addConnection(&s, conn); err != nil {
		return fmt.Errorf("engine: Connect: %w", err)
	}
	if err = e.evaluate(ctx, s, pair, checks, tr); err != nil {
		return err
	}
	tr.Pending = e.Pending()

	return nil
}

// evaluate runs pair against checks on s, which the caller hands over, and
// commits s when every check passes.
func (e *Engine) evaluate(ctx context.Context, s history.Snapshot, pair board.Pair, checks []levels.Check, tr *TurnResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	merge, err := s.Groups.Merge(pair)
	if err != nil {
		return fmt.Errorf("engine: merge: %w", err)
	}
	pair = pair.WithColor(merge.Color)
	tr.Color = merge.Color

	outcome, err := orientation.Preflight(s.Orientation, pair, merge.Color, orientation.WithMinCycle(e.minCycle))
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err = orientation.Apply(&s.Orientation, outcome); err != nil {
		// Unset keys are still recorded; the orientation check, when the
		// level has one, rejects the whole trial.
		orientation.ApplyAssignments(&s.Orientation, outcome)
	}

	log := patternlog.Preview(patternlog.Trial{
		Base:      e.log,
		Committed: e.state.Pairs,
		Candidate: pair,
		Groups:    s.Groups,
		Maps:      s.Orientation,
	}, patternlog.WithLogger(e.logger))
	s.Pairs = append(s.Pairs, pair)
	recolor(&s)

	res, steps, err := levels.Run(ctx, checks, levels.Input{
		Maps:        s.Orientation,
		Orientation: outcome,
		Log:         log,
		GirthMethod: e.girthMethod,
	})
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	tr.OK = res.OK
	tr.Code = res.Code
	tr.Message = res.Message
	tr.Violations = res.Violations
	tr.Steps = steps
	if res.OK {
		e.commit(s, log)
	}

	return nil
}

// commit pushes the current state and installs s.
func (e *Engine) commit(s history.Snapshot, log *patternlog.Log) {
	e.history.Push(e.state)
	e.state = s
	e.log = log
}

func (e *Engine) committedPair(key board.PairKey) (board.Pair, bool) {
	for _, p := range e.state.Pairs {
		if p.Key() == key {
			return p, true
		}
	}

	return board.Pair{}, false
}

// finish records metrics, the span status and one log line for a turn.
func (e *Engine) finish(span trace.Span, op, level string, start time.Time, tr *TurnResult, err error) {
	turnDuration.Observe(time.Since(start).Seconds())

	outcome := outcomeRejected
	switch {
	case err != nil:
		outcome = outcomeError
	case tr.Duplicate:
		outcome = outcomeDuplicate
	case tr.OK && tr.PairKey == "":
		outcome = outcomePending
	case tr.OK:
		outcome = outcomeAccepted
	}
	turnsTotal.WithLabelValues(level, outcome).Inc()
	span.SetAttributes(attribute.String("tworow.outcome", outcome))

	attrs := []any{
		slog.String("turn_id", tr.TurnID),
		slog.String("op", op),
		slog.String("level", level),
		slog.String("outcome", outcome),
	}
	if tr.PairKey != "" {
		attrs = append(attrs, slog.String("pair", string(tr.PairKey)))
	}

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.Warn("engine: turn refused", append(attrs, slog.String("error", err.Error()))...)
	case !tr.OK:
		for _, v := range tr.Violations {
			violationsTotal.WithLabelValues(string(v.Code)).Inc()
		}
		span.SetAttributes(attribute.String("tworow.code", string(tr.Code)))
		span.SetStatus(codes.Ok, "rejected")
		e.logger.Info("engine: turn rolled back", append(attrs,
			slog.String("code", string(tr.Code)),
			slog.Int("violations", len(tr.Violations)),
		)...)
	default:
		span.SetStatus(codes.Ok, "")
		e.logger.Info("engine: turn committed", append(attrs, slog.String("color", string(tr.Color)))...)
	}
}

// addConnection appends c to s after checking its endpoints exist and its
// link is new, then grows every saturated row.
func addConnection(s *history.Snapshot, c board.Connection) error {
	for _, v := range []board.Vertex{c.Top, c.Bottom} {
		if !s.Rows.Contains(v) {
			return fmt.Errorf("%w: %s (row has %d)", board.ErrVertexNotFound, v, s.Rows.Of(v.Row))
		}
	}
	for _, have := range s.Connections {
		if have.SameLink(c) {
			return fmt.Errorf("%w: %s", board.ErrDuplicateConnection, c.Key())
		}
	}
	s.Connections = append(s.Connections, c)
	growRows(s)

	return nil
}

// growRows adds one vertex to every row whose vertices are all connected.
func growRows(s *history.Snapshot) {
	used := make(map[board.Vertex]struct{}, 2*len(s.Connections))
	for _, c := range s.Connections {
		used[c.Top] = struct{}{}
		used[c.Bottom] = struct{}{}
	}
	for _, r := range board.Rows {
		n := s.Rows.Of(r)
		full := true
		for i := uint(0); i < n; i++ {
			if _, ok := used[board.V(r, i)]; !ok {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		if r == board.Top {
			s.Rows.Top++
		} else {
			s.Rows.Bottom++
		}
	}
}

// recolor sets every pair and its connections to its group color.
func recolor(s *history.Snapshot) {
	byLink := make(map[string]board.Color, len(s.Connections))
	for i, p := range s.Pairs {
		c, ok := s.Groups.ColorOfPair(p)
		if ok && c != p.Color() {
			s.Pairs[i] = p.WithColor(c)
		}
		byLink[s.Pairs[i].First.Key()] = s.Pairs[i].Color()
		byLink[s.Pairs[i].Second.Key()] = s.Pairs[i].Color()
	}
	for i, c := range s.Connections {
		if col, ok := byLink[c.Key()]; ok {
			s.Connections[i].Color = col
		}
	}
}
