package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("tworow.engine")

// Turn outcomes used as the "outcome" label.
const (
	outcomeAccepted  = "accepted"
	outcomeRejected  = "rejected"
	outcomeDuplicate = "duplicate"
	outcomePending   = "pending"
	outcomeError     = "error"
)

var (
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tworow_turns_total",
		Help: "Turns processed by level and outcome",
	}, []string{"level", "outcome"})

	violationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tworow_violations_total",
		Help: "Violations reported by failing turns, by code",
	}, []string{"code"})

	undoTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tworow_undo_total",
		Help: "Undo operations that restored a snapshot",
	})

	turnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tworow_turn_duration_seconds",
		Help:    "Time to validate one turn",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	})
)
