// Package metrics provides Prometheus metrics for the scheduling service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for the application
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// SchedulesCreated counts successfully computed and committed runs.
var SchedulesCreated = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "schedules_created_total",
	Help:      "Total number of schedule runs computed and persisted",
})

// ShortfallSlots counts demand slots that could not be fully staffed.
var ShortfallSlots = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "shortfall_slots_total",
	Help:      "Total number of demand slots with unmet headcount",
})

// ParseErrors counts rejected uploads by dataset.
var ParseErrors = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "scheduler",
	Name:      "parse_errors_total",
	Help:      "Total dataset parse/validation failures by dataset",
}, []string{"dataset"})

// AssignDuration tracks time to compute a schedule run.
var AssignDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "assign_duration_seconds",
	Help:      "Time taken to compute a schedule run",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
})

// CommitDuration tracks time to persist a schedule version.
var CommitDuration = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "scheduler",
	Name:      "commit_duration_seconds",
	Help:      "Time taken to persist a schedule version",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
})
