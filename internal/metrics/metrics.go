// Package metrics exposes the Prometheus collectors of the editor API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action results
const (
	ResultApplied  = "applied"
	ResultNoop     = "noop"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	// actionsTotal counts dispatched actions by type and result
	actionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_editor_actions_total",
		Help: "Total dispatched editor actions by type and result",
	}, []string{"action", "result"})

	// reduceDuration tracks time spent inside the engine
	reduceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "survey_editor_reduce_duration_seconds",
		Help:    "Engine reduce duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 12), // 50µs to ~100ms
	}, []string{"action"})

	// logicWarningsTotal counts structural edits that left logic invalid
	logicWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "survey_editor_logic_warnings_total",
		Help: "Total structural edits that invalidated survey logic",
	})

	// historyTotal counts undo and redo requests by outcome
	historyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "survey_editor_history_total",
		Help: "Total undo/redo requests by direction and result",
	}, []string{"direction", "result"})
)

func ObserveAction(action, result string) {
	actionsTotal.WithLabelValues(action, result).Inc()
}

func ObserveReduce(action string, d time.Duration) {
	reduceDuration.WithLabelValues(action).Observe(d.Seconds())
}

func ObserveLogicWarning() {
	logicWarningsTotal.Inc()
}

func ObserveHistory(direction, result string) {
	historyTotal.WithLabelValues(direction, result).Inc()
}
