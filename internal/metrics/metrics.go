// Package metrics holds the Prometheus collectors served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "colony",
		Name:      "report_runs_total",
		Help:      "Report executions by task and result.",
	}, []string{"task", "result"})

	ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "colony",
		Name:      "report_duration_seconds",
		Help:      "Report execution time by task.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"task"})

	RelocatedColonists = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "colony",
		Name:      "relocated_colonists_total",
		Help:      "Colonists moved between modules by confirmed relocations.",
	})
)

// ObserveReport records one run of task that started at start.
func ObserveReport(task string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ReportRuns.WithLabelValues(task, result).Inc()
	ReportDuration.WithLabelValues(task).Observe(time.Since(start).Seconds())
}
