package store

import "github.com/prometheus/client_golang/prometheus"

// Metric vectors labelled by table, in the same CounterVec/GaugeVec/
// HistogramVec style as the teacher's index_manager.go (ReindexTaskCount,
// ReindexDuration, ...), just renamed into the unit-update/query domain.
var (
	UnitUpdateCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagstore",
		Subsystem: "mutator",
		Name:      "unit_updates_total",
	}, []string{"table", "result"})

	UnitDeleteCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagstore",
		Subsystem: "mutator",
		Name:      "unit_deletes_total",
	}, []string{"result"})

	UnitUpdateDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tagstore",
		Subsystem: "mutator",
		Name:      "unit_update_duration_seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"table"})

	RetryCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagstore",
		Subsystem: "mutator",
		Name:      "commit_retries_total",
	}, []string{"table"})

	QueryScanCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagstore",
		Subsystem: "query",
		Name:      "scans_total",
	}, []string{"table", "scope"})

	QueryRowsYielded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tagstore",
		Subsystem: "query",
		Name:      "rows_yielded_total",
	}, []string{"table", "scope"})
)
