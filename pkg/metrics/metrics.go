// Package metrics provides Prometheus metrics for dataset analysis runs.
//
// Counters track volume (rows, batches, numeric parse failures); the duration
// histogram tracks end-to-end analysis latency per dataset.
//
// Example:
//
//	metrics.RowsAnalyzed.WithLabelValues("orders").Add(float64(batch.Rows()))
//	timer := prometheus.NewTimer(metrics.AnalysisDuration.WithLabelValues("orders"))
//	defer timer.ObserveDuration()
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RowsAnalyzed counts cells folded into accumulators, per dataset.
	RowsAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datascope_rows_analyzed_total",
			Help: "Total number of rows folded into column statistics",
		},
		[]string{"dataset"},
	)

	// BatchesProcessed counts batches pulled from the reader, per dataset.
	BatchesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datascope_batches_processed_total",
			Help: "Total number of row batches processed",
		},
		[]string{"dataset"},
	)

	// NumericParseFailures counts cells that did not parse as floats. Parse
	// failure is a normal counted outcome, not an error; this tracks data
	// shape, not faults.
	NumericParseFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datascope_numeric_parse_failures_total",
			Help: "Total number of cells that failed strict float parsing",
		},
		[]string{"dataset"},
	)

	// AnalysisDuration tracks end-to-end analysis latency in seconds.
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datascope_analysis_duration_seconds",
			Help:    "End-to-end dataset analysis duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
		[]string{"dataset"},
	)

	// AnalysisFailures counts aborted runs by error type.
	AnalysisFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datascope_analysis_failures_total",
			Help: "Total number of analysis runs aborted by a structural error",
		},
		[]string{"dataset", "error_type"},
	)
)
