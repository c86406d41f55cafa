// Package prometheus provides Prometheus metrics for report parsing,
// serialization and schema validation.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "robotresult"

// Status constants for metric labels.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

var (
	// parseDuration is a histogram of report parse duration in seconds.
	parseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Histogram of report parse duration in seconds",
			Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
		},
		[]string{"format"}, // format: xml, json
	)

	// parsesTotal is a counter of report parse attempts.
	parsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Total number of report parse attempts",
		},
		[]string{"format", "status"}, // status: success, error
	)

	// serializeDuration is a histogram of result serialization duration.
	serializeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "serialize_duration_seconds",
			Help:      "Histogram of result serialization duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// serializationsTotal is a counter of result serializations.
	serializationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "serializations_total",
			Help:      "Total number of result serializations",
		},
		[]string{"format", "status"},
	)

	// validationDuration is a histogram of schema validation duration.
	validationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of schema validation checks in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"schema"},
	)

	// validationsTotal is a counter of schema validation checks.
	validationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total number of schema validation checks",
		},
		[]string{"schema", "status"}, // status: passed, failed
	)

	// allMetrics is a list of all metrics for registration.
	allMetrics = []prometheus.Collector{
		parseDuration,
		parsesTotal,
		serializeDuration,
		serializationsTotal,
		validationDuration,
		validationsTotal,
	}
)

// RecordParse records a report parse attempt.
func RecordParse(format, status string, durationSeconds float64) {
	parseDuration.WithLabelValues(format).Observe(durationSeconds)
	parsesTotal.WithLabelValues(format, status).Inc()
}

// RecordSerialize records a result serialization.
func RecordSerialize(format, status string, durationSeconds float64) {
	serializeDuration.WithLabelValues(format).Observe(durationSeconds)
	serializationsTotal.WithLabelValues(format, status).Inc()
}

// RecordValidation records a schema validation check.
func RecordValidation(schema, status string, durationSeconds float64) {
	validationDuration.WithLabelValues(schema).Observe(durationSeconds)
	validationsTotal.WithLabelValues(schema, status).Inc()
}
