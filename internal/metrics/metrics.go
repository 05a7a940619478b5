package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ClassificationTotal counts classification results by final category and
	// adapter outcome (mapped, low_confidence, unmapped_label).
	ClassificationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moodlog_classifications_total",
			Help: "Total number of classified entries by category and adapter outcome",
		},
		[]string{"category", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, ClassificationTotal)
}

// RecordRequest records one finished HTTP request.
func RecordRequest(method, path string, status int, durationSeconds float64) {
	s := strconv.Itoa(status)
	RequestTotal.WithLabelValues(method, path, s).Inc()
	RequestDuration.WithLabelValues(method, path, s).Observe(durationSeconds)
}

// RecordClassification records one adapter result.
func RecordClassification(category, outcome string) {
	ClassificationTotal.WithLabelValues(category, outcome).Inc()
}
