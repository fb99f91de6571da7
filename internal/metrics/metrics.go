package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysesTotal tracks completed analyses by outcome
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checksol_analyses_total",
			Help: "The total number of token analyses",
		},
		[]string{"outcome"}, // ok, not_found, config_error, upstream_error, timeout
	)

	// AnalysisSeconds tracks the wall-clock time of a full analysis
	AnalysisSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checksol_analysis_seconds",
		Help:    "Time taken for a full token analysis in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~1min
	})

	// HTTPRequestsTotal tracks inbound requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checksol_http_requests_total",
			Help: "The total number of HTTP requests served",
		},
		[]string{"route", "status"},
	)
)

// RecordAnalysis records one finished analysis
func RecordAnalysis(outcome string, seconds float64) {
	AnalysesTotal.WithLabelValues(outcome).Inc()
	AnalysisSeconds.Observe(seconds)
}

// RecordHTTPRequest records one served HTTP request
func RecordHTTPRequest(route, status string) {
	HTTPRequestsTotal.WithLabelValues(route, status).Inc()
}
