// Package observability provides Prometheus metrics for codepad's execution
// client and HTTP middleware for the mock backend.
package observability

import "github.com/prometheus/client_golang/prometheus"

// ExecutionBuckets covers execution round trips from 10ms to 60s.
var ExecutionBuckets = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60}

// Execution outcomes used as the "outcome" label.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeFailure  = "transport_failure"
	OutcomeRejected = "rejected"
)

var (
	// ExecutionsTotal counts client submissions by language and outcome.
	ExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codepad_executions_total",
			Help: "Execution submissions",
		},
		[]string{"language", "outcome"},
	)

	// ExecutionDuration records the execute round trip in seconds.
	ExecutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codepad_execution_duration_seconds",
			Help:    "Execution round-trip duration",
			Buckets: ExecutionBuckets,
		},
		[]string{"language"},
	)

	// ExecutionsInFlight tracks submissions waiting for the backend.
	ExecutionsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "codepad_executions_in_flight",
			Help: "Executions awaiting a response",
		},
	)

	// SubmissionsTotal counts judge submissions by verdict.
	SubmissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codepad_submissions_total",
			Help: "Judge submissions",
		},
		[]string{"verdict"},
	)

	// BackendRequestsTotal counts HTTP requests served by the backend.
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codepad_backend_requests_total",
			Help: "Backend requests",
		},
		[]string{"method", "route", "status"},
	)

	// BackendRequestDuration records backend request duration in seconds.
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codepad_backend_request_duration_seconds",
			Help:    "Backend request duration",
			Buckets: ExecutionBuckets,
		},
		[]string{"method", "route"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "codepad_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ExecutionsTotal,
		ExecutionDuration,
		ExecutionsInFlight,
		SubmissionsTotal,
		BackendRequestsTotal,
		BackendRequestDuration,
		RateLimitRejectedTotal,
	)
}
