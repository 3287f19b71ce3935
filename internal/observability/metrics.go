// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal *prometheus.CounterVec
	HTTPLatency       *prometheus.HistogramVec

	// Launch flow metrics
	KeypairsGenerated  *prometheus.CounterVec
	SignaturesApplied  prometheus.Counter
	SigningErrors      *prometheus.CounterVec
	MetadataPublishes  *prometheus.CounterVec
	TransactionsBuilt  *prometheus.CounterVec
	LaunchesRecorded   prometheus.Counter
	LaunchConfirmWaits prometheus.Histogram

	// Upstream metrics
	RPCCallLatency *prometheus.HistogramVec

	// Database metrics
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "dbc_launchpad"
	}

	return &Metrics{
		// HTTP metrics
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		HTTPLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),

		// Launch flow metrics
		KeypairsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "keypairs_generated_total",
			Help:      "Total number of custodied keypairs generated by role",
		}, []string{"role"}),
		SignaturesApplied: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "signatures_applied_total",
			Help:      "Total number of server signatures applied to transactions",
		}),
		SigningErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "signing_errors_total",
			Help:      "Total number of co-signing failures by kind",
		}, []string{"kind"}),
		MetadataPublishes: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "metadata_publishes_total",
			Help:      "Total number of metadata publish attempts by status",
		}, []string{"status"}),
		TransactionsBuilt: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "transactions_built_total",
			Help:      "Total number of unsigned transactions built by kind",
		}, []string{"kind"}),
		LaunchesRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "launches_recorded_total",
			Help:      "Total number of confirmed launches recorded",
		}),
		LaunchConfirmWaits: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "launch",
			Name:      "confirmation_wait_seconds",
			Help:      "Time spent waiting for on-chain confirmation",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		}),

		// Upstream metrics
		RPCCallLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "solana",
			Name:      "rpc_call_latency_seconds",
			Help:      "Solana RPC call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		// Database metrics
		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"database", "operation"}),
		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "database",
			Name:      "query_errors_total",
			Help:      "Total number of database query errors",
		}, []string{"database", "operation"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// DefaultMetrics is the default metrics instance.
var DefaultMetrics = NewMetrics("")

// RecordHTTPRequest records one handled HTTP request.
func RecordHTTPRequest(endpoint, status string, seconds float64) {
	DefaultMetrics.HTTPRequestsTotal.WithLabelValues(endpoint, status).Inc()
	DefaultMetrics.HTTPLatency.WithLabelValues(endpoint).Observe(seconds)
}

// RecordKeypairGenerated increments the keypair counter for a role.
func RecordKeypairGenerated(role string) {
	DefaultMetrics.KeypairsGenerated.WithLabelValues(role).Inc()
}

// RecordSignaturesApplied adds to the applied-signature counter.
func RecordSignaturesApplied(n int) {
	DefaultMetrics.SignaturesApplied.Add(float64(n))
}

// RecordSigningError records a co-signing failure.
func RecordSigningError(kind string) {
	DefaultMetrics.SigningErrors.WithLabelValues(kind).Inc()
}

// RecordMetadataPublish records a metadata publish attempt.
func RecordMetadataPublish(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	DefaultMetrics.MetadataPublishes.WithLabelValues(status).Inc()
}

// RecordTransactionBuilt increments the built-transaction counter for a kind.
func RecordTransactionBuilt(kind string) {
	DefaultMetrics.TransactionsBuilt.WithLabelValues(kind).Inc()
}

// RecordLaunchRecorded increments the recorded-launch counter.
func RecordLaunchRecorded() {
	DefaultMetrics.LaunchesRecorded.Inc()
}

// RecordConfirmationWait records how long a confirmation wait took.
func RecordConfirmationWait(seconds float64) {
	DefaultMetrics.LaunchConfirmWaits.Observe(seconds)
}

// RecordRPCLatency records RPC call latency.
func RecordRPCLatency(method string, seconds float64) {
	DefaultMetrics.RPCCallLatency.WithLabelValues(method).Observe(seconds)
}

// RecordDBQuery records database query metrics.
func RecordDBQuery(database, operation string, seconds float64, err error) {
	DefaultMetrics.DBQueryDuration.WithLabelValues(database, operation).Observe(seconds)
	if err != nil {
		DefaultMetrics.DBQueryErrors.WithLabelValues(database, operation).Inc()
	}
}
