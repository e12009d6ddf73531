// Package metrics provides Prometheus metrics for the postmatch voting
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ballot metrics
	ballotsSubmitted prometheus.Counter
	ballotsRejected  *prometheus.CounterVec
	votersCreated    prometheus.Counter

	// Ranking read metrics
	rankingReads *prometheus.CounterVec

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry()

func init() {
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "postmatch",
		subsystem:        "voting",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.ballotsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ballots_submitted_total",
		Help:      "Total number of ballots accepted and persisted",
	})

	m.ballotsRejected = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ballots_rejected_total",
			Help:      "Total number of rejected ballot submissions by reason",
		},
		[]string{"reason"},
	)

	m.votersCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "voters_created_total",
		Help:      "Total number of voter rows created on first submission",
	})

	m.rankingReads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ranking_reads_total",
			Help:      "Total number of ranking reads by view",
		},
		[]string{"view"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordBallotSubmitted increments the accepted-ballot counter.
func RecordBallotSubmitted() {
	globalManager.ballotsSubmitted.Inc()
}

// RecordBallotRejected increments the rejected-ballot counter for a reason.
func RecordBallotRejected(reason string) {
	globalManager.ballotsRejected.WithLabelValues(reason).Inc()
}

// RecordVoterCreated increments the voter-created counter.
func RecordVoterCreated() {
	globalManager.votersCreated.Inc()
}

// RecordRankingRead increments the ranking-read counter for a view.
func RecordRankingRead(view string) {
	globalManager.rankingReads.WithLabelValues(view).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
