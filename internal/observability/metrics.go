package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// namespace defines the global prefix for all metrics (e.g., huginn_...).
const namespace = "huginn"

var (
	// -------------------------------------------------------------------------
	// CHECKER
	// -------------------------------------------------------------------------

	// ChecksTotal counts finished web checks by outcome.
	// Metric: huginn_checker_checks_total{outcome="ok|http_error|anchor_missing"}
	ChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checker",
		Name:      "checks_total",
		Help:      "Total web checks by outcome",
	}, []string{"outcome"})

	// CheckDuration measures the end-to-end latency of a single check,
	// cache hits included (they should dominate the low buckets).
	// Metric: huginn_checker_check_duration_seconds
	CheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "checker",
		Name:      "check_duration_seconds",
		Help:      "End-to-end latency of a single web check",
		Buckets:   prometheus.DefBuckets,
	})

	// CheckerCacheHits counts checks short-circuited by a fresh-valid entry.
	// Metric: huginn_checker_cache_hits_total
	CheckerCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checker",
		Name:      "cache_hits_total",
		Help:      "Checks answered from the revalidation cache without network activity",
	})

	// CheckerCacheMisses counts cache consultations that forced a live probe
	// (absent, stale, and previously-failed entries all count here).
	// Metric: huginn_checker_cache_misses_total
	CheckerCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checker",
		Name:      "cache_misses_total",
		Help:      "Cache consultations that did not short-circuit a live probe",
	})

	// AnchorsDiscovered counts element ids seen while scanning fetched pages.
	// A high ratio of anchors to checks means the exhaustive scan is
	// amortizing well.
	// Metric: huginn_checker_anchors_discovered_total
	AnchorsDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checker",
		Name:      "anchors_discovered_total",
		Help:      "Element ids discovered while scanning fetched pages",
	})

	// -------------------------------------------------------------------------
	// PROBE (HTTP)
	// -------------------------------------------------------------------------

	// ProbeRequests counts live HTTP probes by method and outcome.
	// Transport errors and bad status codes both count as "failure".
	// Metric: huginn_probe_requests_total{method,outcome}
	ProbeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "probe",
		Name:      "requests_total",
		Help:      "Live HTTP probe requests by method and outcome",
	}, []string{"method", "outcome"})

	// -------------------------------------------------------------------------
	// CACHE BACKENDS
	// -------------------------------------------------------------------------

	// CacheBackendErrors counts store operations that failed against a
	// remote backend (Redis, Postgres). Backend failures degrade to cache
	// misses, so this counter is the only place they stay visible.
	// Metric: huginn_cache_backend_errors_total{backend,op}
	CacheBackendErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cache",
		Name:      "backend_errors_total",
		Help:      "Cache store operations that failed against the backend",
	}, []string{"backend", "op"})
)
