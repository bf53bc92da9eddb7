package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchRequestsTotal counts answered searches by the ordering actually applied
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proximity_search_requests_total",
			Help: "Total number of answered search requests by applied sort and fallback reason",
		},
		[]string{"sort_applied", "fallback_reason"},
	)

	// CacheLookupsTotal counts result cache lookups by the tier that answered
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proximity_cache_lookups_total",
			Help: "Total number of result cache lookups by outcome (l1, l2, computed, coalesced)",
		},
		[]string{"outcome"},
	)

	// CacheErrorsTotal counts cache store failures that were degraded to misses
	CacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proximity_cache_errors_total",
			Help: "Total number of cache store operations that failed and were treated as misses",
		},
		[]string{"operation"},
	)

	// CoalesceTimeoutsTotal counts followers that gave up waiting on an in-flight leader
	CoalesceTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "proximity_cache_coalesce_timeouts_total",
			Help: "Total number of coalesced waiters that timed out and recomputed independently",
		},
	)

	// IndexQueryDuration tracks spatial index query latency in seconds
	IndexQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proximity_index_query_duration_seconds",
			Help:    "Duration of spatial index queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"backend", "status"},
	)

	// HeartbeatsTotal counts heartbeats accepted by the registry by source and status
	HeartbeatsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proximity_registry_heartbeats_total",
			Help: "Total number of heartbeats accepted by the health registry",
		},
		[]string{"source", "status"},
	)

	// HealthyInstances is the size of the healthy set at the last registry read
	HealthyInstances = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "proximity_registry_healthy_instances",
			Help: "Number of instances currently considered healthy",
		},
	)
)

// RecordSearch increments the search counter; reason is empty when no fallback applied
func RecordSearch(sortApplied, fallbackReason string) {
	if fallbackReason == "" {
		fallbackReason = "none"
	}
	SearchRequestsTotal.WithLabelValues(sortApplied, fallbackReason).Inc()
}

func RecordCacheLookup(outcome string) {
	CacheLookupsTotal.WithLabelValues(outcome).Inc()
}

func RecordCacheError(operation string) {
	CacheErrorsTotal.WithLabelValues(operation).Inc()
}

func RecordCoalesceTimeout() {
	CoalesceTimeoutsTotal.Inc()
}

func RecordIndexQuery(backend, status string, durationSeconds float64) {
	IndexQueryDuration.WithLabelValues(backend, status).Observe(durationSeconds)
}

func RecordHeartbeat(source, status string) {
	HeartbeatsTotal.WithLabelValues(source, status).Inc()
}

func SetHealthyInstances(count int) {
	HealthyInstances.Set(float64(count))
}
