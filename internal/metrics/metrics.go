package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace is the Prometheus metrics namespace for kubex
	Namespace = "kubex"
)

// Registry holds every kubex collector.
var Registry = prometheus.NewRegistry()

var (
	// RetryAttemptsTotal counts every attempt made by the retry executor, including the first
	RetryAttemptsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "retry_attempts_total",
			Help:      "Total number of attempts made by the retry executor",
		},
	)

	// RetryOutcomesTotal counts finished retry loops by outcome
	RetryOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "retry_outcomes_total",
			Help:      "Total number of finished retry loops by outcome",
		},
		[]string{"outcome"},
	)

	// DiscoveryCacheLookups counts how requested resources were served
	DiscoveryCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "discovery_cache_lookups_total",
			Help:      "Total number of resource resolutions by cache outcome",
		},
		[]string{"result"},
	)

	// DiscoveryCacheWriteErrors counts cache saves that failed and were ignored
	DiscoveryCacheWriteErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "discovery_cache_write_errors_total",
			Help:      "Total number of failed discovery cache writes",
		},
	)

	// APIDiscoveryDuration measures the duration of live API discovery in seconds
	APIDiscoveryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "api_discovery_duration_seconds",
			Help:      "Duration of live API discovery operations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// APIDiscoveryErrors counts live discovery runs that failed after retries
	APIDiscoveryErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "api_discovery_errors_total",
			Help:      "Total number of failed live API discovery operations",
		},
	)
)

func init() {
	Registry.MustRegister(
		RetryAttemptsTotal,
		RetryOutcomesTotal,
		DiscoveryCacheLookups,
		DiscoveryCacheWriteErrors,
		APIDiscoveryDuration,
		APIDiscoveryErrors,
	)
}

// Retry outcome label values
const (
	OutcomeSuccess   = "success"
	OutcomeFatal     = "fatal"
	OutcomeExhausted = "exhausted"
	OutcomeCancelled = "cancelled"
)

// Discovery cache lookup label values
const (
	CacheFreshHit     = "fresh_hit"
	CacheStaleRefresh = "stale_refresh"
	CacheMiss         = "miss"
	CacheFallback     = "stale_fallback"
)

// WriteTextfile writes every collected metric to path in the textfile
// collector format. The write goes through a temporary file and a rename.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, Registry)
}
