// Prometheus instrumentation for the search layer. Provider failures are
// absorbed into empty results, so counters are the only way degradation
// stays observable in production.
package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunepreview_search_cache_hits_total",
		Help: "Search queries answered from the cache.",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tunepreview_search_cache_misses_total",
		Help: "Search queries that required provider requests.",
	})
	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunepreview_provider_requests_total",
		Help: "Requests issued to music metadata providers.",
	}, []string{"provider"})
	providerFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tunepreview_provider_failures_total",
		Help: "Provider requests absorbed into empty results.",
	}, []string{"provider"})
)
