package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venuefinder_provider_requests_total",
		Help: "Maps provider HTTP calls by endpoint and outcome",
	}, []string{"endpoint", "outcome"})
	ProviderRetriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venuefinder_provider_retries_total",
		Help: "Maps provider retries after a transient failure",
	}, []string{"endpoint"})
	OperationDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "venuefinder_operation_duration_ms",
		Help:    "Internal operation duration in milliseconds",
		Buckets: []float64{5, 20, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"op", "outcome"})
	FindPlacesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venuefinder_find_places_total",
		Help: "find-places pipeline runs by outcome",
	}, []string{"outcome"})
	GeocodeCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "venuefinder_geocode_cache_hits_total",
		Help: "Locations resolved from the persistent geocode cache",
	})
	GeocodeCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "venuefinder_geocode_cache_misses_total",
		Help: "Locations that required a provider geocode call",
	})
	ShareSnapshotsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venuefinder_share_snapshots_total",
		Help: "Share snapshot operations by kind and outcome",
	}, []string{"kind", "outcome"})
)

func init() {
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ProviderRetriesTotal)
	prometheus.MustRegister(OperationDurationMs)
	prometheus.MustRegister(FindPlacesTotal)
	prometheus.MustRegister(GeocodeCacheHitsTotal)
	prometheus.MustRegister(GeocodeCacheMissesTotal)
	prometheus.MustRegister(ShareSnapshotsTotal)
}

// Outcome labels a result for the counters above.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Handler exposes every registered collector for scraping.
func Handler() http.Handler { return promhttp.Handler() }
