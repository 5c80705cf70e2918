// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the module.
const (
	// Catalog metrics.
	MetricProductListFetches = "shop_product_list_fetches_total"
	MetricProductFetches     = "shop_product_fetches_total"
	MetricAPICalls           = "shop_api_calls_total"
	MetricAPIFailures        = "shop_api_failures_total"
	MetricFetchSeconds       = "shop_fetch_duration_seconds"

	// Cache metrics.
	MetricCacheHits   = "shop_cache_hits_total"
	MetricCacheMisses = "shop_cache_misses_total"

	// Cart metrics.
	MetricCartAdds        = "shop_cart_adds_total"
	MetricCartAddFailures = "shop_cart_add_failures_total"
	MetricCartSyncs       = "shop_cart_syncs_total"
	MetricCartCount       = "shop_cart_count"
	MetricCartItems       = "shop_cart_items"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
