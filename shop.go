// Package shop provides the client-side core of a mobile-phone storefront:
// a cached product catalog over the remote storefront API and a
// reducer-based shopping cart that reconciles its item count with the
// server.
//
// Example usage:
//
//	catalog, err := shop.NewCatalog(
//	    shop.WithAPI(api.NewClient()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer catalog.Close()
//
//	products, err := catalog.Products(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d products\n", len(products))
package shop

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/cache"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNoAPI indicates no API client was provided.
	ErrNoAPI = errors.New("shop: no API client provided")

	// ErrClosed indicates the catalog has been closed.
	ErrClosed = errors.New("shop: catalog closed")

	// ErrUnavailable is the generic user-safe failure for transport
	// errors. The underlying cause is logged, never surfaced.
	ErrUnavailable = errors.New("shop: service unavailable, try again later")

	// ErrInvalidProductID indicates a missing or sentinel product id.
	ErrInvalidProductID = errors.New("shop: invalid product ID")
)

// AddToCartRequest is the payload relayed to the cart endpoint.
type AddToCartRequest = api.AddToCartRequest

// CartCount is the server's authoritative cart count response.
type CartCount = api.CartCount

// Catalog serves product reads through the TTL cache and relays cart
// mutations to the remote API without caching them.
// A Catalog is safe for concurrent use by multiple goroutines.
type Catalog struct {
	api    api.API
	cache  *cache.Cache
	stats  stats.Collector
	logger *zap.Logger
	closed atomic.Bool
}

// NewCatalog creates a new Catalog with the given options.
// An API client is required; everything else has sensible defaults.
func NewCatalog(opts ...Option) (*Catalog, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.api == nil {
		return nil, ErrNoAPI
	}

	c := &Catalog{
		api:    cfg.api,
		stats:  cfg.stats,
		logger: cfg.logger,
	}
	c.cache = cache.New(cfg.cacheStore,
		cache.WithTTL(cfg.cacheTTL),
		cache.WithNow(cfg.now),
		cache.WithStats(cfg.stats),
		cache.WithLogger(cfg.logger.Named("cache")),
	)

	c.logger.Debug("catalog initialized",
		zap.Duration("cacheTTL", cfg.cacheTTL),
	)

	return c, nil
}

// Products returns the product listing, served from cache when a valid
// entry exists. On upstream failure no cache write happens and the
// caller receives ErrUnavailable.
func (c *Catalog) Products(ctx context.Context) ([]Product, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	c.stats.IncCounter(stats.MetricProductListFetches, 1)

	var records []api.Product
	if c.cache.Get(ctx, cache.KeyProducts, &records) {
		return recordsToProducts(records), nil
	}

	start := time.Now()
	records, err := c.api.FetchProducts(ctx)
	c.observeFetch(start, err)
	if err != nil {
		c.logger.Warn("product list fetch failed", zap.Error(err))
		return nil, ErrUnavailable
	}

	c.cache.Set(ctx, cache.KeyProducts, records)
	return recordsToProducts(records), nil
}

// Product returns the details for a single product, served from cache
// when a valid entry exists.
//
// The id is trimmed before use; empty ids and the sentinel strings
// "no-id" and "undefined" are rejected, guarding against upstream
// routing bugs that produce them.
func (c *Catalog) Product(ctx context.Context, id string) (*Product, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	id = strings.TrimSpace(id)
	if id == "" || id == "no-id" || id == "undefined" {
		return nil, ErrInvalidProductID
	}

	c.stats.IncCounter(stats.MetricProductFetches, 1)

	key := cache.Key("product", id)

	var record api.Product
	if c.cache.Get(ctx, key, &record) {
		product := recordToProduct(record)
		return &product, nil
	}

	start := time.Now()
	fetched, err := c.api.FetchProduct(ctx, id)
	c.observeFetch(start, err)
	if err != nil {
		c.logger.Warn("product fetch failed", zap.String("id", id), zap.Error(err))
		return nil, ErrUnavailable
	}

	c.cache.Set(ctx, key, *fetched)
	product := recordToProduct(*fetched)
	return &product, nil
}

// AddProductToCart relays a cart mutation to the remote API.
// The response is never cached: the mutation is not idempotent.
func (c *Catalog) AddProductToCart(ctx context.Context, req AddToCartRequest) (*CartCount, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}

	resp, err := c.api.AddToCart(ctx, req)
	if err != nil {
		c.stats.IncCounter(stats.MetricAPIFailures, 1)
		c.logger.Warn("cart mutation failed", zap.String("id", req.ID), zap.Error(err))
		return nil, ErrUnavailable
	}
	return resp, nil
}

// ClearCache sweeps all cached product data.
// Unrelated durable keys (such as the cart count mirror) are untouched.
func (c *Catalog) ClearCache(ctx context.Context) {
	c.cache.Clear(ctx)
}

// Close releases resources associated with the catalog.
// After Close, the catalog should not be used.
func (c *Catalog) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}
	return nil
}

// observeFetch records one upstream round-trip.
func (c *Catalog) observeFetch(start time.Time, err error) {
	c.stats.IncCounter(stats.MetricAPICalls, 1)
	c.stats.ObserveHistogram(stats.MetricFetchSeconds, time.Since(start).Seconds())
	if err != nil {
		c.stats.IncCounter(stats.MetricAPIFailures, 1)
	}
}
