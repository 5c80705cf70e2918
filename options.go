package shop

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/cache"
	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/zstdcodec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/filestore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/memstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats"
)

// Option configures a Catalog.
type Option interface {
	apply(*options)
}

// options holds the catalog configuration.
type options struct {
	api        api.API
	cacheStore kvstore.Store
	cacheTTL   time.Duration
	now        func() time.Time
	stats      stats.Collector
	logger     *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		cacheStore: memstore.New(),
		cacheTTL:   cache.DefaultTTL,
		now:        time.Now,
		stats:      stats.NewNoop(),
		logger:     zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithAPI sets the storefront API client to use. Required.
func WithAPI(a api.API) Option {
	return optionFunc(func(o *options) {
		o.api = a
	})
}

// WithCacheStore sets the key-value store backing the cache.
// If not set, an in-memory store is used.
func WithCacheStore(s kvstore.Store) Option {
	return optionFunc(func(o *options) {
		o.cacheStore = s
	})
}

// WithCacheTTL sets the lifetime of cached product data.
// Default is cache.DefaultTTL.
func WithCacheTTL(ttl time.Duration) Option {
	return optionFunc(func(o *options) {
		o.cacheTTL = ttl
	})
}

// WithClock sets the clock used for cache expiry decisions (for tests).
func WithClock(now func() time.Time) Option {
	return optionFunc(func(o *options) {
		o.now = now
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

// WithCacheDir configures a durable file-backed cache under dir with
// zstd compression. Cached data and the persisted cart count survive
// process restarts. This is the recommended setup for CLI use.
func WithCacheDir(dir string) (Option, error) {
	st, err := filestore.New(dir, zstdcodec.New())
	if err != nil {
		return nil, fmt.Errorf("creating cache store: %w", err)
	}
	return optionFunc(func(o *options) {
		o.cacheStore = st
	}), nil
}
