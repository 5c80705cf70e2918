// Package cache implements the read-through TTL cache for API responses.
//
// Entries are stored in a kvstore.Store as JSON envelopes carrying the
// payload and an absolute expiry timestamp. Every operation is fail-soft:
// a broken or unavailable store degrades to "always miss", never to an
// error visible to the caller.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats"
)

// DefaultTTL is how long cached entries stay valid.
const DefaultTTL = time.Hour

// Cache key prefixes recognized by Clear. Keys outside these prefixes
// (such as the persisted cart counter) are never touched.
const (
	KeyProducts      = "products"
	ProductKeyPrefix = "product_"
)

// entry is the stored envelope. Expiry is epoch milliseconds.
type entry struct {
	Data   json.RawMessage `json:"data"`
	Expiry int64           `json:"expiry"`
}

// Cache is a TTL cache over a durable key-value store.
type Cache struct {
	store  kvstore.Store
	ttl    time.Duration
	now    func() time.Time
	stats  stats.Collector
	logger *zap.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets the entry lifetime. Default is DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithNow sets the clock used for expiry decisions (for tests).
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(collector stats.Collector) Option {
	return func(c *Cache) {
		c.stats = collector
	}
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		c.logger = logger
	}
}

// New creates a cache over the given store.
func New(store kvstore.Store, opts ...Option) *Cache {
	c := &Cache{
		store:  store,
		ttl:    DefaultTTL,
		now:    time.Now,
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key builds a deterministic cache key for a resource.
// A nil or empty id yields the bare resource name; otherwise the id is
// stringified and trimmed so equivalent identifiers (42, "42", " 42 ")
// collapse to the same key.
func Key(resource string, id any) string {
	if id == nil {
		return resource
	}
	s := strings.TrimSpace(fmt.Sprint(id))
	if s == "" {
		return resource
	}
	return resource + "_" + s
}

// Get looks up key and unmarshals the cached payload into v.
// It reports whether a valid entry was found. Expired entries are
// removed and reported as misses; corrupt entries are treated as misses.
func (c *Cache) Get(ctx context.Context, key string, v any) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if err != kvstore.ErrNotFound {
			c.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
		c.miss()
		return false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.logger.Debug("corrupt cache entry", zap.String("key", key), zap.Error(err))
		c.evict(ctx, key)
		c.miss()
		return false
	}

	if c.now().UnixMilli() > e.Expiry {
		c.evict(ctx, key)
		c.miss()
		return false
	}

	if err := json.Unmarshal(e.Data, v); err != nil {
		c.logger.Debug("cache payload does not match target type",
			zap.String("key", key), zap.Error(err))
		c.miss()
		return false
	}

	c.stats.IncCounter(stats.MetricCacheHits, 1)
	return true
}

// Set stores v under key with the configured TTL, overwriting any
// existing entry. Failures are logged and swallowed; caching is
// best-effort and must never fail the calling operation.
func (c *Cache) Set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Debug("cache value not serializable", zap.String("key", key), zap.Error(err))
		return
	}

	raw, err := json.Marshal(entry{
		Data:   data,
		Expiry: c.now().Add(c.ttl).UnixMilli(),
	})
	if err != nil {
		c.logger.Debug("cache entry not serializable", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.store.Set(ctx, key, raw); err != nil {
		c.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear sweeps the store and deletes every key under a recognized
// resource prefix, leaving unrelated keys untouched. Best-effort.
func (c *Cache) Clear(ctx context.Context) {
	keys, err := c.store.Keys(ctx)
	if err != nil {
		c.logger.Debug("cache sweep failed", zap.Error(err))
		return
	}

	for _, key := range keys {
		if !strings.HasPrefix(key, KeyProducts) && !strings.HasPrefix(key, ProductKeyPrefix) {
			continue
		}
		c.evict(ctx, key)
	}
}

func (c *Cache) miss() {
	c.stats.IncCounter(stats.MetricCacheMisses, 1)
}

func (c *Cache) evict(ctx context.Context, key string) {
	if err := c.store.Delete(ctx, key); err != nil {
		c.logger.Debug("cache delete failed", zap.String("key", key), zap.Error(err))
	}
}
