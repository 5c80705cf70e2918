// Package simulation provides tools for simulating shopper traffic
// against differently configured catalog caches.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	shop "github.com/JvrTrvjn/mobile-shop-app"
	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
)

// FakeAPI serves a synthetic catalog with a fixed artificial latency
// per request, standing in for the remote storefront.
type FakeAPI struct {
	products []api.Product
	latency  time.Duration
	calls    atomic.Int64
}

var _ api.API = (*FakeAPI)(nil)

// NewFakeAPI creates a fake API with size synthetic products.
func NewFakeAPI(size int, latency time.Duration) *FakeAPI {
	products := make([]api.Product, size)
	for i := range products {
		products[i] = api.Product{
			ID:    strconv.Itoa(i + 1),
			Brand: "Brand" + strconv.Itoa(i%7),
			Model: "Model " + strconv.Itoa(i+1),
			Price: api.Price(50 + i%400),
			Options: api.Options{
				Colors:   []api.Variant{{Code: 1000, Name: "Black"}},
				Storages: []api.Variant{{Code: 64, Name: "64 GB"}},
			},
		}
	}
	return &FakeAPI{products: products, latency: latency}
}

// Calls returns how many requests reached the fake upstream.
func (f *FakeAPI) Calls() int64 { return f.calls.Load() }

func (f *FakeAPI) FetchProducts(ctx context.Context) ([]api.Product, error) {
	f.calls.Add(1)
	time.Sleep(f.latency)
	return f.products, nil
}

func (f *FakeAPI) FetchProduct(ctx context.Context, id string) (*api.Product, error) {
	f.calls.Add(1)
	time.Sleep(f.latency)
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > len(f.products) {
		return nil, api.ErrNotFound
	}
	p := f.products[n-1]
	return &p, nil
}

func (f *FakeAPI) AddToCart(ctx context.Context, req api.AddToCartRequest) (*api.CartCount, error) {
	f.calls.Add(1)
	time.Sleep(f.latency)
	return &api.CartCount{Count: 1}, nil
}

// Session is one shopper's visit: a listing view followed by a number
// of product page views, some of which repeat earlier views.
type Session struct {
	ProductViews []string
}

// GenerateSessions builds a deterministic traffic sample. Product
// popularity is skewed so a small set of phones draws most views,
// which is what gives a cache something to work with.
func GenerateSessions(n, catalogSize int, seed int64) []Session {
	rng := rand.New(rand.NewSource(seed))
	sessions := make([]Session, n)
	for i := range sessions {
		views := 1 + rng.Intn(6)
		ids := make([]string, views)
		for j := range ids {
			// Quadratic skew toward low product ids.
			r := rng.Float64()
			id := int(r*r*float64(catalogSize)) + 1
			ids[j] = strconv.Itoa(id)
		}
		sessions[i] = Session{ProductViews: ids}
	}
	return sessions
}

// Config is one cache setup under test.
type Config struct {
	// Name labels the configuration in results and reports.
	Name string

	// NewStore builds a fresh store for the run.
	NewStore func() (kvstore.Store, error)

	// TTL is the cache entry lifetime. Zero means the default.
	TTL time.Duration
}

// AggregateResult holds the outcome of replaying a traffic sample
// against one configuration.
type AggregateResult struct {
	ConfigName    string
	TotalRequests int
	UpstreamCalls int64
	SessionMillis []float64 // Wall time per session.
	ViewsPerID    map[string]int
}

// HitRate returns the fraction of requests served without an upstream
// call, as a percentage.
func (a *AggregateResult) HitRate() float64 {
	if a.TotalRequests == 0 {
		return 0
	}
	return float64(a.TotalRequests-int(a.UpstreamCalls)) / float64(a.TotalRequests) * 100
}

// Simulator replays shopper sessions against catalog configurations.
type Simulator struct {
	catalogSize int
	latency     time.Duration
}

// NewSimulator creates a simulator for a catalog of the given size,
// with the given artificial upstream latency per request.
func NewSimulator(catalogSize int, latency time.Duration) *Simulator {
	return &Simulator{
		catalogSize: catalogSize,
		latency:     latency,
	}
}

// Run replays sessions against a catalog built from cfg and collects
// per-session timings and upstream call counts.
func (s *Simulator) Run(cfg Config, sessions []Session) (*AggregateResult, error) {
	upstream := NewFakeAPI(s.catalogSize, s.latency)

	store, err := cfg.NewStore()
	if err != nil {
		return nil, fmt.Errorf("building store for %s: %w", cfg.Name, err)
	}
	defer store.Close()

	opts := []shop.Option{
		shop.WithAPI(upstream),
		shop.WithCacheStore(store),
	}
	if cfg.TTL > 0 {
		opts = append(opts, shop.WithCacheTTL(cfg.TTL))
	}
	catalog, err := shop.NewCatalog(opts...)
	if err != nil {
		return nil, fmt.Errorf("building catalog for %s: %w", cfg.Name, err)
	}
	defer catalog.Close()

	result := &AggregateResult{
		ConfigName:    cfg.Name,
		SessionMillis: make([]float64, 0, len(sessions)),
		ViewsPerID:    make(map[string]int),
	}

	ctx := context.Background()
	for _, session := range sessions {
		start := time.Now()

		if _, err := catalog.Products(ctx); err != nil {
			return nil, fmt.Errorf("listing products: %w", err)
		}
		result.TotalRequests++

		for _, id := range session.ProductViews {
			if _, err := catalog.Product(ctx, id); err != nil {
				return nil, fmt.Errorf("viewing product %s: %w", id, err)
			}
			result.TotalRequests++
			result.ViewsPerID[id]++
		}

		result.SessionMillis = append(result.SessionMillis,
			float64(time.Since(start).Microseconds())/1000)
	}

	result.UpstreamCalls = upstream.Calls()
	return result, nil
}
