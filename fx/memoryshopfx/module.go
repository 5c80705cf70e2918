// Package memoryshopfx provides an fx module for an in-memory storefront.
// Useful for testing.
package memoryshopfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	shop "github.com/JvrTrvjn/mobile-shop-app"
	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/memstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats/logger"
)

// Module provides an in-memory Catalog and Cart for testing.
// Requires a *zap.Logger and an api.API to be provided.
var Module = fx.Module("memoryshop",
	fx.Provide(
		newStatsCollector,
		newMemStore,
		newShop,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("shop.stats"))
}

func newMemStore() *memstore.Store {
	return memstore.New()
}

// Params holds dependencies for creating the storefront.
type Params struct {
	fx.In

	API       api.API
	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
	Lifecycle fx.Lifecycle
}

// Result holds the provided catalog, cart, and store.
type Result struct {
	fx.Out

	Catalog *shop.Catalog
	Cart    *shop.Cart
	Store   *memstore.Store // Exposed for test setup
}

func newShop(p Params) (Result, error) {
	catalog, err := shop.NewCatalog(
		shop.WithAPI(p.API),
		shop.WithCacheStore(p.Store),
		shop.WithStats(p.Collector),
		shop.WithLogger(p.Logger.Named("shop")),
	)
	if err != nil {
		return Result{}, err
	}

	cart, err := shop.NewCart(catalog,
		shop.WithCartStore(p.Store),
		shop.WithCartStats(p.Collector),
		shop.WithCartLogger(p.Logger.Named("shop.cart")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return catalog.Close()
		},
	})

	return Result{
		Catalog: catalog,
		Cart:    cart,
		Store:   p.Store,
	}, nil
}
