// Package fileshopfx provides an fx module for a storefront with a
// durable file-backed cache.
package fileshopfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	shop "github.com/JvrTrvjn/mobile-shop-app"
	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/zstdcodec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/filestore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats/logger"
)

// Config holds configuration for the file-backed storefront.
type Config struct {
	// APIURL is the storefront API endpoint.
	// Default is api.DefaultBaseURL.
	APIURL string

	// CacheDir is the directory holding cached product data and the
	// persisted cart count.
	CacheDir string
}

// Module provides a file-backed Catalog and Cart.
// Requires a *zap.Logger and a Config to be provided.
var Module = fx.Module("fileshop",
	fx.Provide(
		newStatsCollector,
		newShop,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("shop.stats"))
}

// Params holds dependencies for creating the storefront.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided catalog and cart.
type Result struct {
	fx.Out

	Catalog *shop.Catalog
	Cart    *shop.Cart
}

func newShop(p Params) (Result, error) {
	store, err := filestore.New(p.Config.CacheDir, zstdcodec.New())
	if err != nil {
		return Result{}, err
	}

	var clientOpts []api.ClientOption
	if p.Config.APIURL != "" {
		clientOpts = append(clientOpts, api.WithBaseURL(p.Config.APIURL))
	}
	clientOpts = append(clientOpts, api.WithLogger(p.Logger.Named("shop.api")))

	catalog, err := shop.NewCatalog(
		shop.WithAPI(api.NewClient(clientOpts...)),
		shop.WithCacheStore(store),
		shop.WithStats(p.Collector),
		shop.WithLogger(p.Logger.Named("shop")),
	)
	if err != nil {
		store.Close()
		return Result{}, err
	}

	cart, err := shop.NewCart(catalog,
		shop.WithCartStore(store),
		shop.WithCartStats(p.Collector),
		shop.WithCartLogger(p.Logger.Named("shop.cart")),
	)
	if err != nil {
		store.Close()
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := catalog.Close(); err != nil {
				return err
			}
			return store.Close()
		},
	})

	return Result{Catalog: catalog, Cart: cart}, nil
}
