package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	shop "github.com/JvrTrvjn/mobile-shop-app"
	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/zstdcodec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/filestore"
)

var (
	// Global flags.
	apiURL   string
	cacheDir string
	verbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "shopctl",
	Short: "Browse the mobile phone storefront and manage a local cart",
	Long: `Shopctl talks to the remote storefront API, keeps product data in a
local cache for an hour, and persists the cart count across runs.

Examples:
  # List the catalog
  shopctl products

  # Show one phone
  shopctl product ZmGrkLRPXOTpxsU4jjAcv

  # Add it to the cart
  shopctl add ZmGrkLRPXOTpxsU4jjAcv --color 1000 --storage 64

  # Drop all cached product data
  shopctl clear-cache`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", api.DefaultBaseURL, "storefront API endpoint")
	rootCmd.PersistentFlags().StringVarP(&cacheDir, "cache-dir", "c", "./cache", "directory for cached data")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// openShop wires a catalog and cart over a shared durable cache
// directory. The caller owns the returned store and must Close it.
func openShop() (*shop.Catalog, *shop.Cart, *filestore.Store, error) {
	logger := newLogger()

	store, err := filestore.New(cacheDir, zstdcodec.New())
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening cache directory: %w", err)
	}

	catalog, err := shop.NewCatalog(
		shop.WithAPI(api.NewClient(
			api.WithBaseURL(apiURL),
			api.WithLogger(logger.Named("api")),
		)),
		shop.WithCacheStore(store),
		shop.WithLogger(logger),
	)
	if err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("creating catalog: %w", err)
	}

	cart, err := shop.NewCart(catalog,
		shop.WithCartStore(store),
		shop.WithCartLogger(logger.Named("cart")),
	)
	if err != nil {
		store.Close()
		return nil, nil, nil, fmt.Errorf("creating cart: %w", err)
	}

	return catalog, cart, store, nil
}
