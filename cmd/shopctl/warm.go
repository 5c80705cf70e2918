package main

import (
	"context"

	"github.com/spf13/cobra"

	shop "github.com/JvrTrvjn/mobile-shop-app"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Prefetch the whole catalog into the cache",
	Long: `Fetch the product listing and every product page once so later
commands are served from the local cache.`,
	Args: cobra.NoArgs,
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)
}

func runWarm(cmd *cobra.Command, args []string) error {
	catalog, _, store, err := openShop()
	if err != nil {
		return err
	}
	defer store.Close()
	defer catalog.Close()

	return catalog.Warm(context.Background(), shop.DefaultProgressFunc)
}
