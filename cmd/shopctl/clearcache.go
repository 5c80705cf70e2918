package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop all cached product data",
	Long: `Drop all cached product data so the next command fetches fresh data
from the storefront API. The persisted cart count is kept.`,
	Args: cobra.NoArgs,
	RunE: runClearCache,
}

func init() {
	rootCmd.AddCommand(clearCacheCmd)
}

func runClearCache(cmd *cobra.Command, args []string) error {
	catalog, _, store, err := openShop()
	if err != nil {
		return err
	}
	defer store.Close()
	defer catalog.Close()

	catalog.ClearCache(context.Background())
	fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared")
	return nil
}
