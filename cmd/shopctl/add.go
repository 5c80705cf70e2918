package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [ID]",
	Short: "Add a phone to the cart",
	Long: `Add a phone to the server-side cart and print the reconciled cart
count. Color and storage codes come from 'shopctl product'.

Examples:
  shopctl add ZmGrkLRPXOTpxsU4jjAcv --color 1000 --storage 64
  shopctl add ZmGrkLRPXOTpxsU4jjAcv --color 1000 --storage 64 --quantity 2`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

var (
	colorCode   string
	storageCode string
	quantity    int
)

func init() {
	addCmd.Flags().StringVar(&colorCode, "color", "", "color code (required)")
	addCmd.Flags().StringVar(&storageCode, "storage", "", "storage code (required)")
	addCmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "units to add")
	addCmd.MarkFlagRequired("color")
	addCmd.MarkFlagRequired("storage")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	catalog, cart, store, err := openShop()
	if err != nil {
		return err
	}
	defer store.Close()
	defer catalog.Close()

	ctx := context.Background()

	product, err := catalog.Product(ctx, args[0])
	if err != nil {
		return err
	}

	count, err := cart.AddToCart(ctx, *product, quantity, colorCode, storageCode)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d x %s %s\nCart count: %d\n",
		quantity, product.Brand, product.Model, count)
	return nil
}
