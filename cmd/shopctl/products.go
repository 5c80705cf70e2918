package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Long: `List every phone the storefront offers. The listing is cached locally
for an hour; pass --search to filter by brand or model.

Examples:
  # Full catalog
  shopctl products

  # Only LG phones
  shopctl products --search lg`,
	Args: cobra.NoArgs,
	RunE: runProducts,
}

var searchTerm string

func init() {
	productsCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "filter by brand or model")
	rootCmd.AddCommand(productsCmd)
}

func runProducts(cmd *cobra.Command, args []string) error {
	catalog, _, store, err := openShop()
	if err != nil {
		return err
	}
	defer store.Close()
	defer catalog.Close()

	products, err := catalog.Products(context.Background())
	if err != nil {
		return err
	}

	if searchTerm != "" {
		term := strings.ToLower(searchTerm)
		filtered := products[:0]
		for _, p := range products {
			if strings.Contains(strings.ToLower(p.Brand), term) ||
				strings.Contains(strings.ToLower(p.Model), term) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBRAND\tMODEL\tPRICE")
	for _, p := range products {
		price := "-"
		if p.Price > 0 {
			price = fmt.Sprintf("%.0f EUR", p.Price)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Brand, p.Model, price)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d products\n", len(products))
	return nil
}
