package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	shop "github.com/JvrTrvjn/mobile-shop-app"
)

var productCmd = &cobra.Command{
	Use:   "product [ID]",
	Short: "Show the details of one phone",
	Long: `Show the full spec sheet for a phone, including the color and storage
options needed for 'shopctl add'.

Examples:
  shopctl product ZmGrkLRPXOTpxsU4jjAcv
  shopctl product ZmGrkLRPXOTpxsU4jjAcv --json`,
	Args: cobra.ExactArgs(1),
	RunE: runProduct,
}

var productJSON bool

func init() {
	productCmd.Flags().BoolVar(&productJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(productCmd)
}

func runProduct(cmd *cobra.Command, args []string) error {
	catalog, _, store, err := openShop()
	if err != nil {
		return err
	}
	defer store.Close()
	defer catalog.Close()

	product, err := catalog.Product(context.Background(), args[0])
	if err != nil {
		return err
	}

	if productJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(product)
	}

	printProduct(cmd, product)
	return nil
}

func printProduct(cmd *cobra.Command, p *shop.Product) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", p.Brand, p.Model)
	if p.Price > 0 {
		fmt.Fprintf(out, "Price:    %.0f EUR\n", p.Price)
	} else {
		fmt.Fprintln(out, "Price:    not listed")
	}
	if p.CPU != "" {
		fmt.Fprintf(out, "CPU:      %s\n", p.CPU)
	}
	if p.RAM != "" {
		fmt.Fprintf(out, "RAM:      %s\n", p.RAM)
	}
	if p.OS != "" {
		fmt.Fprintf(out, "OS:       %s\n", p.OS)
	}
	if p.DisplaySize != "" {
		fmt.Fprintf(out, "Display:  %s\n", p.DisplaySize)
	}
	if p.Battery != "" {
		fmt.Fprintf(out, "Battery:  %s\n", p.Battery)
	}
	fmt.Fprintf(out, "Colors:   %s\n", formatVariants(p.Colors))
	fmt.Fprintf(out, "Storages: %s\n", formatVariants(p.Storages))
}

func formatVariants(vs []shop.Variant) string {
	if len(vs) == 0 {
		return "-"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%s (%d)", v.Name, v.Code)
	}
	return strings.Join(parts, ", ")
}
