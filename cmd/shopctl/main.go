// Package main provides the shopctl CLI tool for browsing the mobile
// phone storefront and managing a local cart.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
