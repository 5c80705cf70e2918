// Package api implements the HTTP client for the remote storefront API.
package api

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the API reports an unknown product.
var ErrNotFound = errors.New("api: product not found")

// API defines the remote endpoints the storefront core depends on.
// The concrete Client talks HTTP; tests substitute stubs.
type API interface {
	// FetchProducts returns the full product listing.
	FetchProducts(ctx context.Context) ([]Product, error)

	// FetchProduct returns the details for a single product.
	// Returns ErrNotFound for an unknown id.
	FetchProduct(ctx context.Context, id string) (*Product, error)

	// AddToCart registers an item server-side and returns the
	// authoritative cart count.
	AddToCart(ctx context.Context, req AddToCartRequest) (*CartCount, error)
}
