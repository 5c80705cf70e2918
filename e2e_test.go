package shop_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	shop "github.com/JvrTrvjn/mobile-shop-app"
	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/gzipcodec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/filestore"
)

// newStorefrontServer runs a minimal fake of the remote storefront API.
func newStorefrontServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	var cartCount atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/product", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		// String prices and string-or-array fields, as upstream serves them.
		w.Write([]byte(`[
			{"id":"1","brand":"Acer","model":"Iconia Talk S","price":"170",
			 "primaryCamera":"13 MP",
			 "options":{"colors":[{"code":1000,"name":"Black"}],
			            "storages":[{"code":64,"name":"16 GB"}]}},
			{"id":"2","brand":"LG","model":"K8","price":""}
		]`))
	})
	mux.HandleFunc("GET /api/product/1", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"id":"1","brand":"Acer","model":"Iconia Talk S","price":170,
			"options":{"colors":[{"code":1000,"name":"Black"}],
			           "storages":[{"code":64,"name":"16 GB"}]}}`))
	})
	mux.HandleFunc("POST /api/cart", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		var req api.AddToCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(api.CartCount{Count: int(cartCount.Add(1))})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestStorefrontEndToEnd(t *testing.T) {
	srv, requests := newStorefrontServer(t)

	dir := t.TempDir()
	store, err := filestore.New(dir, gzipcodec.New())
	if err != nil {
		t.Fatalf("filestore.New() error = %v", err)
	}
	defer store.Close()

	catalog, err := shop.NewCatalog(
		shop.WithAPI(api.NewClient(api.WithBaseURL(srv.URL))),
		shop.WithCacheStore(store),
	)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()

	// Browse the listing twice; the second read is served from disk.
	products, err := catalog.Products(ctx)
	if err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("Products() returned %d products, want 2", len(products))
	}
	if products[0].Price != 170 || products[1].Price != 0 {
		t.Errorf("prices = %v, %v, want 170 and 0", products[0].Price, products[1].Price)
	}
	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() second read error = %v", err)
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("server saw %d listing requests, want 1", got)
	}

	// Open a product page.
	phone, err := catalog.Product(ctx, "1")
	if err != nil {
		t.Fatalf("Product() error = %v", err)
	}
	if phone.Model != "Iconia Talk S" {
		t.Errorf("Model = %q", phone.Model)
	}

	// Add it to the cart, twice.
	cart, err := shop.NewCart(catalog, shop.WithCartStore(store))
	if err != nil {
		t.Fatalf("NewCart() error = %v", err)
	}
	if _, err := cart.AddToCart(ctx, *phone, 1, "1000", "64"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	count, err := cart.AddToCart(ctx, *phone, 1, "1000", "64")
	if err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	// A fresh cart over the same directory sees the persisted badge.
	restarted, err := shop.NewCart(catalog, shop.WithCartStore(store))
	if err != nil {
		t.Fatalf("NewCart() error = %v", err)
	}
	if restarted.Count() != 2 {
		t.Errorf("restarted cart count = %d, want 2", restarted.Count())
	}

	// Clearing the cache must not clear the persisted cart count.
	catalog.ClearCache(ctx)
	again, err := shop.NewCart(catalog, shop.WithCartStore(store))
	if err != nil {
		t.Fatalf("NewCart() error = %v", err)
	}
	if again.Count() != 2 {
		t.Errorf("count after cache clear = %d, want 2", again.Count())
	}

	// The listing is refetched after the clear.
	before := requests.Load()
	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() after clear error = %v", err)
	}
	if requests.Load() != before+1 {
		t.Error("listing should be refetched after cache clear")
	}
}
