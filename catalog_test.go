package shop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JvrTrvjn/mobile-shop-app/internal/api"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/memstore"
)

// stubAPI is an in-memory API implementation that counts calls.
type stubAPI struct {
	products []api.Product
	byID     map[string]api.Product
	count    int

	err error

	listCalls int
	getCalls  int
	addCalls  int
}

var _ api.API = (*stubAPI)(nil)

func (s *stubAPI) FetchProducts(ctx context.Context) ([]api.Product, error) {
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func (s *stubAPI) FetchProduct(ctx context.Context, id string) (*api.Product, error) {
	s.getCalls++
	if s.err != nil {
		return nil, s.err
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &p, nil
}

func (s *stubAPI) AddToCart(ctx context.Context, req api.AddToCartRequest) (*api.CartCount, error) {
	s.addCalls++
	if s.err != nil {
		return nil, s.err
	}
	s.count++
	return &api.CartCount{Count: s.count}, nil
}

func newStubAPI() *stubAPI {
	return &stubAPI{
		products: []api.Product{
			{ID: "1", Brand: "Acer", Model: "Iconia Talk S", Price: 170},
			{ID: "2", Brand: "LG", Model: "K8", Price: 120},
		},
		byID: map[string]api.Product{
			"1": {ID: "1", Brand: "Acer", Model: "Iconia Talk S", Price: 170},
			"2": {ID: "2", Brand: "LG", Model: "K8", Price: 120},
		},
	}
}

func TestNewCatalog_RequiresAPI(t *testing.T) {
	if _, err := NewCatalog(); !errors.Is(err, ErrNoAPI) {
		t.Errorf("NewCatalog() error = %v, want ErrNoAPI", err)
	}
}

func TestCatalog_ProductsCached(t *testing.T) {
	stub := newStubAPI()
	catalog, err := NewCatalog(WithAPI(stub))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		products, err := catalog.Products(ctx)
		if err != nil {
			t.Fatalf("Products() error = %v", err)
		}
		if len(products) != 2 {
			t.Fatalf("Products() returned %d products, want 2", len(products))
		}
	}

	if stub.listCalls != 1 {
		t.Errorf("upstream fetched %d times, want 1", stub.listCalls)
	}
}

func TestCatalog_ProductsExpiry(t *testing.T) {
	stub := newStubAPI()
	now := time.Now()
	catalog, err := NewCatalog(
		WithAPI(stub),
		WithClock(func() time.Time { return now }),
	)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()
	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() error = %v", err)
	}

	now = now.Add(time.Hour + time.Second)
	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() after expiry error = %v", err)
	}

	if stub.listCalls != 2 {
		t.Errorf("upstream fetched %d times, want 2 after expiry", stub.listCalls)
	}
}

func TestCatalog_ProductCached(t *testing.T) {
	stub := newStubAPI()
	catalog, err := NewCatalog(WithAPI(stub))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		product, err := catalog.Product(ctx, "1")
		if err != nil {
			t.Fatalf("Product() error = %v", err)
		}
		if product.Model != "Iconia Talk S" {
			t.Errorf("Model = %q, want %q", product.Model, "Iconia Talk S")
		}
	}

	// A differently padded id must hit the same cache entry.
	if _, err := catalog.Product(ctx, " 1 "); err != nil {
		t.Fatalf("Product() with padded id error = %v", err)
	}

	if stub.getCalls != 1 {
		t.Errorf("upstream fetched %d times, want 1", stub.getCalls)
	}
}

func TestCatalog_ProductInvalidID(t *testing.T) {
	stub := newStubAPI()
	catalog, err := NewCatalog(WithAPI(stub))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	for _, id := range []string{"", "  ", "no-id", "undefined"} {
		if _, err := catalog.Product(context.Background(), id); !errors.Is(err, ErrInvalidProductID) {
			t.Errorf("Product(%q) error = %v, want ErrInvalidProductID", id, err)
		}
	}
	if stub.getCalls != 0 {
		t.Errorf("upstream fetched %d times for invalid ids, want 0", stub.getCalls)
	}
}

func TestCatalog_UpstreamFailure(t *testing.T) {
	stub := newStubAPI()
	stub.err = errors.New("connection reset")
	catalog, err := NewCatalog(WithAPI(stub))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()
	if _, err := catalog.Products(ctx); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Products() error = %v, want ErrUnavailable", err)
	}
	if _, err := catalog.Product(ctx, "1"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Product() error = %v, want ErrUnavailable", err)
	}
	if _, err := catalog.AddProductToCart(ctx, AddToCartRequest{ID: "1"}); !errors.Is(err, ErrUnavailable) {
		t.Errorf("AddProductToCart() error = %v, want ErrUnavailable", err)
	}

	// Failed fetches must not poison the cache.
	stub.err = nil
	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() after recovery error = %v", err)
	}
	if stub.listCalls != 2 {
		t.Errorf("upstream fetched %d times, want 2", stub.listCalls)
	}
}

func TestCatalog_AddProductToCartNeverCached(t *testing.T) {
	stub := newStubAPI()
	catalog, err := NewCatalog(WithAPI(stub))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()
	req := AddToCartRequest{ID: "1", ColorCode: 1000, StorageCode: 64}
	for want := 1; want <= 3; want++ {
		resp, err := catalog.AddProductToCart(ctx, req)
		if err != nil {
			t.Fatalf("AddProductToCart() error = %v", err)
		}
		if resp.Count != want {
			t.Errorf("Count = %d, want %d", resp.Count, want)
		}
	}
	if stub.addCalls != 3 {
		t.Errorf("upstream called %d times, want 3", stub.addCalls)
	}
}

func TestCatalog_ClearCache(t *testing.T) {
	stub := newStubAPI()
	store := memstore.New()
	catalog, err := NewCatalog(WithAPI(stub), WithCacheStore(store))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	ctx := context.Background()
	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	if _, err := catalog.Product(ctx, "1"); err != nil {
		t.Fatalf("Product() error = %v", err)
	}

	catalog.ClearCache(ctx)

	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() after clear error = %v", err)
	}
	if stub.listCalls != 2 {
		t.Errorf("upstream list fetched %d times, want 2 after clear", stub.listCalls)
	}
	if _, err := catalog.Product(ctx, "1"); err != nil {
		t.Fatalf("Product() after clear error = %v", err)
	}
	if stub.getCalls != 2 {
		t.Errorf("upstream detail fetched %d times, want 2 after clear", stub.getCalls)
	}
}

func TestCatalog_Closed(t *testing.T) {
	catalog, err := NewCatalog(WithAPI(newStubAPI()))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	if err := catalog.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := catalog.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close() error = %v, want ErrClosed", err)
	}

	ctx := context.Background()
	if _, err := catalog.Products(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Products() error = %v, want ErrClosed", err)
	}
	if _, err := catalog.Product(ctx, "1"); !errors.Is(err, ErrClosed) {
		t.Errorf("Product() error = %v, want ErrClosed", err)
	}
	if _, err := catalog.AddProductToCart(ctx, AddToCartRequest{ID: "1"}); !errors.Is(err, ErrClosed) {
		t.Errorf("AddProductToCart() error = %v, want ErrClosed", err)
	}
}
