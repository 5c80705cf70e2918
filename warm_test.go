package shop

import (
	"context"
	"errors"
	"testing"
)

func TestCatalog_Warm(t *testing.T) {
	stub := newStubAPI()
	catalog, err := NewCatalog(WithAPI(stub))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	var phases []string
	err = catalog.Warm(context.Background(), func(p Progress) {
		phases = append(phases, p.Phase)
	})
	if err != nil {
		t.Fatalf("Warm() error = %v", err)
	}

	if phases[0] != "listing" || phases[len(phases)-1] != "done" {
		t.Errorf("phases = %v, want listing first and done last", phases)
	}

	// Everything is now cached; further reads stay local.
	ctx := context.Background()
	if _, err := catalog.Products(ctx); err != nil {
		t.Fatalf("Products() error = %v", err)
	}
	for _, id := range []string{"1", "2"} {
		if _, err := catalog.Product(ctx, id); err != nil {
			t.Fatalf("Product(%s) error = %v", id, err)
		}
	}
	if stub.listCalls != 1 || stub.getCalls != 2 {
		t.Errorf("upstream calls after warm = %d list, %d detail; want 1, 2",
			stub.listCalls, stub.getCalls)
	}
}

func TestCatalog_Warm_NilProgress(t *testing.T) {
	catalog, err := NewCatalog(WithAPI(newStubAPI()))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	if err := catalog.Warm(context.Background(), nil); err != nil {
		t.Fatalf("Warm(nil) error = %v", err)
	}
}

func TestCatalog_Warm_UpstreamFailure(t *testing.T) {
	stub := newStubAPI()
	stub.err = errors.New("connection reset")
	catalog, err := NewCatalog(WithAPI(stub))
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	defer catalog.Close()

	var last Progress
	err = catalog.Warm(context.Background(), func(p Progress) { last = p })
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Warm() error = %v, want ErrUnavailable", err)
	}
	if last.Phase != "error" {
		t.Errorf("final phase = %q, want error", last.Phase)
	}
}
