package memstore

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
)

func TestStore_GetSet(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Set(ctx, "products", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Get(ctx, "products")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("Get() = %q, want %q", got, "v1")
	}

	// Overwrite.
	if err := s.Set(ctx, "products", []byte("v2")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err = s.Get(ctx, "products")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "v2" {
		t.Errorf("Get() after overwrite = %q, want %q", got, "v2")
	}
}

func TestStore_GetNotFound(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, kvstore.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.Set(ctx, "product_1", []byte("v")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := s.Delete(ctx, "product_1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "product_1"); !errors.Is(err, kvstore.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, "product_1"); err != nil {
		t.Errorf("Delete() of absent key error = %v", err)
	}
}

func TestStore_Keys(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, k := range []string{"products", "product_7", "cartCount"} {
		if err := s.Set(ctx, k, []byte("v")); err != nil {
			t.Fatalf("Set(%q) error = %v", k, err)
		}
	}

	keys, err := s.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	sort.Strings(keys)

	want := []string{"cartCount", "product_7", "products"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestStore_ValueIsolation(t *testing.T) {
	s := New()
	ctx := context.Background()

	value := []byte("original")
	if err := s.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != "original" {
		t.Errorf("Get() = %q, caller mutation leaked into store", got)
	}
}
