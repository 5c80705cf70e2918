package mirror

import (
	"context"
	"errors"
	"testing"

	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/memstore"
)

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("store offline")
}
func (brokenStore) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("quota exceeded")
}
func (brokenStore) Delete(ctx context.Context, key string) error { return nil }
func (brokenStore) Keys(ctx context.Context) ([]string, error)   { return nil, nil }
func (brokenStore) Close() error                                 { return nil }

var _ kvstore.Store = brokenStore{}

func TestMirror_RoundTrip(t *testing.T) {
	m := New(memstore.New())
	ctx := context.Background()

	m.Store(ctx, 7)
	if got := m.Load(ctx); got != 7 {
		t.Errorf("Load() = %d, want 7", got)
	}

	m.Store(ctx, 0)
	if got := m.Load(ctx); got != 0 {
		t.Errorf("Load() after reset = %d, want 0", got)
	}
}

func TestMirror_AbsentSlotReadsZero(t *testing.T) {
	m := New(memstore.New())
	if got := m.Load(context.Background()); got != 0 {
		t.Errorf("Load() = %d, want 0", got)
	}
}

func TestMirror_InvalidValueReadsZero(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	if err := store.Set(ctx, "cartCount", []byte("banana")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	m := New(store)
	if got := m.Load(ctx); got != 0 {
		t.Errorf("Load() of garbage = %d, want 0", got)
	}
}

func TestMirror_NegativeValueReadsZero(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()
	if err := store.Set(ctx, "cartCount", []byte("-3")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	m := New(store)
	if got := m.Load(ctx); got != 0 {
		t.Errorf("Load() of negative count = %d, want 0", got)
	}
}

func TestMirror_FailSoft(t *testing.T) {
	m := New(brokenStore{})
	ctx := context.Background()

	m.Store(ctx, 3) // must not panic or error
	if got := m.Load(ctx); got != 0 {
		t.Errorf("Load() on broken store = %d, want 0", got)
	}
}

func TestMirror_StoresBase10String(t *testing.T) {
	store := memstore.New()
	m := New(store)
	ctx := context.Background()

	m.Store(ctx, 12)
	raw, err := store.Get(ctx, "cartCount")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(raw) != "12" {
		t.Errorf("stored value = %q, want %q", raw, "12")
	}
}
