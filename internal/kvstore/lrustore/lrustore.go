// Package lrustore provides a bounded in-memory key-value store.
//
// It is not durable. It exists for long-lived processes that want the
// cache semantics without unbounded memory growth; the least recently
// used entries are evicted once the capacity is reached.
package lrustore

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
)

// Compile-time check that Store implements kvstore.Store.
var _ kvstore.Store = (*Store)(nil)

// Store is a bounded in-memory key-value store with LRU eviction.
// It is safe for concurrent use.
type Store struct {
	cache *lru.Cache[string, []byte]
}

// New creates a new LRU store with the given capacity.
func New(capacity int) (*Store, error) {
	c, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{cache: c}, nil
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, ok := s.cache.Get(key)
	if !ok {
		return nil, kvstore.ErrNotFound
	}
	return value, nil
}

// Set writes value under key, possibly evicting the least recently used entry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)
	s.cache.Add(key, copied)
	return nil
}

// Delete removes key from the store.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.cache.Remove(key)
	return nil
}

// Keys lists all keys currently present in the store.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	return s.cache.Keys(), nil
}

// Len returns the number of entries in the store.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Close is a no-op for the LRU store.
func (s *Store) Close() error {
	return nil
}
