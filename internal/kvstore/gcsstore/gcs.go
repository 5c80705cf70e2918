// Package gcsstore implements a Google Cloud Storage key-value backend.
//
// It lets several hosts (e.g. an SSR render farm) share one response
// cache through a bucket instead of each keeping its own copy on disk.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/JvrTrvjn/mobile-shop-app/internal/codec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
)

// Compile-time check that Store implements kvstore.Store.
var _ kvstore.Store = (*Store)(nil)

// Store is a Google Cloud Storage key-value backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store.
// The bucket must already exist.
// The codec handles compression/decompression of values.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets an object-name prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// Get reads and decompresses the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj := s.bucket.Object(s.objectName(key))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, kvstore.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	decompressor, err := s.codec.Reader(reader)
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer decompressor.Close()

	value, err := io.ReadAll(decompressor)
	if err != nil {
		return nil, fmt.Errorf("decompressing value: %w", err)
	}

	return value, nil
}

// Set compresses and writes value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	obj := s.bucket.Object(s.objectName(key))

	writer := obj.NewWriter(ctx)
	compressor, err := s.codec.Writer(writer)
	if err != nil {
		writer.Close()
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := compressor.Write(value); err != nil {
		compressor.Close()
		writer.Close()
		return fmt.Errorf("compressing value: %w", err)
	}
	if err := compressor.Close(); err != nil {
		writer.Close()
		return fmt.Errorf("flushing compressor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("writing object: %w", err)
	}

	return nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	err := s.bucket.Object(s.objectName(key)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

// Keys lists all keys currently present under the store prefix.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string

	it := s.bucket.Objects(ctx, &storage.Query{Prefix: s.prefix})
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}

		key, ok := s.keyFromName(strings.TrimPrefix(attrs.Name, s.prefix))
		if !ok {
			continue
		}
		keys = append(keys, key)
	}

	return keys, nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// objectName returns the full object name for a key.
func (s *Store) objectName(key string) string {
	name := url.QueryEscape(key)
	if ext := s.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return s.prefix + name
}

// keyFromName reverses objectName (without the prefix).
func (s *Store) keyFromName(name string) (string, bool) {
	if ext := s.codec.Extension(); ext != "" {
		var ok bool
		name, ok = strings.CutSuffix(name, "."+ext)
		if !ok {
			return "", false
		}
	}
	key, err := url.QueryUnescape(name)
	if err != nil {
		return "", false
	}
	return key, true
}
