// Package filestore implements a filesystem-backed key-value store.
//
// Each key is stored as one file under the root directory. Values are
// passed through the configured codec, so cached payloads can be kept
// compressed on disk.
package filestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/JvrTrvjn/mobile-shop-app/internal/codec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
)

// Compile-time check that Store implements kvstore.Store.
var _ kvstore.Store = (*Store)(nil)

// Store is a filesystem-backed key-value store.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a new file store rooted at the given directory.
// The directory is created if it does not exist.
// The codec handles compression/decompression of values.
func New(root string, c codec.Codec) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating root directory: %w", err)
	}

	return &Store{
		root:  root,
		codec: c,
	}, nil
}

// Get reads and decompresses the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	// Check for cancellation before starting I/O.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kvstore.ErrNotFound
		}
		return nil, fmt.Errorf("reading value: %w", err)
	}

	reader, err := s.codec.Reader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("creating decompressor: %w", err)
	}
	defer reader.Close()

	value, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("decompressing value: %w", err)
	}

	return value, nil
}

// Set compresses and writes value under key.
// The value is written to a temporary file and renamed into place so a
// crash mid-write never leaves a truncated entry behind.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	var buf bytes.Buffer
	writer, err := s.codec.Writer(&buf)
	if err != nil {
		return fmt.Errorf("creating compressor: %w", err)
	}
	if _, err := writer.Write(value); err != nil {
		return fmt.Errorf("compressing value: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("flushing compressor: %w", err)
	}

	path := s.keyPath(key)
	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing value: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming value into place: %w", err)
	}

	return nil
}

// Delete removes the value stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing value: %w", err)
	}
	return nil
}

// Keys lists all keys currently present in the store.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing root directory: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".tmp-") {
			continue
		}
		key, ok := s.keyFromName(entry.Name())
		if !ok {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// keyPath returns the filesystem path for a key.
func (s *Store) keyPath(key string) string {
	return filepath.Join(s.root, s.fileName(key))
}

// fileName returns the escaped filename for a key.
// Keys are escaped so arbitrary identifiers cannot traverse directories.
func (s *Store) fileName(key string) string {
	name := url.QueryEscape(key)
	if ext := s.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}

// keyFromName reverses fileName. Files with a mismatched extension or an
// unescapable name do not belong to this store and are skipped.
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
