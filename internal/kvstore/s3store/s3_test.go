package s3store

import (
	"testing"

	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/gzipcodec"
	"github.com/JvrTrvjn/mobile-shop-app/internal/codec/noopcodec"
)

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			opt := WithPrefix(tt.input)
			if err := opt(s); err != nil {
				t.Fatalf("WithPrefix() error = %v", err)
			}
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_objectKey(t *testing.T) {
	s := &Store{codec: gzipcodec.New()}

	if got := s.objectKey("products"); got != "products.gz" {
		t.Errorf("objectKey() = %q, want %q", got, "products.gz")
	}

	s.prefix = "shop/cache/"
	if got := s.objectKey("product_42"); got != "shop/cache/product_42.gz" {
		t.Errorf("objectKey() = %q, want %q", got, "shop/cache/product_42.gz")
	}
}

func TestStore_keyRoundTrip(t *testing.T) {
	s := &Store{codec: noopcodec.New()}

	keys := []string{"products", "product_42", "cartCount"}
	for _, key := range keys {
		got, ok := s.keyFromName(s.objectKey(key))
		if !ok || got != key {
			t.Errorf("keyFromName(objectKey(%q)) = %q, %v", key, got, ok)
		}
	}
}

func TestStore_Close(t *testing.T) {
	s := &Store{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
