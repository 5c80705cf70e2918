package gzipcodec

import (
	"bytes"
	"io"
	"testing"
)

func TestCodec_RoundTrip(t *testing.T) {
	c := New()
	payload := []byte(`{"data":{"id":"42","brand":"Acer"},"expiry":1700000000000}`)

	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if bytes.Equal(buf.Bytes(), payload) {
		t.Error("compressed output should differ from input")
	}

	r, err := c.Reader(&buf)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if !bytes.Equal(got, payload) {
		t.Errorf("round trip = %q, want %q", got, payload)
	}
}

func TestCodec_RoundTripEmpty(t *testing.T) {
	c := New()

	var buf bytes.Buffer
	w, err := c.Writer(&buf)
	if err != nil {
		t.Fatalf("Writer() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := c.Reader(&buf)
	if err != nil {
		t.Fatalf("Reader() error = %v", err)
	}
	defer r.Close()

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("round trip of empty input = %q, want empty", got)
	}
}

func TestCodec_ReaderRejectsGarbage(t *testing.T) {
	c := New()
	_, err := c.Reader(bytes.NewReader([]byte("not gzip data")))
	if err == nil {
		t.Error("Reader() with garbage input should return error")
	}
}

func TestCodec_Extension(t *testing.T) {
	if got := New().Extension(); got != "gz" {
		t.Errorf("Extension() = %q, want %q", got, "gz")
	}
}
