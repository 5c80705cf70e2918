// Package mirror persists the last-known cart count.
//
// The mirror exists so a freshly started process can show a plausible
// cart badge before any network call completes. It is a single durable
// slot with last-write-wins semantics; the server re-derives the real
// count on the next successful cart mutation.
package mirror

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
)

// slotKey is the durable key holding the count as a base-10 integer string.
const slotKey = "cartCount"

// Mirror reads and writes the persisted cart count.
type Mirror struct {
	store  kvstore.Store
	logger *zap.Logger
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Mirror) {
		m.logger = logger
	}
}

// New creates a mirror over the given store.
func New(store kvstore.Store, opts ...Option) *Mirror {
	m := &Mirror{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load returns the persisted count.
// An absent slot, an unreadable store, or an unparsable value all read
// as 0: the badge seed is best-effort.
func (m *Mirror) Load(ctx context.Context) int {
	raw, err := m.store.Get(ctx, slotKey)
	if err != nil {
		if err != kvstore.ErrNotFound {
			m.logger.Debug("cart count mirror unreadable", zap.Error(err))
		}
		return 0
	}

	count, err := strconv.Atoi(string(raw))
	if err != nil || count < 0 {
		m.logger.Debug("cart count mirror holds invalid value", zap.ByteString("value", raw))
		return 0
	}
	return count
}

// Store persists count. Failures are logged and swallowed; the mirror
// is advisory and must never fail a cart operation.
func (m *Mirror) Store(ctx context.Context, count int) {
	if err := m.store.Set(ctx, slotKey, []byte(strconv.Itoa(count))); err != nil {
		m.logger.Debug("cart count mirror write failed", zap.Int("count", count), zap.Error(err))
	}
}
