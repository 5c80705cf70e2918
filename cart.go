package shop

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/kvstore/memstore"
	"github.com/JvrTrvjn/mobile-shop-app/internal/mirror"
	"github.com/JvrTrvjn/mobile-shop-app/internal/stats"
)

var (
	// ErrNoBackend indicates no cart backend was provided.
	ErrNoBackend = errors.New("shop: no cart backend provided")

	// ErrInvalidSelection indicates a color or storage code that is not
	// a valid integer.
	ErrInvalidSelection = errors.New("shop: invalid color or storage selection")

	// ErrInvalidQuantity indicates a non-positive add quantity or a
	// negative update quantity.
	ErrInvalidQuantity = errors.New("shop: invalid quantity")

	// ErrIndexOutOfRange indicates a line-item index outside the cart.
	ErrIndexOutOfRange = errors.New("shop: cart index out of range")
)

// CartBackend registers cart additions server-side and returns the
// authoritative cart count. *Catalog implements it.
type CartBackend interface {
	AddProductToCart(ctx context.Context, req AddToCartRequest) (*CartCount, error)
}

// Compile-time check that Catalog implements CartBackend.
var _ CartBackend = (*Catalog)(nil)

// Item is one cart line: a product plus the selected variant and a
// quantity. Lines are identified by (product id, color code, storage
// code); adding the same combination again merges into one line.
type Item struct {
	Product         Product
	Quantity        int
	SelectedColor   Variant
	SelectedStorage Variant
}

// State is a cart snapshot. Count tracks the server-reconciled badge
// count and may exceed the sum of item quantities when the server
// reports a higher figure; Total is always the sum of line prices.
type State struct {
	Items []Item
	Count int
	Total float64
}

// clone returns a deep-enough copy: Items is a fresh slice so callers
// can hold snapshots while the cart keeps mutating.
func (s State) clone() State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	return s
}

type actionKind int

const (
	actionAdd actionKind = iota
	actionRemove
	actionUpdateQuantity
	actionClear
	actionSyncCount
)

type action struct {
	kind     actionKind
	item     Item
	index    int
	quantity int
	count    int
}

// reduce applies one action to a state snapshot and returns the next
// state. It is pure: the input state is never mutated.
func reduce(s State, a action) State {
	next := s.clone()

	switch a.kind {
	case actionAdd:
		merged := false
		for i, item := range next.Items {
			if sameLine(item, a.item) {
				next.Items[i].Quantity += a.item.Quantity
				merged = true
				break
			}
		}
		if !merged {
			next.Items = append(next.Items, a.item)
		}
		next.Count += a.item.Quantity
		next.Total += a.item.Product.Price * float64(a.item.Quantity)

	case actionRemove:
		removed := next.Items[a.index]
		next.Items = append(next.Items[:a.index], next.Items[a.index+1:]...)
		next.Count -= removed.Quantity
		next.Total -= removed.Product.Price * float64(removed.Quantity)

	case actionUpdateQuantity:
		item := next.Items[a.index]
		delta := a.quantity - item.Quantity
		next.Items[a.index].Quantity = a.quantity
		next.Count += delta
		next.Total += item.Product.Price * float64(delta)

	case actionClear:
		next.Items = nil
		next.Count = 0
		next.Total = 0

	case actionSyncCount:
		next.Count = a.count
	}

	return next
}

func sameLine(a, b Item) bool {
	return a.Product.ID == b.Product.ID &&
		a.SelectedColor.Code == b.SelectedColor.Code &&
		a.SelectedStorage.Code == b.SelectedStorage.Code
}

// Cart holds the local cart state and reconciles its count with the
// server through a CartBackend. State changes go through a pure reducer
// under a mutex, so a Cart is safe for concurrent use.
type Cart struct {
	backend CartBackend
	mirror  *mirror.Mirror
	stats   stats.Collector
	logger  *zap.Logger

	mu    sync.Mutex
	state State

	subMu sync.Mutex
	subs  []func(State)
}

// CartOption configures a Cart.
type CartOption func(*cartOptions)

type cartOptions struct {
	store  kvstore.Store
	stats  stats.Collector
	logger *zap.Logger
}

// WithCartStore sets the key-value store persisting the cart count
// across restarts. Point it at the catalog's store to share one
// durable directory. If not set, an in-memory store is used.
func WithCartStore(s kvstore.Store) CartOption {
	return func(o *cartOptions) {
		o.store = s
	}
}

// WithCartStats sets the stats collector.
// If not set, a no-op collector is used.
func WithCartStats(c stats.Collector) CartOption {
	return func(o *cartOptions) {
		o.stats = c
	}
}

// WithCartLogger sets the logger.
// If not set, a no-op logger is used.
func WithCartLogger(l *zap.Logger) CartOption {
	return func(o *cartOptions) {
		o.logger = l
	}
}

// NewCart creates a cart over the given backend. The count is seeded
// from the persisted mirror so a fresh process shows a plausible badge
// before any network call; seeding fires no change notifications.
func NewCart(backend CartBackend, opts ...CartOption) (*Cart, error) {
	if backend == nil {
		return nil, ErrNoBackend
	}

	cfg := cartOptions{
		store:  memstore.New(),
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cart{
		backend: backend,
		mirror:  mirror.New(cfg.store, mirror.WithLogger(cfg.logger.Named("mirror"))),
		stats:   cfg.stats,
		logger:  cfg.logger,
	}
	c.state.Count = c.mirror.Load(context.Background())
	c.publishGauges(c.state)

	return c, nil
}

// AddToCart adds quantity units of p with the given color and storage
// selections and returns the reconciled cart count.
//
// The item lands in the local state before the server round-trip, so
// the UI reacts instantly. On success the count becomes the larger of
// the server's figure and the local expectation, so the badge never
// moves backwards. On failure the optimistic item stays and the error
// is returned; there is no rollback.
func (c *Cart) AddToCart(ctx context.Context, p Product, quantity int, color, storage string) (int, error) {
	if quantity < 1 {
		return c.Count(), ErrInvalidQuantity
	}

	colorCode, err := parseCode(color)
	if err != nil {
		return c.Count(), ErrInvalidSelection
	}
	storageCode, err := parseCode(storage)
	if err != nil {
		return c.Count(), ErrInvalidSelection
	}

	item := Item{
		Product:         p,
		Quantity:        quantity,
		SelectedColor:   findVariant(p.Colors, colorCode),
		SelectedStorage: findVariant(p.Storages, storageCode),
	}

	countBefore := c.dispatch(ctx, action{kind: actionAdd, item: item}).Count - quantity

	resp, err := c.backend.AddProductToCart(ctx, AddToCartRequest{
		ID:          p.ID,
		ColorCode:   colorCode,
		StorageCode: storageCode,
	})
	if err != nil {
		c.stats.IncCounter(stats.MetricCartAddFailures, 1)
		c.logger.Warn("cart add not confirmed by server",
			zap.String("id", p.ID), zap.Error(err))
		return c.Count(), err
	}

	final := countBefore + quantity
	if resp.Count > final {
		final = resp.Count
	}
	state := c.dispatch(ctx, action{kind: actionSyncCount, count: final})

	c.stats.IncCounter(stats.MetricCartAdds, 1)
	c.stats.IncCounter(stats.MetricCartSyncs, 1)
	return state.Count, nil
}

// RemoveFromCart removes the line item at index.
func (c *Cart) RemoveFromCart(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.state.Items) {
		c.mu.Unlock()
		return ErrIndexOutOfRange
	}
	state := c.apply(ctx, action{kind: actionRemove, index: index})
	c.mu.Unlock()

	c.notify(state)
	return nil
}

// UpdateQuantity sets the quantity of the line item at index.
// A quantity of zero removes the line.
func (c *Cart) UpdateQuantity(ctx context.Context, index, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	if index < 0 || index >= len(c.state.Items) {
		c.mu.Unlock()
		return ErrIndexOutOfRange
	}
	var state State
	if quantity == 0 {
		state = c.apply(ctx, action{kind: actionRemove, index: index})
	} else {
		state = c.apply(ctx, action{kind: actionUpdateQuantity, index: index, quantity: quantity})
	}
	c.mu.Unlock()

	c.notify(state)
	return nil
}

// Clear empties the cart and resets the persisted count.
func (c *Cart) Clear(ctx context.Context) {
	c.dispatch(ctx, action{kind: actionClear})
}

// State returns a snapshot of the cart.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Count returns the current badge count.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Count
}

// OnChange registers fn to be called with a state snapshot after every
// cart mutation. Callbacks run synchronously on the mutating goroutine.
func (c *Cart) OnChange(fn func(State)) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	c.subs = append(c.subs, fn)
}

// dispatch applies one action under the lock, then notifies.
func (c *Cart) dispatch(ctx context.Context, a action) State {
	c.mu.Lock()
	state := c.apply(ctx, a)
	c.mu.Unlock()

	c.notify(state)
	return state
}

// apply runs the reducer and persists the new count. Callers hold mu.
func (c *Cart) apply(ctx context.Context, a action) State {
	c.state = reduce(c.state, a)
	c.mirror.Store(ctx, c.state.Count)
	c.publishGauges(c.state)
	return c.state.clone()
}

func (c *Cart) publishGauges(s State) {
	c.stats.SetGauge(stats.MetricCartCount, int64(s.Count))
	c.stats.SetGauge(stats.MetricCartItems, int64(len(s.Items)))
}

// notify runs the registered callbacks outside the state lock, so a
// callback may call back into the cart.
func (c *Cart) notify(state State) {
	c.subMu.Lock()
	subs := make([]func(State), len(c.subs))
	copy(subs, c.subs)
	c.subMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}

// parseCode parses a selection code. Codes arrive as strings from form
// inputs; blank input is a missing selection, not code zero.
func parseCode(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidSelection
	}
	return strconv.Atoi(s)
}

// findVariant resolves a code against the product's variant list.
// Unknown codes still produce a line with the bare code so the server
// stays the authority on what is orderable.
func findVariant(vs []Variant, code int) Variant {
	for _, v := range vs {
		if v.Code == code {
			return v
		}
	}
	return Variant{Code: code}
}
