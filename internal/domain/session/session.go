package session

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
	"github.com/xenking/bluebite-kiosk/internal/domain/order"
)

// Sentinel errors returned by Session operations.
var (
	ErrClosed             = errors.New("session closed")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrItemNotFound       = errors.New("menu item not found")
)

// Session owns the State of one ordering session and serializes every
// transition through Reduce.
//
// The mutex is never held across calls to the catalog or the order service,
// so user actions stay responsive while a load or checkout is in flight.
// Results arriving after Close are dropped.
type Session struct {
	id      string
	catalog menu.Catalog
	orders  order.Submitter
	lg      *zap.Logger
	now     func() time.Time

	loads singleflight.Group

	mu       sync.Mutex
	state    State
	closed   bool
	lastSeen time.Time
}

// New creates a session in the loading state. Call Load to fetch the menu.
func New(id string, catalog menu.Catalog, orders order.Submitter, lg *zap.Logger) *Session {
	s := &Session{
		id:      id,
		catalog: catalog,
		orders:  orders,
		lg:      lg.With(zap.String("session_id", id)),
		now:     time.Now,
		state:   NewState(),
	}
	s.lastSeen = s.now()
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	return s.state.clone()
}

// LastSeen returns the time of the most recent operation on the session.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close tears the session down. Further operations fail with ErrClosed and
// in-flight loads or checkouts have their results discarded. Close is
// idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		s.lg.Debug("Session closed")
	}
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Load fetches the menu, seeding an empty catalog first. Concurrent calls
// share one fetch. On failure the session moves to StatusError with an empty
// menu and the error is returned.
func (s *Session) Load(ctx context.Context) error {
	_, err, _ := s.loads.Do("menu", func() (any, error) {
		return nil, s.load(ctx)
	})
	return err
}

func (s *Session) load(ctx context.Context) error {
	if err := s.dispatch(LoadStarted{}); err != nil {
		return err
	}

	items, loadErr := menu.LoadOrSeed(ctx, s.catalog)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.lg.Debug("Discarding menu load result", zap.Bool("failed", loadErr != nil))
		return ErrClosed
	}
	if loadErr != nil {
		s.apply(LoadFailed{Err: loadErr})
		s.lg.Warn("Menu load failed", zap.Error(loadErr))
		return errors.Wrap(loadErr, "load menu")
	}

	s.apply(LoadSucceeded{Items: items})
	s.lg.Info("Menu loaded",
		zap.Int("items", len(items)),
		zap.Strings("categories", menu.Categories(items)),
	)
	return nil
}

// SelectCategory sets the active category filter. The category must be
// menu.AllCategories or present on the current menu.
func (s *Session) SelectCategory(category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	if !menu.HasCategory(s.state.Menu, category) {
		return ErrUnknownCategory
	}
	s.apply(SelectCategory{Category: category})
	return nil
}

// Add puts one unit of the menu item with the given identifier into the cart.
func (s *Session) Add(itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	item, ok := menu.Find(s.state.Menu, itemID)
	if !ok {
		return ErrItemNotFound
	}
	s.apply(AddItem{Item: item})
	return nil
}

// Increment adds one unit to the cart line with the given identifier.
// Unknown identifiers are ignored.
func (s *Session) Increment(itemID string) error {
	return s.dispatch(IncrementLine{ID: itemID})
}

// Decrement removes one unit from the cart line with the given identifier,
// removing the line at quantity 1. Unknown identifiers are ignored.
func (s *Session) Decrement(itemID string) error {
	return s.dispatch(DecrementLine{ID: itemID})
}

// Checkout submits the cart as an order.
//
// An empty cart is a no-op: nothing is sent and (nil, nil) is returned. A
// second Checkout while one is in flight fails with ErrCheckoutInProgress.
// On success the cart is cleared; on failure it is left as it was and the
// error is returned.
func (s *Session) Checkout(ctx context.Context) (*order.Confirmation, error) {
	s.mu.Lock()
	if err := s.ready(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.state.CheckingOut {
		s.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	if s.state.Cart.IsEmpty() {
		s.mu.Unlock()
		return nil, nil
	}
	req := order.NewRequest(s.state.Cart)
	s.apply(CheckoutStarted{})
	s.mu.Unlock()

	conf, submitErr := s.orders.PlaceOrder(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.lg.Debug("Discarding checkout result", zap.Bool("failed", submitErr != nil))
		return nil, ErrClosed
	}
	if submitErr != nil {
		s.apply(CheckoutFailed{Err: submitErr})
		s.lg.Warn("Checkout failed", zap.Int("lines", len(req.Items)), zap.Error(submitErr))
		return nil, errors.Wrap(submitErr, "place order")
	}

	s.apply(CheckoutSucceeded{Confirmation: *conf})
	s.lg.Info("Order placed",
		zap.String("order_id", conf.ID),
		zap.String("total", conf.Total.StringFixed(2)),
		zap.Int("lines", len(req.Items)),
	)
	return conf, nil
}

// dispatch applies a under the lock.
func (s *Session) dispatch(a Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return err
	}
	s.apply(a)
	return nil
}

// ready records activity and rejects closed sessions. Must hold s.mu.
func (s *Session) ready() error {
	if s.closed {
		return ErrClosed
	}
	s.touch()
	return nil
}

// apply runs the reducer. Must hold s.mu.
func (s *Session) apply(a Action) {
	s.state = Reduce(s.state, a)
}

// touch records activity. Must hold s.mu.
func (s *Session) touch() {
	s.lastSeen = s.now()
}
