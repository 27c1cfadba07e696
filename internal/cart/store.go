// Package cart provides an injectable, observable shopping cart store.
// Totals are pushed to subscribers on every recompute; the checkout
// screen never polls.
package cart

import (
	"sync"

	"shop-checkout/internal/model"

	"github.com/rs/zerolog"
)

// Store holds the cart line items and the two running totals. All
// access is serialised by a mutex, the service-side equivalent of the
// single UI thread the original screen relied on.
type Store struct {
	mu            sync.Mutex
	items         []model.CartItem
	totalPrice    float64
	totalQuantity int
	priceSubs     []func(float64)
	quantitySubs  []func(int)
	logger        zerolog.Logger
}

// NewStore creates an empty cart store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{
		logger: logger.With().Str("component", "cart-store").Logger(),
	}
}

// SubscribeTotalPrice registers a callback invoked on every totals
// recompute. Callbacks run with the store lock held; subscribers must
// not call back into the store.
func (s *Store) SubscribeTotalPrice(fn func(float64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceSubs = append(s.priceSubs, fn)
}

// SubscribeTotalQuantity registers a callback invoked on every totals
// recompute.
func (s *Store) SubscribeTotalQuantity(fn func(int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quantitySubs = append(s.quantitySubs, fn)
}

// AddItem appends an item, merging quantity into an existing line when
// the product is already in the cart. Totals are not recomputed until
// RecomputeTotals is called.
func (s *Store) AddItem(item model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += item.Quantity
			return
		}
	}
	s.items = append(s.items, item)
}

// SetItems replaces the cart contents wholesale.
func (s *Store) SetItems(items []model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]model.CartItem(nil), items...)
}

// Items returns a copy of the current line items in order.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.CartItem(nil), s.items...)
}

// Snapshot returns a point-in-time copy of items and totals.
func (s *Store) Snapshot() model.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CartSnapshot{
		TotalPrice:    s.totalPrice,
		TotalQuantity: s.totalQuantity,
		Items:         append([]model.CartItem(nil), s.items...),
	}
}

// RecomputeTotals recalculates both running totals from the current
// items and pushes the new values to every subscriber.
func (s *Store) RecomputeTotals() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recomputeLocked()
}

// Reset clears all items and zeroes both totals, notifying subscribers.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.recomputeLocked()
	s.logger.Debug().Msg("cart reset")
}

func (s *Store) recomputeLocked() {
	var price float64
	var quantity int
	for _, item := range s.items {
		price += item.UnitPrice * float64(item.Quantity)
		quantity += item.Quantity
	}

	s.totalPrice = price
	s.totalQuantity = quantity

	for _, fn := range s.priceSubs {
		fn(price)
	}
	for _, fn := range s.quantitySubs {
		fn(quantity)
	}
}
