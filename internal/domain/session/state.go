// Package session implements a single ordering session: the menu, category
// filter, cart and status message of one kiosk user, updated through a
// reducer.
package session

import (
	"github.com/xenking/bluebite-kiosk/internal/domain/cart"
	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
	"github.com/xenking/bluebite-kiosk/internal/domain/order"
)

// LoadStatus is the state of the menu load flow.
type LoadStatus string

const (
	// StatusLoading means a menu fetch is in flight.
	StatusLoading LoadStatus = "loading"
	// StatusLoaded means the menu was fetched.
	StatusLoaded LoadStatus = "loaded"
	// StatusError means the last menu fetch failed; the menu is empty.
	StatusError LoadStatus = "error"
)

// User-facing messages.
const (
	msgPlacingOrder = "Placing your order..."
	msgLoadFailed   = "Could not load menu: "
	msgOrderFailed  = "Could not place order: "
)

// State is everything a session displays. It is a value: Reduce never
// modifies the State it is given.
type State struct {
	Status   LoadStatus
	Menu     []menu.Item
	Category string
	Cart     *cart.Cart
	Message  string

	// CheckingOut is set while an order submission is in flight.
	CheckingOut bool
	// LastOrder is the confirmation of the most recent accepted order.
	LastOrder *order.Confirmation
}

// NewState returns the state of a freshly opened session.
func NewState() State {
	return State{
		Status:   StatusLoading,
		Category: menu.AllCategories,
		Cart:     cart.New(),
	}
}

// Categories returns the distinct menu categories.
func (s State) Categories() []string {
	return menu.Categories(s.Menu)
}

// Tabs returns the category tabs, "All" first.
func (s State) Tabs() []string {
	return menu.Tabs(s.Menu)
}

// Visible returns the menu items under the active category.
func (s State) Visible() []menu.Item {
	return menu.Filter(s.Menu, s.Category)
}

// Totals returns the cart's derived totals.
func (s State) Totals() cart.Totals {
	return s.Cart.Totals()
}

// clone copies the parts of s that the reducer mutates in place.
func (s State) clone() State {
	s.Cart = s.Cart.Clone()
	return s
}
