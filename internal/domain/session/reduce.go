package session

import (
	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
	"github.com/xenking/bluebite-kiosk/internal/domain/order"
	"github.com/xenking/bluebite-kiosk/pkg/money"
)

// Action is a state transition request handled by Reduce.
type Action interface {
	action()
}

// SelectCategory switches the menu filter. Categories not on the menu are
// ignored.
type SelectCategory struct{ Category string }

// AddItem puts one unit of Item into the cart.
type AddItem struct{ Item menu.Item }

// IncrementLine adds one unit to a cart line.
type IncrementLine struct{ ID string }

// DecrementLine removes one unit from a cart line.
type DecrementLine struct{ ID string }

// LoadStarted marks the beginning of a menu fetch.
type LoadStarted struct{}

// LoadSucceeded installs a freshly fetched menu.
type LoadSucceeded struct{ Items []menu.Item }

// LoadFailed records a failed menu fetch.
type LoadFailed struct{ Err error }

// CheckoutStarted marks an order submission as in flight.
type CheckoutStarted struct{}

// CheckoutSucceeded records an accepted order and empties the cart.
type CheckoutSucceeded struct{ Confirmation order.Confirmation }

// CheckoutFailed records a rejected or undeliverable order.
type CheckoutFailed struct{ Err error }

func (SelectCategory) action()    {}
func (AddItem) action()           {}
func (IncrementLine) action()     {}
func (DecrementLine) action()     {}
func (LoadStarted) action()       {}
func (LoadSucceeded) action()     {}
func (LoadFailed) action()        {}
func (CheckoutStarted) action()   {}
func (CheckoutSucceeded) action() {}
func (CheckoutFailed) action()    {}

// Reduce returns the state that follows s after a. It is pure: s is left
// untouched and no I/O happens here.
func Reduce(s State, a Action) State {
	s = s.clone()

	switch a := a.(type) {
	case SelectCategory:
		if menu.HasCategory(s.Menu, a.Category) {
			s.Category = a.Category
		}
	case AddItem:
		s.Cart.Add(a.Item)
	case IncrementLine:
		s.Cart.Increment(a.ID)
	case DecrementLine:
		s.Cart.Decrement(a.ID)
	case LoadStarted:
		s.Status = StatusLoading
	case LoadSucceeded:
		s.Status = StatusLoaded
		s.Menu = a.Items
		if !menu.HasCategory(s.Menu, s.Category) {
			s.Category = menu.AllCategories
		}
	case LoadFailed:
		s.Status = StatusError
		s.Menu = nil
		s.Category = menu.AllCategories
		s.Message = msgLoadFailed + a.Err.Error()
	case CheckoutStarted:
		s.CheckingOut = true
		s.Message = msgPlacingOrder
	case CheckoutSucceeded:
		conf := a.Confirmation
		s.CheckingOut = false
		s.Cart.Clear()
		s.LastOrder = &conf
		s.Message = confirmationMessage(conf)
	case CheckoutFailed:
		s.CheckingOut = false
		s.Message = msgOrderFailed + a.Err.Error()
	}

	return s
}

func confirmationMessage(c order.Confirmation) string {
	return "Order placed! Total " + money.FormatUSD(c.Total) + ". Order ID: " + c.ID
}
