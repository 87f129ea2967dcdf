package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/bluebite-kiosk/internal/domain/cart"
)

// GuestName is the customer placeholder sent with every kiosk order.
const GuestName = "Guest"

// Customer identifies who placed the order.
type Customer struct {
	Name string
}

// Request is the order payload submitted to the order service.
type Request struct {
	Customer Customer
	Items    []cart.Line
	Pickup   bool
}

// Confirmation is the order service's answer to an accepted order.
type Confirmation struct {
	ID    string
	Total decimal.Decimal
}

// Submitter is the external order-submission service.
type Submitter interface {
	PlaceOrder(ctx context.Context, req Request) (*Confirmation, error)
}

// NewRequest builds the order payload for the current contents of c.
// Pickup is always false: the kiosk offers no way to request it.
func NewRequest(c *cart.Cart) Request {
	return Request{
		Customer: Customer{Name: GuestName},
		Items:    c.Lines(),
		Pickup:   false,
	}
}
