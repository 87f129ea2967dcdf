package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/bluebite-kiosk/internal/domain/cart"
	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
)

func TestNewRequest(t *testing.T) {
	c := cart.New()
	burger := menu.Item{ObjectID: "b1", Name: "Burger", Price: decimal.RequireFromString("5.00")}
	c.Add(burger)
	c.Add(burger)
	c.Add(menu.Item{Name: "Fries", Price: decimal.RequireFromString("3.50")})

	req := NewRequest(c)

	assert.Equal(t, "Guest", req.Customer.Name)
	assert.False(t, req.Pickup)
	require.Len(t, req.Items, 2)
	assert.Equal(t, cart.Line{
		MenuItemID: "b1",
		Name:       "Burger",
		UnitPrice:  decimal.RequireFromString("5.00"),
		Quantity:   2,
	}, req.Items[0])
	assert.Equal(t, "Fries", req.Items[1].MenuItemID)
	assert.Equal(t, 1, req.Items[1].Quantity)
}

func TestNewRequest_DetachedFromCart(t *testing.T) {
	c := cart.New()
	c.Add(menu.Item{Name: "Fries", Price: decimal.NewFromInt(3)})

	req := NewRequest(c)
	c.Clear()

	require.Len(t, req.Items, 1)
	assert.Equal(t, "Fries", req.Items[0].Name)
}
