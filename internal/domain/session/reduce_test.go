package session

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
	"github.com/xenking/bluebite-kiosk/internal/domain/order"
)

func testMenu() []menu.Item {
	return []menu.Item{
		{ExternalID: "1", Name: "Burger", Category: "Food", Price: decimal.RequireFromString("5.00")},
		{ExternalID: "2", Name: "Cola", Category: "Drinks", Price: decimal.RequireFromString("3.50")},
		{ExternalID: "3", Name: "Pie", Category: "Dessert", Price: decimal.RequireFromString("4.25")},
	}
}

func loadedState() State {
	return Reduce(NewState(), LoadSucceeded{Items: testMenu()})
}

func TestNewState(t *testing.T) {
	s := NewState()
	assert.Equal(t, StatusLoading, s.Status)
	assert.Equal(t, menu.AllCategories, s.Category)
	assert.True(t, s.Cart.IsEmpty())
	assert.Empty(t, s.Message)
	assert.False(t, s.CheckingOut)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	s := loadedState()
	s = Reduce(s, AddItem{Item: testMenu()[0]})

	next := Reduce(s, AddItem{Item: testMenu()[0]})
	next = Reduce(next, DecrementLine{ID: "1"})
	next = Reduce(next, DecrementLine{ID: "1"})

	assert.True(t, next.Cart.IsEmpty())
	require.Equal(t, 1, s.Cart.Len())
	line, _ := s.Cart.Line("1")
	assert.Equal(t, 1, line.Quantity)
}

func TestReduce_Load(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := loadedState()
		assert.Equal(t, StatusLoaded, s.Status)
		assert.Len(t, s.Menu, 3)
		assert.Equal(t, []string{"All", "Food", "Drinks", "Dessert"}, s.Tabs())
		assert.Len(t, s.Visible(), 3)
	})

	t.Run("failure empties the menu", func(t *testing.T) {
		s := Reduce(loadedState(), LoadFailed{Err: errors.New("failed to load menu")})
		assert.Equal(t, StatusError, s.Status)
		assert.Empty(t, s.Menu)
		assert.Equal(t, "Could not load menu: failed to load menu", s.Message)
	})

	t.Run("reload resets a vanished category", func(t *testing.T) {
		s := Reduce(loadedState(), SelectCategory{Category: "Drinks"})
		s = Reduce(s, LoadStarted{})
		assert.Equal(t, StatusLoading, s.Status)

		s = Reduce(s, LoadSucceeded{Items: testMenu()[:1]})
		assert.Equal(t, menu.AllCategories, s.Category)
	})

	t.Run("reload keeps a surviving category", func(t *testing.T) {
		s := Reduce(loadedState(), SelectCategory{Category: "Food"})
		s = Reduce(s, LoadSucceeded{Items: testMenu()})
		assert.Equal(t, "Food", s.Category)
	})
}

func TestReduce_SelectCategory(t *testing.T) {
	s := Reduce(loadedState(), SelectCategory{Category: "Drinks"})
	assert.Equal(t, "Drinks", s.Category)
	require.Len(t, s.Visible(), 1)
	assert.Equal(t, "Cola", s.Visible()[0].Name)

	s = Reduce(s, SelectCategory{Category: "Breakfast"})
	assert.Equal(t, "Drinks", s.Category, "unknown category is ignored")

	s = Reduce(s, SelectCategory{Category: menu.AllCategories})
	assert.Len(t, s.Visible(), 3)
}

func TestReduce_CartActions(t *testing.T) {
	items := testMenu()
	s := loadedState()
	s = Reduce(s, AddItem{Item: items[0]})
	s = Reduce(s, AddItem{Item: items[0]})
	s = Reduce(s, AddItem{Item: items[1]})

	totals := s.Totals()
	assert.True(t, decimal.RequireFromString("13.50").Equal(totals.Subtotal))
	assert.True(t, decimal.RequireFromString("1.08").Equal(totals.Tax))
	assert.True(t, decimal.RequireFromString("14.58").Equal(totals.Total))

	s = Reduce(s, IncrementLine{ID: "2"})
	line, _ := s.Cart.Line("2")
	assert.Equal(t, 2, line.Quantity)

	s = Reduce(s, IncrementLine{ID: "nope"})
	s = Reduce(s, DecrementLine{ID: "nope"})
	assert.Equal(t, 2, s.Cart.Len())
}

func TestReduce_Checkout(t *testing.T) {
	s := Reduce(loadedState(), AddItem{Item: testMenu()[0]})

	started := Reduce(s, CheckoutStarted{})
	assert.True(t, started.CheckingOut)
	assert.Equal(t, "Placing your order...", started.Message)

	t.Run("success clears the cart", func(t *testing.T) {
		done := Reduce(started, CheckoutSucceeded{Confirmation: order.Confirmation{
			ID:    "ord-42",
			Total: decimal.RequireFromString("5.40"),
		}})
		assert.False(t, done.CheckingOut)
		assert.True(t, done.Cart.IsEmpty())
		assert.Equal(t, "Order placed! Total $5.40. Order ID: ord-42", done.Message)
		require.NotNil(t, done.LastOrder)
		assert.Equal(t, "ord-42", done.LastOrder.ID)
	})

	t.Run("failure keeps the cart", func(t *testing.T) {
		done := Reduce(started, CheckoutFailed{Err: errors.New("checkout failed")})
		assert.False(t, done.CheckingOut)
		assert.Equal(t, 1, done.Cart.Len())
		assert.Equal(t, "Could not place order: checkout failed", done.Message)
		assert.Nil(t, done.LastOrder)
	})
}
