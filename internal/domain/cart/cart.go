// Package cart holds the in-progress order of a single ordering session.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
)

// TaxRate is the fixed sales tax applied to the subtotal.
var TaxRate = decimal.RequireFromString("0.08")

// Line is a quantity-bearing entry in the cart. Name and UnitPrice are
// snapshots taken when the item was first added.
type Line struct {
	MenuItemID string
	Name       string
	UnitPrice  decimal.Decimal
	Quantity   int
}

// Amount returns UnitPrice × Quantity.
func (l Line) Amount() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Totals are the derived money values of a cart.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Cart is an ordered collection of lines, at most one per menu item id.
// Insertion order is display order. The zero value is an empty cart.
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of item into the cart. An existing line for the same
// identifier gets its quantity bumped and keeps its original name and price.
func (c *Cart) Add(item menu.Item) {
	id := menu.ResolveID(item)
	if i := c.index(id); i >= 0 {
		c.lines[i].Quantity++
		return
	}
	c.lines = append(c.lines, Line{
		MenuItemID: id,
		Name:       item.Name,
		UnitPrice:  item.Price,
		Quantity:   1,
	})
}

// Increment adds one unit to the line with the given id. Unknown ids are
// ignored.
func (c *Cart) Increment(id string) {
	if i := c.index(id); i >= 0 {
		c.lines[i].Quantity++
	}
}

// Decrement removes one unit from the line with the given id, dropping the
// line when its quantity would fall below 1. Unknown ids are ignored.
func (c *Cart) Decrement(id string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	if c.lines[i].Quantity > 1 {
		c.lines[i].Quantity--
		return
	}
	c.lines = append(c.lines[:i:i], c.lines[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Quantity returns the total number of units across all lines.
func (c *Cart) Quantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Lines returns a copy of the lines in display order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line with the given id.
func (c *Cart) Line(id string) (Line, bool) {
	if i := c.index(id); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Clone returns an independent copy of the cart.
func (c *Cart) Clone() *Cart {
	return &Cart{lines: c.Lines()}
}

// Totals computes subtotal, tax and total from the current lines.
//
// Tax and total are rounded to cents independently: tax is rounded first and
// the total is the rounded sum of the unrounded subtotal and the rounded tax.
// This can differ by a cent from rounding subtotal × 1.08 once.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.Amount())
	}
	tax := subtotal.Mul(TaxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax).Round(2),
	}
}

func (c *Cart) index(id string) int {
	for i, l := range c.lines {
		if l.MenuItemID == id {
			return i
		}
	}
	return -1
}
