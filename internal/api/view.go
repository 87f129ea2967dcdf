package api

import (
	"net/http"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/bluebite-kiosk/internal/domain/cart"
	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
	"github.com/xenking/bluebite-kiosk/internal/domain/session"
	"github.com/xenking/bluebite-kiosk/pkg/money"
)

// writeView writes the JSON rendering of a session state.
func writeView(w http.ResponseWriter, code int, id string, st session.State) {
	e := jx.GetEncoder()
	defer jx.PutEncoder(e)

	encodeView(e, id, st)
	writeJSON(w, code, e.Bytes())
}

// encodeView renders what a kiosk screen shows: the category tabs, the
// filtered item grid, the cart panel and the status line.
func encodeView(e *jx.Encoder, id string, st session.State) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(id) })
		e.Field("status", func(e *jx.Encoder) { e.Str(string(st.Status)) })
		e.Field("message", func(e *jx.Encoder) { e.Str(st.Message) })
		e.Field("checking_out", func(e *jx.Encoder) { e.Bool(st.CheckingOut) })
		e.Field("category", func(e *jx.Encoder) { e.Str(st.Category) })
		e.Field("tabs", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, t := range st.Tabs() {
					e.Str(t)
				}
			})
		})
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, it := range st.Visible() {
					encodeItem(e, it)
				}
			})
		})
		e.Field("cart", func(e *jx.Encoder) { encodeCart(e, st) })
		if st.LastOrder != nil {
			e.Field("last_order", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("id", func(e *jx.Encoder) { e.Str(st.LastOrder.ID) })
					encodeAmount(e, "total", st.LastOrder.Total)
				})
			})
		}
	})
}

func encodeItem(e *jx.Encoder, it menu.Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(it.ID()) })
		e.Field("name", func(e *jx.Encoder) { e.Str(it.Name) })
		e.Field("category", func(e *jx.Encoder) { e.Str(it.Category) })
		encodeAmount(e, "price", it.Price)
		e.Field("description", func(e *jx.Encoder) { e.Str(it.Description) })
		e.Field("image_url", func(e *jx.Encoder) { e.Str(it.ImageURL) })
	})
}

func encodeCart(e *jx.Encoder, st session.State) {
	lines := st.Cart.Lines()
	totals := st.Totals()

	e.Obj(func(e *jx.Encoder) {
		e.Field("lines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range lines {
					encodeLine(e, l)
				}
			})
		})
		e.Field("count", func(e *jx.Encoder) { e.Int(st.Cart.Quantity()) })
		encodeAmount(e, "subtotal", totals.Subtotal)
		encodeAmount(e, "tax", totals.Tax)
		encodeAmount(e, "total", totals.Total)
	})
}

func encodeLine(e *jx.Encoder, l cart.Line) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("menu_item_id", func(e *jx.Encoder) { e.Str(l.MenuItemID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(l.Name) })
		encodeAmount(e, "unit_price", l.UnitPrice)
		e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
		encodeAmount(e, "amount", l.Amount())
	})
}

// encodeAmount writes name as a JSON number and name_display as the
// formatted dollar string.
func encodeAmount(e *jx.Encoder, name string, v decimal.Decimal) {
	e.Field(name, func(e *jx.Encoder) { e.Num(jx.Num(v.String())) })
	e.Field(name+"_display", func(e *jx.Encoder) { e.Str(money.FormatUSD(v)) })
}
