package backend

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
	"github.com/xenking/bluebite-kiosk/internal/domain/order"
)

// decodeMenu parses the GET /api/menu body: a JSON array of menu items.
func decodeMenu(data []byte) ([]menu.Item, error) {
	items := make([]menu.Item, 0)
	d := jx.DecodeBytes(data)
	if err := d.Arr(func(d *jx.Decoder) error {
		item, err := decodeItem(d)
		if err != nil {
			return errors.Wrapf(err, "item %d", len(items))
		}
		items = append(items, item)
		return nil
	}); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeItem(d *jx.Decoder) (menu.Item, error) {
	var item menu.Item
	err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "_id":
			item.ObjectID, err = decodeID(d)
		case "id":
			item.ExternalID, err = decodeID(d)
		case "name":
			item.Name, err = decodeString(d)
		case "category":
			item.Category, err = decodeString(d)
		case "price":
			item.Price, err = decodeDecimal(d)
		case "description":
			item.Description, err = decodeString(d)
		case "image_url":
			item.ImageURL, err = decodeString(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	return item, err
}

// decodeConfirmation parses the POST /api/orders response. Only "id" and
// "total" are used; "id" is required.
func decodeConfirmation(data []byte) (*order.Confirmation, error) {
	var (
		conf  order.Confirmation
		hasID bool
	)
	d := jx.DecodeBytes(data)
	if err := d.ObjBytes(func(d *jx.Decoder, key []byte) error {
		var err error
		switch string(key) {
		case "id", "_id":
			if hasID {
				return d.Skip()
			}
			conf.ID, err = decodeID(d)
			hasID = conf.ID != ""
		case "total":
			conf.Total, err = decodeDecimal(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if !hasID {
		return nil, errors.Wrap(ErrInvalidResponse, "missing order id")
	}
	return &conf, nil
}

// encodeOrder renders the POST /api/orders request body.
func encodeOrder(req order.Request) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("customer", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				e.Field("name", func(e *jx.Encoder) { e.Str(req.Customer.Name) })
			})
		})
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, l := range req.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("menu_item_id", func(e *jx.Encoder) { e.Str(l.MenuItemID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(l.Name) })
						e.Field("unit_price", func(e *jx.Encoder) { e.Num(jx.Num(l.UnitPrice.String())) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(l.Quantity) })
					})
				}
			})
		})
		e.Field("pickup", func(e *jx.Encoder) { e.Bool(req.Pickup) })
	})
	return e.Bytes()
}

// decodeID reads an identifier that may be a string or a number.
func decodeID(d *jx.Decoder) (string, error) {
	switch t := d.Next(); t {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return n.String(), nil
	case jx.Null:
		return "", d.Null()
	default:
		return "", errors.Errorf("unexpected %s for id", t)
	}
}

// decodeString reads a string, treating null as empty.
func decodeString(d *jx.Decoder) (string, error) {
	if d.Next() == jx.Null {
		return "", d.Null()
	}
	return d.Str()
}

// decodeDecimal reads a number or a numeric string; null is zero.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	var raw string
	switch t := d.Next(); t {
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return decimal.Zero, err
		}
		raw = n.String()
	case jx.String:
		s, err := d.Str()
		if err != nil {
			return decimal.Zero, err
		}
		raw = s
	case jx.Null:
		return decimal.Zero, d.Null()
	default:
		return decimal.Zero, errors.Errorf("unexpected %s for amount", t)
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse amount %q", raw)
	}
	return v, nil
}
