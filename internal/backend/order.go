package backend

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/xenking/bluebite-kiosk/internal/domain/order"
)

// PlaceOrder submits req to the order service and returns its confirmation.
func (c *Client) PlaceOrder(ctx context.Context, req order.Request) (*order.Confirmation, error) {
	resp, err := c.do(ctx, http.MethodPost, pathOrders, encodeOrder(req))
	if err != nil {
		return nil, err
	}
	data, err := readOK(resp, http.MethodPost, pathOrders)
	if err != nil {
		return nil, err
	}

	conf, err := decodeConfirmation(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode order")
	}
	return conf, nil
}
