package backend

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/bluebite-kiosk/internal/domain/menu"
)

// List fetches the menu. An empty slice means the catalog is not seeded.
func (c *Client) List(ctx context.Context) ([]menu.Item, error) {
	resp, err := c.do(ctx, http.MethodGet, pathMenu, nil)
	if err != nil {
		return nil, err
	}
	data, err := readOK(resp, http.MethodGet, pathMenu)
	if err != nil {
		return nil, err
	}

	items, err := decodeMenu(data)
	if err != nil {
		return nil, errors.Wrap(err, "decode menu")
	}
	return items, nil
}

// Seed asks the catalog to populate itself with default data. The response
// body is ignored and so is a non-2xx status, which is only logged: the
// following List decides whether the menu is usable.
func (c *Client) Seed(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodPost, pathSeed, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zctx.From(ctx).Warn("Menu seed answered with non-success status",
			zap.Int("status", resp.StatusCode),
		)
	}
	return nil
}
