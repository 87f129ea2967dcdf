package menu

import (
	"context"

	"github.com/go-faster/errors"
)

// LoadOrSeed fetches the menu from catalog. When the catalog answers with an
// empty menu it is seeded once and fetched again; the second answer is final
// even if it is still empty.
func LoadOrSeed(ctx context.Context, catalog Catalog) ([]Item, error) {
	items, err := catalog.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list menu")
	}
	if len(items) > 0 {
		return items, nil
	}

	if err := catalog.Seed(ctx); err != nil {
		return nil, errors.Wrap(err, "seed menu")
	}

	items, err = catalog.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list seeded menu")
	}
	return items, nil
}
