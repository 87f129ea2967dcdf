package menu

import (
	"context"

	"github.com/shopspring/decimal"
)

// AllCategories is the category filter value that disables filtering.
const AllCategories = "All"

// Item is a sellable catalog entry as returned by the menu catalog.
type Item struct {
	// ObjectID is the backend's storage id ("_id"), when exposed.
	ObjectID string
	// ExternalID is the public id ("id"), when exposed.
	ExternalID  string
	Name        string
	Category    string
	Price       decimal.Decimal
	Description string
	ImageURL    string
}

// ID returns the canonical identifier of the item. See ResolveID.
func (i Item) ID() string {
	return ResolveID(i)
}

// ResolveID picks the identifier used for cart identity: the first non-empty
// of ObjectID, ExternalID and Name. Every identity check goes through here.
func ResolveID(i Item) string {
	switch {
	case i.ObjectID != "":
		return i.ObjectID
	case i.ExternalID != "":
		return i.ExternalID
	default:
		return i.Name
	}
}

// Catalog is the external menu catalog service.
type Catalog interface {
	// List returns the current menu. An empty slice means the catalog has not
	// been seeded yet.
	List(ctx context.Context) ([]Item, error)
	// Seed populates an empty catalog with default data.
	Seed(ctx context.Context) error
}
