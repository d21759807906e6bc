package vendors

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("vendor not found")
	ErrItemNotFound = errors.New("vendor item not found")
)

type Vendor struct {
	ID   int64
	Name string
}

// Item is a catalogue entry. Item names are unique across vendors; one
// item may be linked to many vendors.
type Item struct {
	ID   int64
	Name string
}

type Repository interface {
	List(ctx context.Context) ([]Vendor, error)
	Get(ctx context.Context, id int64) (Vendor, error)
	Create(ctx context.Context, name string) (Vendor, error)
	Delete(ctx context.Context, id int64) error

	// ListItems returns an empty slice for a vendor with no items or an
	// unknown vendor.
	ListItems(ctx context.Context, vendorID int64) ([]Item, error)
	// AddItem reuses an existing item with the same name and links it.
	// Linking an already linked item is not an error.
	AddItem(ctx context.Context, vendorID int64, itemName string) (Item, error)
	RemoveItem(ctx context.Context, vendorID, itemID int64) error
}
