package repository

import (
	"context"

	"inventory-backend/internal/domains/item/model"
)

// Repository is the durable store of items, keyed by id.
// Every method is atomic with respect to a single row: no reader
// observes a half-written item.
type Repository interface {
	// Create inserts a new item and returns it with its assigned id
	// and creation time.
	Create(ctx context.Context, name, description string, photoKey *string) (*model.Item, error)

	// GetByID returns model.ErrItemNotFound when the id does not exist.
	GetByID(ctx context.Context, id int64) (*model.Item, error)

	// List returns all items ordered by id ascending.
	List(ctx context.Context) ([]*model.Item, error)

	// UpdateFields overwrites only the provided fields and returns the
	// updated row. Nil fields are left unchanged.
	UpdateFields(ctx context.Context, id int64, name, description *string) (*model.Item, error)

	// SetPhotoKey atomically swaps the photo reference (nil clears it)
	// and returns the previous key so the caller can reclaim the old
	// object.
	SetPhotoKey(ctx context.Context, id int64, key *string) (*string, error)

	// Delete removes the row and returns the photo key it held, if any.
	Delete(ctx context.Context, id int64) (*string, error)

	// LivePhotoKeys returns the set of photo keys referenced by any
	// item. Used by the orphan sweep.
	LivePhotoKeys(ctx context.Context) (map[string]struct{}, error)
}
