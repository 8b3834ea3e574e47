package service

import (
	"context"
	"time"

	"inventory-backend/internal/domains/item/model"
	"inventory-backend/internal/infrastructure/storage"
)

// AssetStore is the blob store holding item photos.
// *storage.MinIOStorage satisfies it; tests substitute a fake.
type AssetStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
	ListKeys(ctx context.Context, prefix string) ([]storage.ObjectInfo, error)
}

// ServiceInterface orchestrates items and their photos across the two
// stores. Orderings are chosen so that any partial failure leaves an
// orphaned object at worst, never a dangling photo reference.
type ServiceInterface interface {
	CreateItem(ctx context.Context, req model.CreateItemRequest, photo *model.Photo) (*model.ItemResponse, error)
	GetItem(ctx context.Context, id int64) (*model.ItemResponse, error)
	ListItems(ctx context.Context) ([]*model.ItemResponse, error)
	UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.ItemResponse, error)
	DeleteItem(ctx context.Context, id int64) error
	SearchItem(ctx context.Context, id int64, includePhoto bool) (*model.SearchItemResponse, error)

	GetPhoto(ctx context.Context, id int64) (*model.Photo, error)
	ReplacePhoto(ctx context.Context, id int64, photo model.Photo) (*model.ItemResponse, error)

	SweepOrphans(ctx context.Context, grace time.Duration) (int, error)
}
