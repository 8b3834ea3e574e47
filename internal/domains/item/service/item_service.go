package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/domains/item/model"
	"inventory-backend/internal/domains/item/repository"
)

// photoKeyPrefix namespaces photo objects in the bucket. The sweep job
// only looks under this prefix.
const photoKeyPrefix = "items/"

type itemService struct {
	repo   repository.Repository
	assets AssetStore
}

func NewService(repo repository.Repository, assets AssetStore) ServiceInterface {
	return &itemService{
		repo:   repo,
		assets: assets,
	}
}

// newPhotoKey mints an opaque object key. Keys are never derived from
// item fields, so a replacement always writes a fresh object and
// readers never observe a half-written photo.
func newPhotoKey() string {
	return photoKeyPrefix + uuid.NewString()
}

// CreateItem stores the photo first (when present), then inserts the
// row pointing at it. If the insert fails the uploaded object is
// removed best-effort; a failed removal leaves an orphan for the sweep.
// The reverse order could leave a row referencing a missing object,
// which every reader would see as broken.
func (s *itemService) CreateItem(ctx context.Context, req model.CreateItemRequest, photo *model.Photo) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var photoKey *string
	if photo != nil {
		key := newPhotoKey()
		if err := s.assets.Upload(ctx, key, photo.Data, photo.ContentType); err != nil {
			return nil, fmt.Errorf("%w: upload photo: %s", model.ErrStoreUnavailable, err)
		}
		photoKey = &key
	}

	item, err := s.repo.Create(ctx, req.Name, req.Description, photoKey)
	if err != nil {
		if photoKey != nil {
			if delErr := s.assets.Delete(ctx, *photoKey); delErr != nil {
				log.Error().
					Err(delErr).
					Str("photo_key", *photoKey).
					Msg("Failed to roll back uploaded photo, orphan left for sweep")
			}
		}
		return nil, err
	}

	return model.NewItemResponse(item), nil
}

func (s *itemService) GetItem(ctx context.Context, id int64) (*model.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewItemResponse(item), nil
}

func (s *itemService) ListItems(ctx context.Context) ([]*model.ItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*model.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, model.NewItemResponse(item))
	}
	return responses, nil
}

// UpdateItem touches only text fields; the photo reference is owned by
// ReplacePhoto and never changes here.
func (s *itemService) UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.ItemResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateFields(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	return model.NewItemResponse(item), nil
}

// DeleteItem removes the row first, then reclaims the photo. Once the
// row is gone no reader can reach the reference, so a failed or
// interrupted reclaim leaves an orphaned object at worst.
func (s *itemService) DeleteItem(ctx context.Context, id int64) error {
	prevKey, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if prevKey != nil {
		if delErr := s.assets.Delete(ctx, *prevKey); delErr != nil {
			log.Error().
				Err(delErr).
				Int64("item_id", id).
				Str("photo_key", *prevKey).
				Msg("Failed to reclaim photo of deleted item, orphan left for sweep")
		}
	}

	return nil
}

// SearchItem is a read-only by-id projection. When the caller asks for
// the photo hint and one exists, the response carries the retrieval URL
// rather than the bytes.
func (s *itemService) SearchItem(ctx context.Context, id int64, includePhoto bool) (*model.SearchItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &model.SearchItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		HasPhoto:    item.HasPhoto(),
	}

	if includePhoto && item.HasPhoto() {
		url := model.PhotoURL(item.ID)
		resp.PhotoURL = &url
	}

	return resp, nil
}
