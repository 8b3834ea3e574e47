package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"inventory-backend/internal/domains/item/model"
	"inventory-backend/internal/infrastructure/storage"
)

// GetPhoto returns the photo bytes for an item.
// ErrItemNotFound when the item is absent; ErrPhotoNotFound when the
// item has no photo, or when its reference cannot be resolved in the
// store. The second case means an invariant was broken somewhere and is
// logged loudly, but the API error kind stays the same.
func (s *itemService) GetPhoto(ctx context.Context, id int64) (*model.Photo, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !item.HasPhoto() {
		return nil, model.ErrPhotoNotFound
	}

	data, contentType, err := s.assets.Download(ctx, *item.PhotoKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		log.Error().
			Int64("item_id", id).
			Str("photo_key", *item.PhotoKey).
			Msg("Dangling photo reference: item points at a missing object")
		return nil, model.ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: download photo: %s", model.ErrStoreUnavailable, err)
	}

	return &model.Photo{Data: data, ContentType: contentType}, nil
}

// ReplacePhoto installs a new photo for an item.
//
// Write order: upload the new object, swap the row's reference, delete
// the old object last and only after the swap committed. Each failure
// point then degrades safely: a failed upload changes nothing, a failed
// swap leaves a sweepable orphan and the record untouched, and a failed
// reclaim leaves an orphan while the record already serves the new
// photo. Concurrent replacements race on the swap; the last one wins
// and the loser's object becomes an orphan.
func (s *itemService) ReplacePhoto(ctx context.Context, id int64, photo model.Photo) (*model.ItemResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := newPhotoKey()
	if err := s.assets.Upload(ctx, key, photo.Data, photo.ContentType); err != nil {
		return nil, fmt.Errorf("%w: upload photo: %s", model.ErrStoreUnavailable, err)
	}

	prevKey, err := s.repo.SetPhotoKey(ctx, id, &key)
	if err != nil {
		if delErr := s.assets.Delete(ctx, key); delErr != nil {
			log.Error().
				Err(delErr).
				Str("photo_key", key).
				Msg("Failed to roll back uploaded photo, orphan left for sweep")
		}
		return nil, err
	}

	if prevKey != nil {
		if delErr := s.assets.Delete(ctx, *prevKey); delErr != nil {
			log.Error().
				Err(delErr).
				Int64("item_id", id).
				Str("photo_key", *prevKey).
				Msg("Failed to reclaim replaced photo, orphan left for sweep")
		}
	}

	item.PhotoKey = &key
	return model.NewItemResponse(item), nil
}
