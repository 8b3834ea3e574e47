package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"inventory-backend/internal/domains/item/model"
)

// SweepOrphans deletes photo objects no item references anymore.
// Orphans are the deliberate failure mode of every photo operation, so
// this is what keeps them from accumulating forever.
//
// Objects younger than the grace window are skipped: a create that has
// uploaded its photo but not yet inserted the row looks like an orphan
// until the insert lands. Listing the bucket before reading the live
// key set keeps the race one-sided for the same reason.
func (s *itemService) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	objects, err := s.assets.ListKeys(ctx, photoKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("%w: list objects: %s", model.ErrStoreUnavailable, err)
	}

	live, err := s.repo.LivePhotoKeys(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-grace)
	removed := 0

	for _, obj := range objects {
		if _, ok := live[obj.Key]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}

		if err := s.assets.Delete(ctx, obj.Key); err != nil {
			log.Error().
				Err(err).
				Str("photo_key", obj.Key).
				Msg("Failed to delete orphaned photo")
			continue
		}

		log.Info().
			Str("photo_key", obj.Key).
			Time("last_modified", obj.LastModified).
			Msg("Deleted orphaned photo")
		removed++
	}

	return removed, nil
}
