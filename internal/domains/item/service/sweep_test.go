package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-backend/internal/domains/item/model"
)

func TestSweepOrphans_RemovesOnlyOldUnreferencedObjects(t *testing.T) {
	svc, _, assets := newTestService()
	ctx := context.Background()

	// Referenced photo: must survive regardless of age.
	item, err := svc.CreateItem(ctx, model.CreateItemRequest{Name: "Camera"},
		&model.Photo{Data: []byte{1}, ContentType: "image/png"})
	require.NoError(t, err)

	photo, err := svc.GetPhoto(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, photo)

	// Old orphan: swept.
	require.NoError(t, assets.Upload(ctx, "items/orphan-old", []byte{2}, "image/png"))
	assets.setModTime("items/orphan-old", time.Now().Add(-2*time.Hour))

	// Fresh orphan: inside the grace window, could be an in-flight
	// create, must survive this run.
	require.NoError(t, assets.Upload(ctx, "items/orphan-fresh", []byte{3}, "image/png"))

	// Object outside the photo prefix: not ours to touch.
	require.NoError(t, assets.Upload(ctx, "other/file", []byte{4}, "application/octet-stream"))

	removed, err := svc.SweepOrphans(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 3, assets.count())

	// The referenced photo is still retrievable.
	_, err = svc.GetPhoto(ctx, item.ID)
	assert.NoError(t, err)
}

func TestSweepOrphans_ReclaimsLeftoverOfFailedReplace(t *testing.T) {
	svc, repo, assets := newTestService()
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, model.CreateItemRequest{Name: "Camera"},
		&model.Photo{Data: []byte{0xFF, 0xD8}, ContentType: "image/jpeg"})
	require.NoError(t, err)

	// Replace whose swap and rollback both failed leaves one orphan.
	repo.failSetPhotoKey = assert.AnError
	assets.failDelete = assert.AnError
	_, err = svc.ReplacePhoto(ctx, item.ID, model.Photo{Data: []byte{0x89}, ContentType: "image/png"})
	require.Error(t, err)
	repo.failSetPhotoKey = nil
	assets.failDelete = nil
	require.Equal(t, 2, assets.count())

	// Age everything past the grace window; only the orphan goes.
	for key := range assets.objects {
		assets.setModTime(key, time.Now().Add(-2*time.Hour))
	}

	removed, err := svc.SweepOrphans(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, assets.count())

	photo, err := svc.GetPhoto(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, photo.Data)
}
