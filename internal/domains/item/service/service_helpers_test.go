package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"inventory-backend/internal/domains/item/model"
	"inventory-backend/internal/infrastructure/storage"
)

// fakeRepo is an in-memory Repository with injectable faults.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*model.Item

	failCreate      error
	failSetPhotoKey error
	failDelete      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]*model.Item{}}
}

func (r *fakeRepo) Create(ctx context.Context, name, description string, photoKey *string) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate != nil {
		return nil, r.failCreate
	}

	r.nextID++
	item := &model.Item{
		ID:          r.nextID,
		Name:        name,
		Description: description,
		PhotoKey:    photoKey,
		CreatedAt:   time.Now().UTC(),
	}
	r.items[item.ID] = item

	copied := *item
	return &copied, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepo) List(ctx context.Context) ([]*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []*model.Item{}
	for id := int64(1); id <= r.nextID; id++ {
		if item, ok := r.items[id]; ok {
			copied := *item
			items = append(items, &copied)
		}
	}
	return items, nil
}

func (r *fakeRepo) UpdateFields(ctx context.Context, id int64, name, description *string) (*model.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	if name != nil {
		item.Name = *name
	}
	if description != nil {
		item.Description = *description
	}
	copied := *item
	return &copied, nil
}

func (r *fakeRepo) SetPhotoKey(ctx context.Context, id int64, key *string) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSetPhotoKey != nil {
		return nil, r.failSetPhotoKey
	}

	item, ok := r.items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	prev := item.PhotoKey
	item.PhotoKey = key
	return prev, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int64) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failDelete != nil {
		return nil, r.failDelete
	}

	item, ok := r.items[id]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	delete(r.items, id)
	return item.PhotoKey, nil
}

func (r *fakeRepo) LivePhotoKeys(ctx context.Context) (map[string]struct{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := map[string]struct{}{}
	for _, item := range r.items {
		if item.PhotoKey != nil {
			keys[*item.PhotoKey] = struct{}{}
		}
	}
	return keys, nil
}

type fakeObject struct {
	data        []byte
	contentType string
	modTime     time.Time
}

// fakeAssetStore is an in-memory AssetStore with injectable faults.
type fakeAssetStore struct {
	mu      sync.Mutex
	objects map[string]fakeObject

	failUpload   error
	failDownload error
	failDelete   error
}

func newFakeAssetStore() *fakeAssetStore {
	return &fakeAssetStore{objects: map[string]fakeObject{}}
}

func (s *fakeAssetStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failUpload != nil {
		return s.failUpload
	}
	s.objects[key] = fakeObject{
		data:        append([]byte(nil), data...),
		contentType: contentType,
		modTime:     time.Now().UTC(),
	}
	return nil
}

func (s *fakeAssetStore) Download(ctx context.Context, key string) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDownload != nil {
		return nil, "", s.failDownload
	}
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", storage.ErrObjectNotFound
	}
	return append([]byte(nil), obj.data...), obj.contentType, nil
}

func (s *fakeAssetStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failDelete != nil {
		return s.failDelete
	}
	delete(s.objects, key)
	return nil
}

func (s *fakeAssetStore) ListKeys(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var infos []storage.ObjectInfo
	for key, obj := range s.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, LastModified: obj.modTime})
		}
	}
	return infos, nil
}

func (s *fakeAssetStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *fakeAssetStore) setModTime(key string, t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj := s.objects[key]
	obj.modTime = t
	s.objects[key] = obj
}
