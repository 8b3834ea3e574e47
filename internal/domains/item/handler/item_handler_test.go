package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-backend/internal/domains/item/model"
)

// stubService lets each test script the service behaviour directly.
type stubService struct {
	createFn  func(ctx context.Context, req model.CreateItemRequest, photo *model.Photo) (*model.ItemResponse, error)
	getFn     func(ctx context.Context, id int64) (*model.ItemResponse, error)
	listFn    func(ctx context.Context) ([]*model.ItemResponse, error)
	updateFn  func(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.ItemResponse, error)
	deleteFn  func(ctx context.Context, id int64) error
	searchFn  func(ctx context.Context, id int64, includePhoto bool) (*model.SearchItemResponse, error)
	photoFn   func(ctx context.Context, id int64) (*model.Photo, error)
	replaceFn func(ctx context.Context, id int64, photo model.Photo) (*model.ItemResponse, error)
}

func (s *stubService) CreateItem(ctx context.Context, req model.CreateItemRequest, photo *model.Photo) (*model.ItemResponse, error) {
	return s.createFn(ctx, req, photo)
}
func (s *stubService) GetItem(ctx context.Context, id int64) (*model.ItemResponse, error) {
	return s.getFn(ctx, id)
}
func (s *stubService) ListItems(ctx context.Context) ([]*model.ItemResponse, error) {
	return s.listFn(ctx)
}
func (s *stubService) UpdateItem(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.ItemResponse, error) {
	return s.updateFn(ctx, id, req)
}
func (s *stubService) DeleteItem(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}
func (s *stubService) SearchItem(ctx context.Context, id int64, includePhoto bool) (*model.SearchItemResponse, error) {
	return s.searchFn(ctx, id, includePhoto)
}
func (s *stubService) GetPhoto(ctx context.Context, id int64) (*model.Photo, error) {
	return s.photoFn(ctx, id)
}
func (s *stubService) ReplacePhoto(ctx context.Context, id int64, photo model.Photo) (*model.ItemResponse, error) {
	return s.replaceFn(ctx, id, photo)
}
func (s *stubService) SweepOrphans(ctx context.Context, grace time.Duration) (int, error) {
	return 0, nil
}

// noopCache always misses so handler tests exercise the service path.
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}
func (noopCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (noopCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (noopCache) Ping(ctx context.Context) error                   { return nil }

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc, noopCache{})

	router := gin.New()
	items := router.Group("/api/v1/items")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.PATCH("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
		items.GET("/:id/photo", h.GetPhoto)
		items.PUT("/:id/photo", h.ReplacePhoto)
	}
	router.GET("/api/v1/search", h.SearchItem)
	return router
}

func multipartBody(t *testing.T, fields map[string]string, photo []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if photo != nil {
		part, err := writer.CreateFormFile("photo", "photo.bin")
		require.NoError(t, err)
		_, err = part.Write(photo)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	envelope := decodeEnvelope(t, w)
	errObj, ok := envelope["error"].(map[string]interface{})
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func TestCreateItem_Created(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, req model.CreateItemRequest, photo *model.Photo) (*model.ItemResponse, error) {
			assert.Equal(t, "Widget", req.Name)
			assert.Equal(t, "spare part", req.Description)
			assert.Nil(t, photo)
			return &model.ItemResponse{ID: 1, Name: req.Name, Description: req.Description}, nil
		},
	}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{
		"name":        "Widget",
		"description": "spare part",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["success"])
	data := envelope["data"].(map[string]interface{})
	assert.Equal(t, "Widget", data["name"])
	assert.Nil(t, data["photo_url"])
}

func TestCreateItem_WithPhotoFile(t *testing.T) {
	photoBytes := []byte{0xFF, 0xD8, 0xFF}
	svc := &stubService{
		createFn: func(ctx context.Context, req model.CreateItemRequest, photo *model.Photo) (*model.ItemResponse, error) {
			require.NotNil(t, photo)
			assert.Equal(t, photoBytes, photo.Data)
			url := model.PhotoURL(1)
			return &model.ItemResponse{ID: 1, Name: req.Name, PhotoURL: &url}, nil
		},
	}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"name": "Camera"}, photoBytes)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "/api/v1/items/1/photo", data["photo_url"])
}

func TestCreateItem_ValidationError(t *testing.T) {
	svc := &stubService{
		createFn: func(ctx context.Context, req model.CreateItemRequest, photo *model.Photo) (*model.ItemResponse, error) {
			return nil, req.Validate()
		},
	}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, map[string]string{"description": "no name"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/items", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestGetItem_NotFound(t *testing.T) {
	svc := &stubService{
		getFn: func(ctx context.Context, id int64) (*model.ItemResponse, error) {
			return nil, model.ErrItemNotFound
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/42", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ITEM_NOT_FOUND", errorCode(t, w))
}

func TestGetItem_BadID(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPhoto_ReturnsRawBytes(t *testing.T) {
	photoBytes := []byte{0x89, 0x50, 0x4E, 0x47}
	svc := &stubService{
		photoFn: func(ctx context.Context, id int64) (*model.Photo, error) {
			return &model.Photo{Data: photoBytes, ContentType: "image/png"}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/1/photo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, photoBytes, w.Body.Bytes())
}

func TestGetPhoto_CodeDistinctFromItemNotFound(t *testing.T) {
	svc := &stubService{
		photoFn: func(ctx context.Context, id int64) (*model.Photo, error) {
			return nil, model.ErrPhotoNotFound
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/items/1/photo", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PHOTO_NOT_FOUND", errorCode(t, w))
}

func TestReplacePhoto_MissingFile(t *testing.T) {
	router := newTestRouter(&stubService{})

	body, contentType := multipartBody(t, map[string]string{}, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/items/1/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestReplacePhoto_Success(t *testing.T) {
	newBytes := []byte{0x89, 0x50}
	svc := &stubService{
		replaceFn: func(ctx context.Context, id int64, photo model.Photo) (*model.ItemResponse, error) {
			assert.Equal(t, int64(1), id)
			assert.Equal(t, newBytes, photo.Data)
			url := model.PhotoURL(id)
			return &model.ItemResponse{ID: id, Name: "Camera", PhotoURL: &url}, nil
		},
	}
	router := newTestRouter(svc)

	body, contentType := multipartBody(t, nil, newBytes)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/items/1/photo", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateItem_PassesPartialFields(t *testing.T) {
	svc := &stubService{
		updateFn: func(ctx context.Context, id int64, req model.UpdateItemRequest) (*model.ItemResponse, error) {
			require.NotNil(t, req.Name)
			assert.Equal(t, "X", *req.Name)
			assert.Nil(t, req.Description)
			return &model.ItemResponse{ID: id, Name: *req.Name, Description: "unchanged"}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/items/1", bytes.NewBufferString(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteItem_ThenNotFound(t *testing.T) {
	deleted := false
	svc := &stubService{
		deleteFn: func(ctx context.Context, id int64) error {
			if deleted {
				return model.ErrItemNotFound
			}
			deleted = true
			return nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/items/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/items/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ITEM_NOT_FOUND", errorCode(t, w))
}

func TestSearchItem(t *testing.T) {
	svc := &stubService{
		searchFn: func(ctx context.Context, id int64, includePhoto bool) (*model.SearchItemResponse, error) {
			assert.Equal(t, int64(5), id)
			assert.True(t, includePhoto)
			url := model.PhotoURL(id)
			return &model.SearchItemResponse{ID: id, Name: "Camera", HasPhoto: true, PhotoURL: &url}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?id=5&include_photo=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "/api/v1/items/5/photo", data["photo_url"])
}

func TestSearchItem_BadQuery(t *testing.T) {
	router := newTestRouter(&stubService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?id=zero", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
