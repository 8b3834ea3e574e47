package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/domains/item/model"
	"inventory-backend/internal/domains/item/service"
	"inventory-backend/internal/shared/response"
	"inventory-backend/internal/shared/utils"
	"inventory-backend/pkg/cache"
)

const itemCacheTTL = 10 * time.Minute

type Handler struct {
	service service.ServiceInterface
	cache   cache.Cache
}

func NewHandler(service service.ServiceInterface, cache cache.Cache) *Handler {
	return &Handler{
		service: service,
		cache:   cache,
	}
}

// readPhotoFile pulls the uploaded "photo" file out of the multipart
// form. Returns (nil, nil) when the form simply has no photo.
func readPhotoFile(c *gin.Context) (*model.Photo, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &model.Photo{Data: data, ContentType: contentType}, nil
}

// CreateItem - POST /api/v1/items
// Multipart form: name (required), description, photo (optional file).
// Not idempotent: a retried request creates a second item.
func (h *Handler) CreateItem(c *gin.Context) {
	req := model.CreateItemRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}

	photo, err := readPhotoFile(c)
	if err != nil {
		response.BadRequest(c, "invalid photo upload")
		return
	}

	item, err := h.service.CreateItem(c.Request.Context(), req, photo)
	if model.HandleItemError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, item)
}

// ListItems - GET /api/v1/items
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if model.HandleItemError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, items)
}

// GetItem - GET /api/v1/items/:id
func (h *Handler) GetItem(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	cacheKey := model.GenerateItemCacheKey(id)
	var cached model.ItemResponse
	found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached)
	if found {
		response.Success(c, http.StatusOK, &cached)
		return
	}
	if err != nil {
		// Cache trouble is never fatal for reads, fall through to the DB.
		log.Warn().Err(err).Str("key", cacheKey).Msg("Cache read failed")
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if model.HandleItemError(c, err) {
		return
	}

	if err := h.cache.Set(c.Request.Context(), cacheKey, item, itemCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Cache write failed")
	}

	response.Success(c, http.StatusOK, item)
}

// UpdateItem - PATCH /api/v1/items/:id
// JSON body with optional name/description; omitted fields keep their
// current values.
func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	var req model.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, req)
	if model.HandleItemError(c, err) {
		return
	}

	h.invalidateItemCache(c, id)
	response.Success(c, http.StatusOK, item)
}

// DeleteItem - DELETE /api/v1/items/:id
func (h *Handler) DeleteItem(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	err := h.service.DeleteItem(c.Request.Context(), id)
	if model.HandleItemError(c, err) {
		return
	}

	h.invalidateItemCache(c, id)
	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

// GetPhoto - GET /api/v1/items/:id/photo
// Responds with the raw photo bytes, not a JSON envelope.
func (h *Handler) GetPhoto(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	photo, err := h.service.GetPhoto(c.Request.Context(), id)
	if model.HandleItemError(c, err) {
		return
	}

	c.Data(http.StatusOK, photo.ContentType, photo.Data)
}

// ReplacePhoto - PUT /api/v1/items/:id/photo
// Multipart form with a required "photo" file. Installs the new photo
// and reclaims the previous one.
func (h *Handler) ReplacePhoto(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		response.BadRequest(c, "invalid item id")
		return
	}

	photo, err := readPhotoFile(c)
	if err != nil {
		response.BadRequest(c, "invalid photo upload")
		return
	}
	if photo == nil {
		model.HandleItemError(c, model.ErrMissingPhotoFile)
		return
	}

	item, err := h.service.ReplacePhoto(c.Request.Context(), id, *photo)
	if model.HandleItemError(c, err) {
		return
	}

	h.invalidateItemCache(c, id)
	response.Success(c, http.StatusOK, item)
}

// SearchItem - GET /api/v1/items/search?id=N&include_photo=true
// Read-only projection; include_photo adds the photo URL when one
// exists, never the bytes.
func (h *Handler) SearchItem(c *gin.Context) {
	id, ok := utils.ParseID(c.Query("id"))
	if !ok {
		response.BadRequest(c, "query parameter id must be a positive integer")
		return
	}

	includePhoto := c.Query("include_photo") == "true"

	result, err := h.service.SearchItem(c.Request.Context(), id, includePhoto)
	if model.HandleItemError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) invalidateItemCache(c *gin.Context, id int64) {
	cacheKey := model.GenerateItemCacheKey(id)
	if err := h.cache.Delete(c.Request.Context(), cacheKey); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Cache invalidation failed")
	}
}
