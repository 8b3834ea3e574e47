package model

import (
	"fmt"
	"time"
)

// Item represents one inventory record. PhotoKey points at the photo
// object in storage; nil means the item has no photo.
type Item struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	PhotoKey    *string   `json:"-" db:"photo_key"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// HasPhoto reports whether the item currently references a photo.
func (i *Item) HasPhoto() bool {
	return i.PhotoKey != nil && *i.PhotoKey != ""
}

// ItemResponse is the API view of an item. The raw storage key never
// leaves the service; clients get a retrieval URL instead.
type ItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PhotoURL    *string   `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItemResponse builds the API view, deriving photo_url from the key.
func NewItemResponse(item *Item) *ItemResponse {
	resp := &ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	}

	if item.HasPhoto() {
		url := PhotoURL(item.ID)
		resp.PhotoURL = &url
	}

	return resp
}

// PhotoURL is the retrieval endpoint for an item's photo.
func PhotoURL(itemID int64) string {
	return fmt.Sprintf("/api/v1/items/%d/photo", itemID)
}

// Photo carries photo bytes plus the content type stored alongside them.
type Photo struct {
	Data        []byte
	ContentType string
}

// GenerateItemCacheKey returns the cache key for an item detail view.
func GenerateItemCacheKey(id int64) string {
	return fmt.Sprintf("item:detail:%d", id)
}
