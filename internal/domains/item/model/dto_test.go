package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateItemRequest_Validate(t *testing.T) {
	assert.NoError(t, CreateItemRequest{Name: "Widget"}.Validate())
	assert.NoError(t, CreateItemRequest{Name: "Widget", Description: "spare part"}.Validate())

	assert.Error(t, CreateItemRequest{}.Validate())
	assert.Error(t, CreateItemRequest{Name: ""}.Validate())
	assert.Error(t, CreateItemRequest{Name: strings.Repeat("x", 256)}.Validate())
	assert.Error(t, CreateItemRequest{Name: "ok", Description: strings.Repeat("x", 2001)}.Validate())
}

func TestUpdateItemRequest_Validate(t *testing.T) {
	name := "Widget"
	empty := ""
	desc := "spare part"

	// All fields omitted is a valid no-op request.
	assert.NoError(t, UpdateItemRequest{}.Validate())
	assert.NoError(t, UpdateItemRequest{Name: &name}.Validate())
	assert.NoError(t, UpdateItemRequest{Description: &desc}.Validate())
	// Description may be cleared, name may not.
	assert.NoError(t, UpdateItemRequest{Description: &empty}.Validate())
	assert.Error(t, UpdateItemRequest{Name: &empty}.Validate())
}

func TestNewItemResponse_PhotoURL(t *testing.T) {
	key := "items/abc"
	withPhoto := NewItemResponse(&Item{ID: 3, Name: "Camera", PhotoKey: &key})
	if assert.NotNil(t, withPhoto.PhotoURL) {
		assert.Equal(t, "/api/v1/items/3/photo", *withPhoto.PhotoURL)
	}

	without := NewItemResponse(&Item{ID: 4, Name: "Widget"})
	assert.Nil(t, without.PhotoURL)
}
