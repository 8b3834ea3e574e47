package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateItemRequest carries the multipart form fields of POST /items.
// The optional photo file is handled separately by the handler.
type CreateItemRequest struct {
	Name        string `form:"name"`
	Description string `form:"description"`
}

func (r CreateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2000),
		),
	)
}

// UpdateItemRequest carries the JSON body of PATCH /items/:id.
// Nil fields are left unchanged; a provided field overwrites
// unconditionally. Partial-update semantics, not null-out-on-omit.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (r UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.When(r.Name != nil,
				validation.Required.Error("name must not be empty"),
				validation.Length(1, 255),
			),
		),
		validation.Field(&r.Description,
			validation.When(r.Description != nil,
				validation.Length(0, 2000),
			),
		),
	)
}

// SearchItemResponse is the read-only projection returned by the search
// endpoint. PhotoURL is only populated when the caller asked for it.
type SearchItemResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	HasPhoto    bool    `json:"has_photo"`
	PhotoURL    *string `json:"photo_url,omitempty"`
}
