package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"inventory-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

var (
	// ErrItemNotFound: no item exists with the requested id.
	ErrItemNotFound = errors.New("item not found")

	// ErrPhotoNotFound: the item exists but has no retrievable photo.
	// Distinct from ErrItemNotFound so clients can tell "no such item"
	// apart from "item has no photo".
	ErrPhotoNotFound = errors.New("photo not found")

	// ErrMissingPhotoFile: the photo upload form contained no file.
	ErrMissingPhotoFile = errors.New("photo file is required")

	// ErrStoreUnavailable: the database or object store cannot be
	// reached. Transient, retryable, not corruption.
	ErrStoreUnavailable = errors.New("store unavailable")
)

var itemErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrItemNotFound: {
		Status:  http.StatusNotFound,
		Code:    "ITEM_NOT_FOUND",
		Message: "The specified item does not exist",
	},
	ErrPhotoNotFound: {
		Status:  http.StatusNotFound,
		Code:    "PHOTO_NOT_FOUND",
		Message: "The item has no photo",
	},
	ErrMissingPhotoFile: {
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: "A photo file must be attached",
	},
	ErrStoreUnavailable: {
		Status:  http.StatusServiceUnavailable,
		Code:    "STORE_UNAVAILABLE",
		Message: "Backing store is temporarily unavailable",
	},
}

// HandleItemError maps a service error to an HTTP response.
// Returns true when a response was written.
func HandleItemError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var validationErrs validation.Errors
	if errors.As(err, &validationErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", validationErrs)
		return true
	}

	for sentinel, config := range itemErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, config.Status, config.Code, config.Message)
			return true
		}
	}

	log.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Msg("Unhandled item error")
	response.InternalServerError(c, "Internal server error")
	return true
}
