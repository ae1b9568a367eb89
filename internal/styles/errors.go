package styles

import (
	"errors"
	"net/http"
)

// Domain errors for style profile operations.
var (
	ErrNotFound        = errors.New("style profile not found")
	ErrDuplicate       = errors.New("style profile id already exists")
	ErrNameRequired    = errors.New("style profile name is required")
	ErrInvalidDocument = errors.New("style document invalid")
)

// MapHTTPStatus maps style domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNameRequired):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidDocument):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
