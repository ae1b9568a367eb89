package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt operations.
var (
	ErrNotFound         = errors.New("prompt not found")
	ErrInvalidID        = errors.New("prompt id must be a UUID")
	ErrDuplicate        = errors.New("prompt already exists")
	ErrTitleRequired    = errors.New("title is required")
	ErrInvalidModalType = errors.New("modal_type must be text, image, video, code, audio, or other")
	ErrStyleNotFound    = errors.New("referenced style profile does not exist")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrTitleRequired),
		errors.Is(err, ErrInvalidModalType),
		errors.Is(err, ErrStyleNotFound):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
