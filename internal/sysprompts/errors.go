package sysprompts

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors for system prompt operations. Store errors wrap one of these
// together with the underlying cause, so both match with errors.Is.
var (
	ErrNotFound      = errors.New("system prompt not found")
	ErrDeleteDefault = errors.New("cannot delete the default system prompt; set another prompt as default first")
	ErrInvalid       = errors.New("invalid system prompt")
	ErrDirectory     = errors.New("config directory unavailable")
	ErrIO            = errors.New("system prompt storage i/o failed")
	ErrDeserialize   = errors.New("malformed system prompt collection")
)

// MapHTTPStatus maps system prompt domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDeleteDefault) || errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}
