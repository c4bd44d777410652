package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mkoster/hireboard/internal/assistant"
	"github.com/mkoster/hireboard/internal/session"
)

// ErrFetch wraps a failed store read. Pages render it as an inline banner
// and keep whatever state they already have.
type ErrFetch struct {
	Collection string
	Cause      error
}

func (e *ErrFetch) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Collection, e.Cause)
}

func (e *ErrFetch) Unwrap() error { return e.Cause }

// ErrMutation wraps a failed insert/update/delete. The optimistic local
// patch is never applied when this surfaces.
type ErrMutation struct {
	Op    string
	Cause error
}

func (e *ErrMutation) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
}

func (e *ErrMutation) Unwrap() error { return e.Cause }

// ErrValidation indicates a bad request payload.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a missing entity.
type ErrNotFound struct {
	Entity string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// HTTPStatus maps an error to the appropriate API status code.
func HTTPStatus(err error) int {
	if errors.Is(err, session.ErrNoSession) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, assistant.ErrUnavailable) {
		return http.StatusServiceUnavailable
	}

	var (
		fetchErr      *ErrFetch
		mutationErr   *ErrMutation
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
	)
	switch {
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &mutationErr):
		return http.StatusBadGateway
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// bannerMessage is the user-facing text for an inline page banner. Causes
// stay in the logs.
func bannerMessage(err error) string {
	if errors.Is(err, assistant.ErrUnavailable) {
		return assistant.ErrUnavailable.Error()
	}

	var (
		fetchErr      *ErrFetch
		mutationErr   *ErrMutation
		validationErr *ErrValidation
	)
	switch {
	case errors.As(err, &fetchErr):
		return fmt.Sprintf("Could not load %s. Please try again.", fetchErr.Collection)
	case errors.As(err, &mutationErr):
		return fmt.Sprintf("Could not complete %s. Your data was not changed.", mutationErr.Op)
	case errors.As(err, &validationErr):
		return validationErr.Message
	default:
		return "Something went wrong. Please try again."
	}
}
