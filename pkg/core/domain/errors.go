package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is(err, domain.ErrAuth).
var (
	ErrAuth       = errors.New("auth error")
	ErrValidation = errors.New("validation error")
	ErrTransport  = errors.New("transport error")
	ErrBackend    = errors.New("backend error")
)

// APIError is the single error type the API client returns.
// Message is what the user gets to see.
type APIError struct {
	Kind    error
	Status  int // 0 when no response was received
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func NewValidationError(msg string) *APIError {
	return &APIError{Kind: ErrValidation, Message: msg}
}

// StatusMessage is used when an error response carries no usable body.
func StatusMessage(status int) string {
	return fmt.Sprintf("HTTP error! status: %d", status)
}

// Message returns the user-facing text of any error.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
