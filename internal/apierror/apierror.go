// Package apierror provides the error envelope shared with the Conta API.
// The API answers every 4xx/5xx with {"detail": "..."}; the console uses the
// same envelope for its own JSON responses so clients see one shape.
package apierror

import (
	"fmt"
	"net/http"
)

// APIError is the canonical error envelope for all 4xx/5xx JSON responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// UpstreamError is a non-2xx response received from the Conta API.
type UpstreamError struct {
	Status int
	Path   string
	Detail string
}

func (e *UpstreamError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("conta api: %s returned %d", e.Path, e.Status)
	}
	return fmt.Sprintf("conta api: %s returned %d: %s", e.Path, e.Status, e.Detail)
}

// Message is the text shown to the user. It prefers the API's own detail.
func (e *UpstreamError) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	if text := http.StatusText(e.Status); text != "" {
		return fmt.Sprintf("La API respondió %d (%s)", e.Status, text)
	}
	return fmt.Sprintf("La API respondió %d", e.Status)
}

// NotFound reports whether the API answered 404.
func (e *UpstreamError) NotFound() bool { return e.Status == http.StatusNotFound }
