package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable = errors.New("api unavailable")
	ErrBusy        = errors.New("operation already in flight")
	ErrOutOfStock  = errors.New("product is out of stock")
	ErrNotLoaded   = errors.New("not loaded")
)

// An APIError is a non-2xx response of the storefront API.
type APIError struct {
	Status int
	Detail string
	Fields map[string][]string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api status %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api status %d", e.Status)
}

// FieldError returns the first message reported for the field.
func (e *APIError) FieldError(field string) string {
	msgs := e.Fields[field]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[0]
}

// IsUnauthorized reports whether err is an [APIError] with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusUnauthorized
	}
	return false
}

// Detail returns the server provided detail message of err, if any.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
