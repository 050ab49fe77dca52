package kanka

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Error classes returned by the API. Every *APIError unwraps to exactly one of them.
var (
	ErrAuthentication = errors.New("invalid authentication token")
	ErrForbidden      = errors.New("access forbidden")
	ErrNotFound       = errors.New("resource not found")
	ErrValidation     = errors.New("validation error")
	ErrRateLimit      = errors.New("rate limit exceeded")
	ErrAPI            = errors.New("api error")
)

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrTokenRequired       = errors.New("API token is required")
	ErrCampaignIDRequired  = errors.New("campaign id is required")
	ErrRecordIDRequired    = errors.New("record id is required")
	ErrEntityIDRequired    = errors.New("entity id is required")
	ErrGalleryIDRequired   = errors.New("gallery image id is required")
	ErrNoMoreItems         = errors.New("no more items")
	ErrEmptyUploadResponse = errors.New("upload response contained no items")
	ErrInvalidEntry        = errors.New("entry must be a string")
	ErrSearchTermRequired  = errors.New("search term is required")
	ErrUnknownEntityType   = errors.New("unknown entity type")
)

// APIError is a non-2xx response from the Kanka API.
type APIError struct {
	StatusCode int                 `json:"status_code"           yaml:"status_code"`
	Method     string              `json:"method"                yaml:"method"`
	Path       string              `json:"path"                  yaml:"path"`
	Message    string              `json:"message,omitempty"     yaml:"message,omitempty"`
	Body       string              `json:"body,omitempty"        yaml:"body,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"      yaml:"errors,omitempty"`
	RetryAfter time.Duration       `json:"retry_after,omitempty" yaml:"retry_after,omitempty"`
}

// NewAPIError builds an APIError from a raw response.
func NewAPIError(statusCode int, method, path string, body []byte, retryAfter time.Duration) *APIError {
	apiErr := &APIError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
		Body:       strings.TrimSpace(string(body)),
		RetryAfter: retryAfter,
	}

	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}

	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = payload.Message
		apiErr.Errors = payload.Errors
	}

	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return "Invalid authentication token"
	case http.StatusForbidden:
		return "Access forbidden"
	case http.StatusNotFound:
		return "Resource not found: " + e.Path
	case http.StatusUnprocessableEntity:
		if len(e.Errors) > 0 {
			details, _ := json.Marshal(e.Errors)

			return "Validation error: " + string(details)
		}

		return "Validation error: " + e.Body
	case http.StatusTooManyRequests:
		if e.RetryAfter > 0 {
			return fmt.Sprintf("Rate limit exceeded (retry after %s)", e.RetryAfter)
		}

		return "Rate limit exceeded"
	default:
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Body)
	}
}

// Unwrap maps the status code onto its error class.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return ErrAuthentication
	case e.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case e.StatusCode == http.StatusUnprocessableEntity:
		return ErrValidation
	case e.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimit
	default:
		return ErrAPI
	}
}

// FieldErrors returns the validation messages reported for one field.
func (e *APIError) FieldErrors(field string) []string {
	return e.Errors[field]
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsRateLimit checks if the error is a rate limit error.
func IsRateLimit(err error) bool {
	return errors.Is(err, ErrRateLimit)
}

// AsAPIError extracts the APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}
