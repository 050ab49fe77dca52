package kanka_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		retry    time.Duration
		expected string
		sentinel error
	}{
		{
			name:     "unauthorized",
			status:   http.StatusUnauthorized,
			body:     `{"message":"Unauthenticated."}`,
			expected: "Invalid authentication token",
			sentinel: kanka.ErrAuthentication,
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			expected: "Access forbidden",
			sentinel: kanka.ErrForbidden,
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			expected: "Resource not found: characters/9",
			sentinel: kanka.ErrNotFound,
		},
		{
			name:     "validation with field errors",
			status:   http.StatusUnprocessableEntity,
			body:     `{"message":"The given data was invalid.","errors":{"name":["The name field is required."]}}`,
			expected: `Validation error: {"name":["The name field is required."]}`,
			sentinel: kanka.ErrValidation,
		},
		{
			name:     "validation without field errors",
			status:   http.StatusUnprocessableEntity,
			body:     "bad input",
			expected: "Validation error: bad input",
			sentinel: kanka.ErrValidation,
		},
		{
			name:     "rate limit",
			status:   http.StatusTooManyRequests,
			expected: "Rate limit exceeded",
			sentinel: kanka.ErrRateLimit,
		},
		{
			name:     "rate limit with retry after",
			status:   http.StatusTooManyRequests,
			retry:    5 * time.Second,
			expected: "Rate limit exceeded (retry after 5s)",
			sentinel: kanka.ErrRateLimit,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     "boom\n",
			expected: "API error 500: boom",
			sentinel: kanka.ErrAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := kanka.NewAPIError(tt.status, http.MethodGet, "characters/9", []byte(tt.body), tt.retry)

			assert.Equal(t, tt.expected, err.Error())
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestAPIError_FieldErrors(t *testing.T) {
	t.Parallel()

	body := `{"message":"invalid","errors":{"name":["required"],"type":["too long","bad"]}}`
	err := kanka.NewAPIError(http.StatusUnprocessableEntity, http.MethodPost, "notes", []byte(body), 0)

	assert.Equal(t, "invalid", err.Message)
	assert.Equal(t, []string{"required"}, err.FieldErrors("name"))
	assert.Equal(t, []string{"too long", "bad"}, err.FieldErrors("type"))
	assert.Nil(t, err.FieldErrors("entry"))
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("getting character: %w",
		kanka.NewAPIError(http.StatusNotFound, http.MethodGet, "characters/1", nil, 0))

	assert.True(t, kanka.IsNotFound(wrapped))
	assert.False(t, kanka.IsAuthentication(wrapped))
	assert.False(t, kanka.IsForbidden(wrapped))
	assert.False(t, kanka.IsValidation(wrapped))
	assert.False(t, kanka.IsRateLimit(wrapped))

	apiErr, ok := kanka.AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "characters/1", apiErr.Path)

	_, ok = kanka.AsAPIError(errors.New("plain"))
	assert.False(t, ok)
}
