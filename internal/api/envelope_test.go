package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

func TestEnvelopeTransformer_AlwaysIncludesVersion(t *testing.T) {
	tests := []struct {
		name   string
		status string
		input  any
	}{
		{"success response", "200", map[string]string{"key": "value"}},
		{"created response", "201", map[string]string{"id": "123"}},
		{"no content response", "204", nil},
		{"plain error", "500", errors.New("internal error")},
		{"coded error", "409", &APIError{Code: "CONFLICT", Message: "exists", Details: map[string]string{"id": "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := EnvelopeTransformer(nil, tt.status, tt.input)
			require.NoError(t, err)

			raw, err := json.Marshal(result)
			require.NoError(t, err)

			var envelope map[string]any
			require.NoError(t, json.Unmarshal(raw, &envelope))
			assert.Equal(t, float64(EnvelopeVersion), envelope["v"])
		})
	}
}

func TestEnvelopeTransformer_SuccessResponse(t *testing.T) {
	data := map[string]string{"name": "Test Book"}

	result, err := EnvelopeTransformer(nil, "200", data)
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")
	assert.True(t, envelope.Success)
	assert.Equal(t, data, envelope.Data)
	assert.Empty(t, envelope.Error)
}

func TestEnvelopeTransformer_ErrorResponse(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "400", errors.New("validation failed"))
	require.NoError(t, err)

	envelope, ok := result.(APIEnvelope)
	require.True(t, ok, "Expected APIEnvelope type")
	assert.False(t, envelope.Success)
	assert.Nil(t, envelope.Data)
	assert.Equal(t, "validation failed", envelope.Error)
}

func TestEnvelopeTransformer_ErrorWithDetails(t *testing.T) {
	apiErr := &APIError{
		Code:    "VALIDATION",
		Message: "validation failed",
		Details: map[string]string{"difficulty": "must be at least 1"},
	}

	result, err := EnvelopeTransformer(nil, "400", apiErr)
	require.NoError(t, err)

	envelope, ok := result.(APIErrorEnvelope)
	require.True(t, ok, "Expected APIErrorEnvelope type")
	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Equal(t, "validation failed", envelope.Message)
	assert.Equal(t, apiErr.Details, envelope.Details)
}

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		errs       []error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "domain error keeps its code",
			status:     http.StatusInternalServerError,
			errs:       []error{domainerrors.NoDataf("no reviews yet")},
			wantStatus: http.StatusNotFound,
			wantCode:   "NO_DATA",
		},
		{
			name:       "wrapped domain error",
			status:     http.StatusInternalServerError,
			errs:       []error{fmt.Errorf("delete: %w", domainerrors.Forbidden("not yours"))},
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "store not found",
			status:     http.StatusInternalServerError,
			errs:       []error{store.ErrShelfNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "store invalid input",
			status:     http.StatusInternalServerError,
			errs:       []error{fmt.Errorf("list: %w", store.ErrInvalidInput)},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION",
		},
		{
			name:       "huma validation",
			status:     http.StatusUnprocessableEntity,
			errs:       []error{&huma.ErrorDetail{Message: "expected number <= 5", Location: "body.difficulty"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "VALIDATION",
		},
		{
			name:       "unknown error",
			status:     http.StatusInternalServerError,
			errs:       []error{errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(tt.status, "message", tt.errs...)
			assert.Equal(t, tt.wantStatus, err.GetStatus())

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestNewAPIError_CollectsValidationDetails(t *testing.T) {
	err := newAPIError(http.StatusUnprocessableEntity, "validation failed",
		&huma.ErrorDetail{Message: "expected number <= 5", Location: "body.difficulty"},
		&huma.ErrorDetail{Message: "expected length <= 5000", Location: "body.body"},
	)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	details, ok := apiErr.Details.([]string)
	require.True(t, ok)
	assert.Len(t, details, 2)
}
