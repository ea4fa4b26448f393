package store

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesByCode(t *testing.T) {
	assert.True(t, errors.Is(ErrBookNotFound, ErrNotFound))
	assert.True(t, errors.Is(fmt.Errorf("get: %w", ErrShelfNotFound), ErrNotFound))
	assert.False(t, errors.Is(ErrBookNotFound, ErrAlreadyExists))
	assert.Equal(t, "book not found", ErrBookNotFound.Error())
	assert.Equal(t, http.StatusNotFound, ErrReviewNotFound.HTTPCode())
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("disk full")
	err := ErrAlreadyExists.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "resource already exists: disk full", err.Error())
}

func TestPaginationParams_Validate(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 100}, {-5, 100}, {50, 50}, {5000, 1000},
	}
	for _, tt := range tests {
		p := PaginationParams{Limit: tt.in}
		p.Validate()
		assert.Equal(t, tt.want, p.Limit)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	cursor := EncodeCursor("2026-01-01T00:00:00Z", "book-1|x")
	parts, err := DecodeCursor(cursor, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-01T00:00:00Z", "book-1|x"}, parts)

	_, err = DecodeCursor("!!!", 2)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = DecodeCursor(EncodeCursor("only"), 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, EncodeCursor())
}
