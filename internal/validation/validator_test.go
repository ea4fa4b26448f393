package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookcircle/bookcircle-server/internal/errors"
	"github.com/bookcircle/bookcircle-server/internal/validation"
)

type reviewRequest struct {
	Difficulty      int      `json:"difficulty" validate:"gte=1,lte=5"`
	ExperienceYears float64  `json:"experience_years" validate:"gte=0,lte=80"`
	Body            string   `json:"body,omitempty" validate:"max=20"`
	Title           string   `json:"title" validate:"required,notblank"`
	ISBN            string   `json:"isbn,omitempty" validate:"omitempty,isbn"`
	Subjects        []string `json:"subjects" validate:"max=2"`
}

func valid() reviewRequest {
	return reviewRequest{
		Difficulty:      3,
		ExperienceYears: 2.5,
		Title:           "Go in Practice",
		ISBN:            "9780134190440",
	}
}

func TestValidator_ValidateSuccess(t *testing.T) {
	assert.NoError(t, validation.New().Validate(valid()))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name    string
		mutate  func(r *reviewRequest)
		field   string
		message string
	}{
		{"difficulty too low", func(r *reviewRequest) { r.Difficulty = 0 }, "difficulty", "must be greater than or equal to 1"},
		{"difficulty too high", func(r *reviewRequest) { r.Difficulty = 6 }, "difficulty", "must be less than or equal to 5"},
		{"negative years", func(r *reviewRequest) { r.ExperienceYears = -1 }, "experience_years", "must be greater than or equal to 0"},
		{"blank title", func(r *reviewRequest) { r.Title = "   " }, "title", "must not be blank"},
		{"bad isbn", func(r *reviewRequest) { r.ISBN = "12345" }, "isbn", "must be a valid ISBN"},
		{"long body", func(r *reviewRequest) { r.Body = "this body is far too long" }, "body", "must not exceed 20 characters"},
		{"too many subjects", func(r *reviewRequest) { r.Subjects = []string{"a", "b", "c"} }, "subjects", "must not have more than 2 items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)

			err := v.Validate(req)
			require.Error(t, err)

			var de *domainerrors.Error
			require.True(t, errors.As(err, &de))
			assert.Equal(t, http.StatusBadRequest, de.HTTPStatus())
			assert.True(t, errors.Is(err, domainerrors.ErrValidation))

			details, ok := de.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.message, details[tt.field])
		})
	}
}

func TestValidator_ReportsEveryField(t *testing.T) {
	err := validation.New().Validate(reviewRequest{Difficulty: 9, ExperienceYears: -3})

	var de *domainerrors.Error
	require.True(t, errors.As(err, &de))
	details := de.Details.(map[string]string)
	assert.Contains(t, details, "difficulty")
	assert.Contains(t, details, "experience_years")
	assert.Contains(t, details, "title")
}
