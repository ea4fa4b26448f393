package domain

import (
	"math"
	"time"

	"github.com/bookcircle/bookcircle-server/internal/recommend"
)

// Difficulty bounds for a review.
const (
	MinDifficulty = 1
	MaxDifficulty = 5
)

// Review is one reader's assessment of a book. ExperienceYears is the
// reviewer's experience at the time the review was written.
type Review struct {
	CreatedAt       time.Time `json:"created_at"`
	ID              string    `json:"id"`
	BookID          string    `json:"book_id"`
	UserID          string    `json:"user_id"`
	Body            string    `json:"body,omitempty"`
	Difficulty      int       `json:"difficulty"`
	ExperienceYears float64   `json:"experience_years"`
}

// Clamp pulls difficulty into [1,5] and experience to a non-negative number.
func (r *Review) Clamp() {
	r.Difficulty = min(max(r.Difficulty, MinDifficulty), MaxDifficulty)
	if math.IsNaN(r.ExperienceYears) || r.ExperienceYears < 0 {
		r.ExperienceYears = 0
	}
}

// ToScorerInput converts the review into the scorer's input record.
func (r *Review) ToScorerInput() recommend.Review {
	return recommend.Review{
		BookID:          r.BookID,
		Difficulty:      r.Difficulty,
		ExperienceYears: r.ExperienceYears,
		CreatedAt:       r.CreatedAt,
	}
}

// ScorerInputs converts a slice of reviews.
func ScorerInputs(reviews []*Review) []recommend.Review {
	out := make([]recommend.Review, len(reviews))
	for i, r := range reviews {
		out[i] = r.ToScorerInput()
	}
	return out
}
