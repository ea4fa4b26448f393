package domain

import (
	"time"

	"github.com/bookcircle/bookcircle-server/internal/recommend"
)

// MaxExperienceYears bounds self-reported experience.
const MaxExperienceYears = 80

// Profile holds what the recommender knows about a reader.
type Profile struct {
	UpdatedAt       time.Time `json:"updated_at"`
	UserID          string    `json:"user_id"`
	DisplayName     string    `json:"display_name"`
	ExperienceYears float64   `json:"experience_years"`
}

// NewProfile returns a default profile for a reader with no history.
func NewProfile(userID string) *Profile {
	return &Profile{UserID: userID, UpdatedAt: time.Now()}
}

// Level classifies the reader's experience.
func (p *Profile) Level() recommend.Level {
	return recommend.Classify(p.ExperienceYears)
}
