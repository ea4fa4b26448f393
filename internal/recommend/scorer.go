package recommend

import (
	"math"
	"time"
)

// Review is the scorer's view of a single peer review.
type Review struct {
	BookID          string
	Difficulty      int
	ExperienceYears float64
	CreatedAt       time.Time
}

// Components holds the four sub-scores behind a total, each in [0,100].
type Components struct {
	ExperienceMatch float64 `json:"experience_match"`
	Difficulty      float64 `json:"difficulty"`
	PositiveRate    float64 `json:"positive_rate"`
	ReviewCount     float64 `json:"review_count"`
}

// Score is the outcome of scoring one book for one reader.
type Score struct {
	BookID                    string     `json:"book_id"`
	Score                     float64    `json:"score"`
	Reasons                   []string   `json:"reasons"`
	AvgDifficulty             float64    `json:"avg_difficulty"`
	ReviewCount               int        `json:"review_count"`
	ExperienceLevelMatchCount int        `json:"experience_level_match_count"`
	UserLevel                 Level      `json:"-"`
	Components                Components `json:"components"`
}

// Calculate scores a book's reviews for a reader with userYears of experience.
//
// The second return value is false when there are no reviews: that means
// "nothing to go on", which callers must not confuse with a low score.
// Reviews are expected to belong to a single book; the first review's
// BookID is used for the result. Out-of-range inputs are clamped.
func Calculate(reviews []Review, userYears float64) (Score, bool) {
	if len(reviews) == 0 {
		return Score{}, false
	}

	userLevel := Classify(clampYears(userYears))

	var (
		sameLevel     int
		adjacent      = make([]Review, 0, len(reviews))
		difficultySum int
	)
	for _, r := range reviews {
		r = clampReview(r)
		difficultySum += r.Difficulty

		reviewerLevel := Classify(r.ExperienceYears)
		if reviewerLevel == userLevel {
			sameLevel++
		}
		if reviewerLevel.Distance(userLevel) <= 1 {
			adjacent = append(adjacent, r)
		}
	}

	total := len(reviews)
	avg := float64(difficultySum) / float64(total)

	c := Components{
		ExperienceMatch: min(maxScore, maxScore*float64(sameLevel)/float64(total)),
		Difficulty:      difficultyScore(avg, userLevel),
		PositiveRate:    maxScore * positiveFraction(adjacent),
		ReviewCount:     min(maxScore, maxScore*float64(total)/reviewCountSaturation),
	}

	return Score{
		BookID:                    reviews[0].BookID,
		Score:                     round(c.weighted(), 2),
		Reasons:                   Reasons(sameLevel, avg, OptimalRange(userLevel), adjacent, total),
		AvgDifficulty:             round(avg, 1),
		ReviewCount:               total,
		ExperienceLevelMatchCount: sameLevel,
		UserLevel:                 userLevel,
		Components:                c,
	}, true
}

func (c Components) weighted() float64 {
	return experienceMatchWeight*c.ExperienceMatch +
		difficultyWeight*c.Difficulty +
		positiveRateWeight*c.PositiveRate +
		reviewCountWeight*c.ReviewCount
}

// positiveFraction is the share of reviews rating the book at or below
// positiveDifficultyMax. Zero for an empty slice.
func positiveFraction(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var positive int
	for _, r := range reviews {
		if r.Difficulty <= positiveDifficultyMax {
			positive++
		}
	}
	return float64(positive) / float64(len(reviews))
}

func clampReview(r Review) Review {
	r.Difficulty = min(max(r.Difficulty, minDifficulty), maxDifficulty)
	r.ExperienceYears = clampYears(r.ExperienceYears)
	return r
}

func clampYears(years float64) float64 {
	if years < 0 || math.IsNaN(years) {
		return 0
	}
	return years
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
