package recommend

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewsWith(bookID string, pairs ...[2]float64) []Review {
	out := make([]Review, len(pairs))
	for i, p := range pairs {
		out[i] = Review{BookID: bookID, Difficulty: int(p[0]), ExperienceYears: p[1]}
	}
	return out
}

func TestCalculate_NoReviews(t *testing.T) {
	for _, years := range []float64{0, 2, 3.5, 40} {
		got, ok := Calculate(nil, years)
		assert.False(t, ok, "years=%v", years)
		assert.Equal(t, Score{}, got)

		_, ok = Calculate([]Review{}, years)
		assert.False(t, ok)
	}
}

func TestCalculate_BeginnerMixedReviewers(t *testing.T) {
	reviews := reviewsWith("book-a", [2]float64{2, 1}, [2]float64{2, 1.5}, [2]float64{4, 6})

	got, ok := Calculate(reviews, 1)
	require.True(t, ok)

	assert.Equal(t, "book-a", got.BookID)
	assert.Equal(t, Beginner, got.UserLevel)
	assert.Equal(t, 3, got.ReviewCount)
	assert.Equal(t, 2, got.ExperienceLevelMatchCount)
	assert.InDelta(t, 2.7, got.AvgDifficulty, 1e-9)

	assert.InDelta(t, 66.67, got.Components.ExperienceMatch, 0.01)
	// (8/3 - 2.5) * 60 = 10 points off for being too hard.
	assert.InDelta(t, 90, got.Components.Difficulty, 1e-9)
	// The expert review is two levels away and excluded.
	assert.InDelta(t, 100, got.Components.PositiveRate, 1e-9)
	assert.InDelta(t, 30, got.Components.ReviewCount, 1e-9)

	assert.InDelta(t, 76.67, got.Score, 1e-9)
	assert.Equal(t, []string{ReasonHighlyRated}, got.Reasons)
}

func TestCalculate_SingleExpertReview(t *testing.T) {
	got, ok := Calculate(reviewsWith("book-b", [2]float64{5, 10}), 10)
	require.True(t, ok)

	assert.Equal(t, Expert, got.UserLevel)
	assert.InDelta(t, 100, got.Components.Difficulty, 1e-9)
	assert.InDelta(t, 100, got.Components.ExperienceMatch, 1e-9)
	assert.InDelta(t, 0, got.Components.PositiveRate, 1e-9)
	assert.InDelta(t, 10, got.Components.ReviewCount, 1e-9)
	assert.InDelta(t, 71.0, got.Score, 1e-9)
	assert.Equal(t, 5.0, got.AvgDifficulty)
	assert.Equal(t, []string{ReasonDifficultyOK}, got.Reasons)
}

func TestCalculate_DifficultyAtRangeBounds(t *testing.T) {
	tests := []struct {
		name      string
		userYears float64
		reviews   []Review
	}{
		{"beginner max", 1, reviewsWith("b", [2]float64{2, 1}, [2]float64{3, 1})},
		{"intermediate min", 3, reviewsWith("b", [2]float64{2, 3}, [2]float64{2, 3})},
		{"intermediate max", 3, reviewsWith("b", [2]float64{4, 3}, [2]float64{4, 3})},
		{"expert min", 8, reviewsWith("b", [2]float64{3, 8})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Calculate(tt.reviews, tt.userYears)
			require.True(t, ok)
			assert.InDelta(t, 100, got.Components.Difficulty, 1e-9)
			assert.Contains(t, got.Reasons, ReasonDifficultyOK)
		})
	}
}

func TestCalculate_ReviewCountSaturates(t *testing.T) {
	for _, tt := range []struct {
		n    int
		want float64
	}{
		{1, 10},
		{5, 50},
		{10, 100},
		{50, 100},
	} {
		reviews := make([]Review, tt.n)
		for i := range reviews {
			reviews[i] = Review{BookID: "b", Difficulty: 3, ExperienceYears: 3}
		}

		got, ok := Calculate(reviews, 3)
		require.True(t, ok)
		assert.InDelta(t, tt.want, got.Components.ReviewCount, 1e-9, "n=%d", tt.n)
	}
}

func TestCalculate_AdjacentLevelsFeedPositiveRate(t *testing.T) {
	// Intermediate reader: beginners and experts are both adjacent.
	reviews := reviewsWith("b",
		[2]float64{1, 0},  // beginner, positive
		[2]float64{5, 10}, // expert, negative
		[2]float64{3, 3},  // intermediate, positive
		[2]float64{4, 4},  // intermediate, negative
	)

	got, ok := Calculate(reviews, 3)
	require.True(t, ok)
	assert.InDelta(t, 50, got.Components.PositiveRate, 1e-9)
	assert.Equal(t, 2, got.ExperienceLevelMatchCount)
}

func TestCalculate_NoAdjacentReviewers(t *testing.T) {
	// Expert reader, only beginner reviews: nothing adjacent.
	reviews := reviewsWith("b", [2]float64{1, 0}, [2]float64{2, 1})

	got, ok := Calculate(reviews, 20)
	require.True(t, ok)
	assert.Zero(t, got.Components.PositiveRate)
	assert.Zero(t, got.ExperienceLevelMatchCount)
	assert.Equal(t, []string{ReasonFallback}, got.Reasons)
}

func TestCalculate_ClampsOutOfRangeInput(t *testing.T) {
	dirty := []Review{
		{BookID: "b", Difficulty: 9, ExperienceYears: -3},
		{BookID: "b", Difficulty: -2, ExperienceYears: 1},
	}
	clean := []Review{
		{BookID: "b", Difficulty: 5, ExperienceYears: 0},
		{BookID: "b", Difficulty: 1, ExperienceYears: 1},
	}

	gotDirty, ok := Calculate(dirty, -1)
	require.True(t, ok)
	gotClean, ok := Calculate(clean, 0)
	require.True(t, ok)

	assert.Equal(t, gotClean, gotDirty)
	assert.InDelta(t, 3.0, gotDirty.AvgDifficulty, 1e-9)
	// Inputs are not mutated.
	assert.Equal(t, 9, dirty[0].Difficulty)
}

func TestCalculate_Idempotent(t *testing.T) {
	reviews := reviewsWith("b", [2]float64{2, 1}, [2]float64{4, 3}, [2]float64{5, 9}, [2]float64{3, 2.5})

	first, ok := Calculate(reviews, 2.5)
	require.True(t, ok)
	second, ok := Calculate(reviews, 2.5)
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func TestCalculate_OutputBoundsHoldForRandomInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for range 2000 {
		n := 1 + rng.IntN(30)
		reviews := make([]Review, n)
		for i := range reviews {
			reviews[i] = Review{
				BookID:          "b",
				Difficulty:      1 + rng.IntN(5),
				ExperienceYears: rng.Float64() * 12,
			}
		}
		years := rng.Float64() * 12

		got, ok := Calculate(reviews, years)
		require.True(t, ok)

		assert.GreaterOrEqual(t, got.Score, 0.0)
		assert.LessOrEqual(t, got.Score, 100.0)
		assert.GreaterOrEqual(t, got.AvgDifficulty, 1.0)
		assert.LessOrEqual(t, got.AvgDifficulty, 5.0)
		assert.LessOrEqual(t, got.ExperienceLevelMatchCount, got.ReviewCount)
		assert.GreaterOrEqual(t, len(got.Reasons), 1)
		assert.LessOrEqual(t, len(got.Reasons), 4)
	}
}
