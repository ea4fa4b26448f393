package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		years float64
		want  Level
	}{
		{0, Beginner},
		{1.5, Beginner},
		{2, Beginner},
		{2.01, Intermediate},
		{3, Intermediate},
		{4, Intermediate},
		{4.01, Expert},
		{25, Expert},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.years), "years=%v", tt.years)
	}
}

func TestLevel_IndexAndDistance(t *testing.T) {
	assert.Equal(t, 0, Beginner.Index())
	assert.Equal(t, 1, Intermediate.Index())
	assert.Equal(t, 2, Expert.Index())

	assert.Equal(t, 0, Expert.Distance(Expert))
	assert.Equal(t, 1, Beginner.Distance(Intermediate))
	assert.Equal(t, 1, Expert.Distance(Intermediate))
	assert.Equal(t, 2, Beginner.Distance(Expert))
	assert.Equal(t, 2, Expert.Distance(Beginner))
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "beginner", Beginner.String())
	assert.Equal(t, "intermediate", Intermediate.String())
	assert.Equal(t, "expert", Expert.String())
	assert.Equal(t, "unknown", Level(7).String())
}

func TestOptimalRange(t *testing.T) {
	assert.Equal(t, Range{Min: 1, Max: 2.5}, OptimalRange(Beginner))
	assert.Equal(t, Range{Min: 2, Max: 4}, OptimalRange(Intermediate))
	assert.Equal(t, Range{Min: 3, Max: 5}, OptimalRange(Expert))
}

func TestRange_ContainsIsInclusive(t *testing.T) {
	r := OptimalRange(Intermediate)

	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.True(t, r.Contains(3.3))
	assert.False(t, r.Contains(1.99))
	assert.False(t, r.Contains(4.01))
}

func TestDifficultyScore(t *testing.T) {
	tests := []struct {
		name  string
		avg   float64
		level Level
		want  float64
	}{
		{"beginner at upper bound", 2.5, Beginner, 100},
		{"intermediate at lower bound", 2, Intermediate, 100},
		{"expert at upper bound", 5, Expert, 100},
		{"beginner one above", 3.5, Beginner, 40},
		{"intermediate one above", 5, Intermediate, 55},
		{"expert one below", 2, Expert, 65},
		{"expert two below", 1, Expert, 30},
		{"intermediate one below", 1, Intermediate, 75},
		{"beginner far above hits floor", 5, Beginner, 5},
		{"too easy floor", -10, Expert, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, difficultyScore(tt.avg, tt.level), 1e-9)
		})
	}
}
