package recommend

// Component weights for the total score. They sum to 1.
const (
	experienceMatchWeight = 0.4
	difficultyWeight      = 0.3
	positiveRateWeight    = 0.2
	reviewCountWeight     = 0.1
)

const (
	maxScore = 100.0

	// A book with this many reviews gets the full review-count component.
	reviewCountSaturation = 10

	// Difficulty ratings at or below this count as a positive experience.
	positiveDifficultyMax = 3

	// Floors keep a difficulty mismatch alone from zeroing a book.
	tooEasyFloor = 10.0
	tooHardFloor = 5.0

	minDifficulty = 1
	maxDifficulty = 5
)

// Points lost per unit of difficulty below the level's range.
// Experts lose the most on books that do not challenge them.
var tooEasyPenalty = [...]float64{
	Beginner:     20,
	Intermediate: 25,
	Expert:       35,
}

// Points lost per unit of difficulty above the level's range.
// Beginners lose the most on books that overwhelm them.
var tooHardPenalty = [...]float64{
	Beginner:     60,
	Intermediate: 45,
	Expert:       30,
}

// Thresholds used by the reason generator.
const (
	sameLevelReasonMin    = 3
	positiveRateReasonMin = 0.7
	reviewCountReasonMin  = 5
)
