package recommend

// Reason texts, in the order they are evaluated. Clients usually show the
// first two, so the order is part of the contract.
const (
	ReasonSameLevel    = "matches reviewers at your experience level."
	ReasonDifficultyOK = "difficulty level is appropriate for you."
	ReasonHighlyRated  = "highly rated by similar readers."
	ReasonWellReviewed = "backed by a substantial number of reviews."
	ReasonFallback     = "a recommended pick"
)

// Reasons explains a score using the intermediate values Calculate already
// computed. It always returns at least one reason.
func Reasons(sameLevelCount int, avgDifficulty float64, r Range, adjacent []Review, totalReviews int) []string {
	reasons := make([]string, 0, 4)

	if sameLevelCount >= sameLevelReasonMin {
		reasons = append(reasons, ReasonSameLevel)
	}
	if r.Contains(avgDifficulty) {
		reasons = append(reasons, ReasonDifficultyOK)
	}
	if len(adjacent) > 0 && positiveFraction(adjacent) >= positiveRateReasonMin {
		reasons = append(reasons, ReasonHighlyRated)
	}
	if totalReviews >= reviewCountReasonMin {
		reasons = append(reasons, ReasonWellReviewed)
	}

	if len(reasons) == 0 {
		reasons = append(reasons, ReasonFallback)
	}
	return reasons
}
