package recommend

// Range is a closed interval of average difficulty considered comfortable
// for a level.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// OptimalRange returns the comfortable difficulty interval for a level.
// Neighbouring ranges overlap, so one average can suit two levels at once.
func OptimalRange(l Level) Range {
	switch l {
	case Beginner:
		return Range{Min: 1, Max: 2.5}
	case Intermediate:
		return Range{Min: 2, Max: 4}
	default:
		return Range{Min: 3, Max: 5}
	}
}

// difficultyScore rates how well avg fits the level's range.
// Books that are too easy and too hard are penalised on separate,
// level-dependent slopes, each with its own floor.
func difficultyScore(avg float64, l Level) float64 {
	r := OptimalRange(l)
	switch {
	case r.Contains(avg):
		return maxScore
	case avg < r.Min:
		return max(tooEasyFloor, maxScore-(r.Min-avg)*tooEasyPenalty[l])
	default:
		return max(tooHardFloor, maxScore-(avg-r.Max)*tooHardPenalty[l])
	}
}
