// Package recommend scores how well a book fits a reader, based on the
// difficulty ratings and experience of the peers who reviewed it.
//
// Everything in this package is pure: no I/O, no shared state. Callers may
// score any number of books concurrently and cache the results freely.
package recommend

// Level is a reader's experience bucket. The underlying value is the
// ordinal used for adjacency checks, so the declaration order matters.
type Level int

// Experience levels, ordered from least to most experienced.
const (
	Beginner Level = iota
	Intermediate
	Expert
)

// Upper bounds (inclusive) of the lower two levels, in years.
const (
	beginnerMaxYears     = 2.0
	intermediateMaxYears = 4.0
)

// Classify maps years of experience onto a level.
// Boundary values belong to the lower level: 2 is Beginner, 4 is Intermediate.
func Classify(years float64) Level {
	switch {
	case years <= beginnerMaxYears:
		return Beginner
	case years <= intermediateMaxYears:
		return Intermediate
	default:
		return Expert
	}
}

// Index returns the level's ordinal (0, 1 or 2).
func (l Level) Index() int {
	return int(l)
}

// Distance returns the number of ordinal steps between two levels.
func (l Level) Distance(other Level) int {
	d := l.Index() - other.Index()
	if d < 0 {
		return -d
	}
	return d
}

// String returns the lowercase level name used in API payloads.
func (l Level) String() string {
	switch l {
	case Beginner:
		return "beginner"
	case Intermediate:
		return "intermediate"
	case Expert:
		return "expert"
	default:
		return "unknown"
	}
}
