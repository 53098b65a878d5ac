package grading

import (
	"sort"
)

//
// Band maps a relative-performance cut-point to a grade.
// A Threshold of 0.20 means "20% above the class average".
//
type Band struct {
	Threshold float64 `json:"threshold"`
	Grade     string  `json:"grade"`
	Points    float64 `json:"points"`
}

//
// GradeScale classifies relative performance into grades.
// The band table is sorted once, highest threshold first, and never
// changes afterwards, so one scale can be shared by every
// classification in a session.
//
type GradeScale struct {
	bands []Band
}

// CanonicalPoints is the fixed letter to grade-point table.
var CanonicalPoints = map[string]float64{
	"A":  4.0,
	"B+": 3.5,
	"B":  3.0,
	"C+": 2.5,
	"C":  2.0,
	"D+": 1.5,
	"D":  1.0,
	"F":  0.0,
}

// CanonicalLetters lists the canonical letters best first.
var CanonicalLetters = []string{"A", "B+", "B", "C+", "C", "D+", "D", "F"}

// GradePoints looks up the canonical points for a letter grade.
func GradePoints(letter string) (float64, bool) {
	p, ok := CanonicalPoints[letter]
	return p, ok
}

func NewGradeScale(bands []Band) (*GradeScale, error) {

	if len(bands) == 0 {
		return nil, invalid("thresholds", "a grade scale needs at least one threshold")
	}

	seen := make(map[float64]bool, len(bands))
	sorted := make([]Band, 0, len(bands))
	for _, b := range bands {
		if !finite(b.Threshold) {
			return nil, invalid("threshold", "%v is not a finite number", b.Threshold)
		}
		if seen[b.Threshold] {
			return nil, invalid("threshold", "duplicate threshold %g", b.Threshold)
		}
		if b.Grade == "" {
			return nil, invalid("grade", "threshold %g has no grade letter", b.Threshold)
		}
		if !finite(b.Points) || b.Points < 0 || b.Points > 4 {
			return nil, invalid("points", "grade %s points must be between 0 and 4, got %g", b.Grade, b.Points)
		}
		seen[b.Threshold] = true
		sorted = append(sorted, b)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})

	return &GradeScale{bands: sorted}, nil
}

//
// ThresholdEntry is one row of a user-customized scale: the
// threshold as a percentage relative to the class average and the
// letter it awards.
//
type ThresholdEntry struct {
	Percentage float64 `json:"threshold"`
	Grade      string  `json:"grade"`
}

//
// NewCustomGradeScale builds a scale from (percentage, letter) pairs,
// taking grade points from the canonical table.
//
func NewCustomGradeScale(entries []ThresholdEntry) (*GradeScale, error) {
	bands := make([]Band, 0, len(entries))
	for _, e := range entries {
		points, ok := GradePoints(e.Grade)
		if !ok {
			return nil, invalid("grade", "unknown grade letter %q", e.Grade)
		}
		bands = append(bands, Band{
			Threshold: e.Percentage / 100,
			Grade:     e.Grade,
			Points:    points,
		})
	}
	return NewGradeScale(bands)
}

var defaultBands = []Band{
	{Threshold: 0.20, Grade: "A", Points: 4.0},
	{Threshold: 0.10, Grade: "B+", Points: 3.5},
	{Threshold: 0.05, Grade: "B", Points: 3.0},
	{Threshold: 0.00, Grade: "C+", Points: 2.5},
	{Threshold: -0.05, Grade: "C", Points: 2.0},
	{Threshold: -0.10, Grade: "D+", Points: 1.5},
	{Threshold: -0.15, Grade: "D", Points: 1.0},
	{Threshold: -0.20, Grade: "F", Points: 0.0},
}

var defaultScale = func() *GradeScale {
	gs, err := NewGradeScale(defaultBands)
	if err != nil {
		panic(err)
	}
	return gs
}()

//
// DefaultGradeScale returns the built-in scale (+20% and above is an A).
// The same instance is returned on every call.
//
func DefaultGradeScale() *GradeScale {
	return defaultScale
}

//
// PredictGrade returns the band of the highest threshold that
// relativePerformance reaches. Anything below every threshold gets
// the lowest band; there is no grade under the floor.
//
// Callers should reject NaN/Inf before calling.
//
func (gs *GradeScale) PredictGrade(relativePerformance float64) (string, float64) {
	for _, b := range gs.bands {
		if relativePerformance >= b.Threshold {
			return b.Grade, b.Points
		}
	}
	floor := gs.bands[len(gs.bands)-1]
	return floor.Grade, floor.Points
}

// Bands returns the band table, highest threshold first.
func (gs *GradeScale) Bands() []Band {
	out := make([]Band, len(gs.bands))
	copy(out, gs.bands)
	return out
}
