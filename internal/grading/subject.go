package grading

import (
	"github.com/pkg/errors"
)

//
// Subject is a course made up of graded components, carrying the
// credit hours used to weight it within a semester.
//
// Component order is kept for display only; none of the totals
// depend on it.
//
type Subject struct {
	name        string
	creditHours float64
	components  []Component
}

func NewSubject(name string, creditHours float64, components []Component) (Subject, error) {

	if !finite(creditHours) || creditHours <= 0 {
		return Subject{}, errors.Wrapf(
			invalid("creditHours", "must be a number greater than 0, got %g", creditHours),
			"subject %q", name)
	}
	if len(components) == 0 {
		return Subject{}, errors.Wrapf(
			invalid("components", "a subject needs at least one component"),
			"subject %q", name)
	}

	cc := make([]Component, len(components))
	copy(cc, components)
	s := Subject{name: name, creditHours: creditHours, components: cc}

	if err := checkFinite([]namedValue{
		{"totalMyMarks", s.TotalMyMarks()},
		{"totalMaxMarks", s.TotalMaxMarks()},
		{"totalClassAvgMarks", s.TotalClassAvgMarks()},
		{"weightedTotalMyScore", s.WeightedTotalMyScore()},
		{"weightedTotalClassAvg", s.WeightedTotalClassAvg()},
		{"overallRelativePerformance", s.OverallRelativePerformance() * 100},
	}); err != nil {
		return Subject{}, errors.Wrapf(err, "subject %q", name)
	}

	return s, nil
}

func (s Subject) Name() string         { return s.name }
func (s Subject) CreditHours() float64 { return s.creditHours }

// Components returns a copy of the component sequence.
func (s Subject) Components() []Component {
	cc := make([]Component, len(s.components))
	copy(cc, s.components)
	return cc
}

func (s Subject) sum(f func(Component) float64) float64 {
	values := make([]float64, len(s.components))
	for i, c := range s.components {
		values[i] = f(c)
	}
	return orderedSum(values)
}

func (s Subject) TotalMyMarks() float64       { return s.sum(Component.MyMarks) }
func (s Subject) TotalMaxMarks() float64      { return s.sum(Component.MaxMarks) }
func (s Subject) TotalClassAvgMarks() float64 { return s.sum(Component.ClassAvgMarks) }

func (s Subject) WeightedTotalMyScore() float64  { return s.sum(Component.WeightedMyScore) }
func (s Subject) WeightedTotalClassAvg() float64 { return s.sum(Component.WeightedClassAvg) }

//
// MyPercentage is the raw (unweighted) percentage across all
// components, 0 if there are no max marks to divide by.
//
func (s Subject) MyPercentage() float64 {
	totalMax := s.TotalMaxMarks()
	if totalMax == 0 {
		return 0
	}
	return s.TotalMyMarks() / totalMax * 100
}

func (s Subject) ClassAvgPercentage() float64 {
	totalMax := s.TotalMaxMarks()
	if totalMax == 0 {
		return 0
	}
	return s.TotalClassAvgMarks() / totalMax * 100
}

//
// OverallRelativePerformance compares the weighted totals; this is
// the value a GradeScale classifies. Weights need not sum to 100.
//
func (s Subject) OverallRelativePerformance() float64 {
	return relativeRatio(s.WeightedTotalMyScore(), s.WeightedTotalClassAvg())
}
