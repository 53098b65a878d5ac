package grading

//
// Semester groups the subjects taken in one term, optionally with
// the cumulative GPA and credit count carried forward from earlier
// terms.
//
type Semester struct {
	name            string
	subjects        []Subject
	previousCgpa    *float64
	previousCredits *float64
}

//
// NewSemester builds a semester. previousCgpa and previousCredits
// may be nil; a prior aggregate is only used when both are given.
//
func NewSemester(name string, subjects []Subject, previousCgpa, previousCredits *float64) (Semester, error) {

	if previousCgpa != nil {
		v := *previousCgpa
		if !finite(v) || v < 0 || v > 4 {
			return Semester{}, invalid("previousCgpa", "must be between 0 and 4, got %g", v)
		}
	}
	if previousCredits != nil {
		v := *previousCredits
		if !finite(v) || v < 0 {
			return Semester{}, invalid("previousCredits", "must be 0 or more, got %g", v)
		}
	}

	ss := make([]Subject, len(subjects))
	copy(ss, subjects)

	sem := Semester{
		name:            name,
		subjects:        ss,
		previousCgpa:    copyFloat(previousCgpa),
		previousCredits: copyFloat(previousCredits),
	}

	// grade points never exceed 4, so these bound every intermediate of SGPA/CGPA
	current := sem.TotalCredits()
	bounds := []namedValue{{"totalCredits", current * 4}}
	if sem.HasPrior() {
		bounds = append(bounds,
			namedValue{"previousCredits", (*previousCredits + current) * 4},
			namedValue{"previousCgpa", *previousCgpa * *previousCredits},
		)
	}
	if err := checkFinite(bounds); err != nil {
		return Semester{}, err
	}

	return sem, nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (s Semester) Name() string { return s.name }

// Subjects returns a copy of the subject sequence.
func (s Semester) Subjects() []Subject {
	ss := make([]Subject, len(s.subjects))
	copy(ss, s.subjects)
	return ss
}

func (s Semester) PreviousCgpa() *float64    { return copyFloat(s.previousCgpa) }
func (s Semester) PreviousCredits() *float64 { return copyFloat(s.previousCredits) }

// HasPrior is true only when both prior values are present.
func (s Semester) HasPrior() bool {
	return s.previousCgpa != nil && s.previousCredits != nil
}

// creditsOf is the credit weight a subject contributes; malformed
// credit hours count as none.
func creditsOf(sub Subject) float64 {
	if !finite(sub.creditHours) || sub.creditHours <= 0 {
		return 0
	}
	return sub.creditHours
}

// TotalCredits sums the credit hours of this semester's subjects.
func (s Semester) TotalCredits() float64 {
	credits := make([]float64, len(s.subjects))
	for i, sub := range s.subjects {
		credits[i] = creditsOf(sub)
	}
	return orderedSum(credits)
}

//
// CalculateSGPA is the credit-weighted mean of the grade points each
// subject earns on the given scale. An empty semester, or one with no
// credit hours, has an SGPA of 0.
//
func (s Semester) CalculateSGPA(gs *GradeScale) float64 {

	if len(s.subjects) == 0 {
		return 0
	}
	totalCredits := s.TotalCredits()
	if totalCredits == 0 {
		return 0
	}

	creditPoints := make([]float64, 0, len(s.subjects))
	for _, sub := range s.subjects {
		credits := creditsOf(sub)
		if credits == 0 {
			continue
		}
		_, points := gs.PredictGrade(sub.OverallRelativePerformance())
		creditPoints = append(creditPoints, points*credits)
	}

	return orderedSum(creditPoints) / totalCredits
}

//
// CalculateCGPA folds this semester's SGPA into the prior aggregate.
// Without a complete prior aggregate the CGPA is the SGPA.
//
func (s Semester) CalculateCGPA(gs *GradeScale) float64 {

	if !s.HasPrior() {
		return s.CalculateSGPA(gs)
	}

	sgpa := s.CalculateSGPA(gs)
	currentCredits := s.TotalCredits()
	prevCgpa, prevCredits := *s.previousCgpa, *s.previousCredits

	totalCredits := prevCredits + currentCredits
	if totalCredits == 0 {
		return 0
	}

	return (prevCgpa*prevCredits + sgpa*currentCredits) / totalCredits
}
