package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

// subjectAt builds a one-component subject with the requested relative performance.
func subjectAt(t *testing.T, name string, credits, mine, avg float64) Subject {
	t.Helper()
	return mustSubject(t, name, credits, mustComponent(t, name+" exam", 100, 100, mine, avg))
}

func TestEmptySemester(t *testing.T) {
	sem, err := NewSemester("S", nil, nil, nil)
	require.NoError(t, err)

	gs := DefaultGradeScale()
	assert.Equal(t, 0.0, sem.CalculateSGPA(gs))
	assert.Equal(t, 0.0, sem.CalculateCGPA(gs))
	assert.Equal(t, 0.0, sem.TotalCredits())
}

func TestSGPA(t *testing.T) {
	gs := DefaultGradeScale()
	sem, err := NewSemester("Fall", []Subject{
		subjectAt(t, "Maths", 4, 60, 50),   // +20% -> A
		subjectAt(t, "English", 3, 50, 50), // 0% -> C+
		subjectAt(t, "Biology", 2, 40, 50), // -20% -> F
	}, nil, nil)
	require.NoError(t, err)

	want := (4*4.0 + 3*2.5 + 2*0.0) / 9
	assert.InDelta(t, want, sem.CalculateSGPA(gs), 1e-12)
	assert.Equal(t, 9.0, sem.TotalCredits())
}

func TestCGPAWithoutPriorEqualsSGPA(t *testing.T) {
	gs := DefaultGradeScale()
	subjects := []Subject{
		subjectAt(t, "Maths", 4, 77, 61),
		subjectAt(t, "English", 3, 43, 51),
	}

	for _, prior := range [][2]*float64{
		{nil, nil},
		{float(3.2), nil},
		{nil, float(40)},
	} {
		sem, err := NewSemester("Spring", subjects, prior[0], prior[1])
		require.NoError(t, err)
		assert.False(t, sem.HasPrior())
		assert.Equal(t, sem.CalculateSGPA(gs), sem.CalculateCGPA(gs))
	}
}

func TestCGPACombination(t *testing.T) {
	gs := DefaultGradeScale()
	sem, err := NewSemester("Year 2", []Subject{
		subjectAt(t, "Algorithms", 12, 90, 60), // A
		subjectAt(t, "Ethics", 3, 49, 50),      // C
	}, float(3.0), float(30))
	require.NoError(t, err)

	assert.InDelta(t, 3.6, sem.CalculateSGPA(gs), 1e-12)
	assert.InDelta(t, 3.2, sem.CalculateCGPA(gs), 1e-12)
}

func TestCGPAZeroTotalCredits(t *testing.T) {
	sem, err := NewSemester("Nothing", nil, float(3.5), float(0))
	require.NoError(t, err)
	assert.True(t, sem.HasPrior())
	assert.Equal(t, 0.0, sem.CalculateCGPA(DefaultGradeScale()))
}

func TestCGPAPriorOnlySemesterCredits(t *testing.T) {
	sem, err := NewSemester("Gap", nil, float(3.5), float(20))
	require.NoError(t, err)
	assert.InDelta(t, 3.5, sem.CalculateCGPA(DefaultGradeScale()), 1e-12)
}

func TestSemesterIdempotent(t *testing.T) {
	gs := DefaultGradeScale()
	sem, err := NewSemester("Fall", []Subject{
		subjectAt(t, "A", 3.5, 71.3, 64.9),
		subjectAt(t, "B", 2.25, 38.1, 41.7),
	}, float(2.91), float(47.5))
	require.NoError(t, err)

	assert.Equal(t, sem.CalculateSGPA(gs), sem.CalculateSGPA(gs))
	assert.Equal(t, sem.CalculateCGPA(gs), sem.CalculateCGPA(gs))
}

func TestSemesterSubjectOrderIndependence(t *testing.T) {
	gs := DefaultGradeScale()
	a := subjectAt(t, "A", 3.5, 71.3, 64.9)
	b := subjectAt(t, "B", 2.25, 38.1, 41.7)
	c := subjectAt(t, "C", 1.75, 55.5, 50.2)

	s1, err := NewSemester("X", []Subject{a, b, c}, float(3.1), float(17))
	require.NoError(t, err)
	s2, err := NewSemester("X", []Subject{c, b, a}, float(3.1), float(17))
	require.NoError(t, err)

	assert.Equal(t, s1.TotalCredits(), s2.TotalCredits())
	assert.Equal(t, s1.CalculateSGPA(gs), s2.CalculateSGPA(gs))
	assert.Equal(t, s1.CalculateCGPA(gs), s2.CalculateCGPA(gs))
}

func TestSGPASkipsMalformedCredits(t *testing.T) {
	gs := DefaultGradeScale()
	good := subjectAt(t, "Good", 3, 60, 50)
	// a zero value Subject never passed through NewSubject
	sem, err := NewSemester("Odd", []Subject{good, {}}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 3.0, sem.TotalCredits())
	assert.InDelta(t, 4.0, sem.CalculateSGPA(gs), 1e-12)
}

func TestNewSemesterValidation(t *testing.T) {
	_, err := NewSemester("S", nil, float(4.5), float(10))
	assert.True(t, IsValidation(err))

	_, err = NewSemester("S", nil, float(3), float(-1))
	assert.True(t, IsValidation(err))
}

func TestSemesterCopiesPrior(t *testing.T) {
	prev := 3.0
	sem, err := NewSemester("S", nil, &prev, float(10))
	require.NoError(t, err)

	prev = 1.0
	assert.Equal(t, 3.0, *sem.PreviousCgpa())
}

func TestNewSemesterRejectsOverflowingCredits(t *testing.T) {
	huge := subjectAt(t, "Huge", 1e308, 60, 50)

	_, err := NewSemester("S", []Subject{huge}, nil, nil)
	assert.True(t, IsValidation(err))

	_, err = NewSemester("S", nil, float(4), float(1e308))
	assert.True(t, IsValidation(err))
}
