package grading

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustComponent(t *testing.T, name string, weight, max, mine, avg float64) Component {
	t.Helper()
	c, err := NewComponent(name, weight, max, mine, avg)
	require.NoError(t, err)
	return c
}

func TestComponentDerivedValues(t *testing.T) {
	c := mustComponent(t, "Exam", 100, 100, 80, 70)

	assert.Equal(t, "Exam", c.Name())
	assert.InDelta(t, 80.0, c.MyPercentage(), 1e-9)
	assert.InDelta(t, 70.0, c.ClassAvgPercentage(), 1e-9)
	assert.InDelta(t, 80.0, c.WeightedMyScore(), 1e-9)
	assert.InDelta(t, 70.0, c.WeightedClassAvg(), 1e-9)
	assert.InDelta(t, 10.0/70.0, c.RelativePerformance(), 1e-12)
}

func TestComponentWeightedScaling(t *testing.T) {
	c := mustComponent(t, "Quiz 1", 10, 20, 15, 10)

	assert.InDelta(t, 7.5, c.WeightedMyScore(), 1e-9)
	assert.InDelta(t, 5.0, c.WeightedClassAvg(), 1e-9)
	assert.InDelta(t, 0.5, c.RelativePerformance(), 1e-12)
}

func TestComponentZeroClassAverage(t *testing.T) {
	for _, mine := range []float64{0, 5, 10} {
		c := mustComponent(t, "Lab", 20, 10, mine, 0)
		assert.Equal(t, 0.0, c.RelativePerformance())
	}
}

func TestComponentSignMatchesWeightedDifference(t *testing.T) {
	cases := []struct{ mine, avg float64 }{
		{9, 6}, {3, 6}, {6, 6}, {10, 0.5}, {0, 7},
	}
	for _, tc := range cases {
		c := mustComponent(t, "Item", 25, 10, tc.mine, tc.avg)
		diff := c.WeightedMyScore() - c.WeightedClassAvg()
		rp := c.RelativePerformance()
		switch {
		case diff > 0:
			assert.Greater(t, rp, 0.0)
		case diff < 0:
			assert.Less(t, rp, 0.0)
		default:
			assert.Equal(t, 0.0, rp)
		}
	}
}

func TestNewComponentValidation(t *testing.T) {
	cases := map[string]struct {
		name                   string
		weight, max, mine, avg float64
		field                  string
	}{
		"empty name":      {"", 10, 10, 5, 5, "name"},
		"zero weight":     {"q", 0, 10, 5, 5, "weight"},
		"negative weight": {"q", -1, 10, 5, 5, "weight"},
		"zero max":        {"q", 10, 0, 0, 0, "maxMarks"},
		"negative mine":   {"q", 10, 10, -1, 5, "myMarks"},
		"mine above max":  {"q", 10, 10, 11, 5, "myMarks"},
		"avg above max":   {"q", 10, 10, 5, 10.5, "classAvgMarks"},
		"negative avg":    {"q", 10, 10, 5, -0.1, "classAvgMarks"},
		"nan marks":       {"q", 10, 10, math.NaN(), 5, "myMarks"},
		"infinite weight": {"q", math.Inf(1), 10, 5, 5, "weight"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewComponent(tc.name, tc.weight, tc.max, tc.mine, tc.avg)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			ve, ok := err.(*ValidationError)
			require.True(t, ok)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestComponentBoundaryMarksAccepted(t *testing.T) {
	_, err := NewComponent("Full", 5, 10, 10, 0)
	assert.NoError(t, err)
	_, err = NewComponent("Empty", 5, 10, 0, 10)
	assert.NoError(t, err)
}

func TestNewComponentFieldOrderIsFixed(t *testing.T) {
	// several non-finite fields always report the first in argument order
	for i := 0; i < 20; i++ {
		_, err := NewComponent("q", math.NaN(), math.Inf(1), math.NaN(), math.Inf(-1))
		require.Error(t, err)
		assert.Equal(t, "weight", err.(*ValidationError).Field)
	}
	_, err := NewComponent("q", 10, 10, math.NaN(), math.Inf(1))
	assert.Equal(t, "myMarks", err.(*ValidationError).Field)
}

func TestNewComponentRejectsOverflowingRatio(t *testing.T) {
	// each field is in range but (1 - avg) / avg * 100 overflows
	_, err := NewComponent("Exam", 100, 1, 1, 1e-307)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "relativePerformance", err.(*ValidationError).Field)

	// a tiny but representable ratio is still accepted
	c, err := NewComponent("Exam", 100, 1, 1, 1e-300)
	require.NoError(t, err)
	assert.False(t, math.IsInf(c.RelativePerformance()*100, 0))
}
