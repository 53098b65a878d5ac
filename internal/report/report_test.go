package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nsip/otf-grade/internal/grading"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary(t *testing.T, withPrior bool) grading.SemesterSummary {
	t.Helper()
	exam, err := grading.NewComponent("Exam", 100, 100, 80, 70)
	require.NoError(t, err)
	physics, err := grading.NewSubject("Physics", 3, []grading.Component{exam})
	require.NoError(t, err)

	var prevCgpa, prevCredits *float64
	if withPrior {
		a, b := 3.0, 30.0
		prevCgpa, prevCredits = &a, &b
	}
	sem, err := grading.NewSemester("Fall", []grading.Subject{physics}, prevCgpa, prevCredits)
	require.NoError(t, err)

	return grading.Summarize(sem, grading.DefaultGradeScale())
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSummary(t, false), NoColor()))

	out := buf.String()
	assert.Contains(t, out, "Semester: Fall")
	assert.Contains(t, out, "Subject: Physics (3 credits)")
	assert.Contains(t, out, "80/100 (80.0%)")
	assert.Contains(t, out, "Relative performance: +14.3%")
	assert.Contains(t, out, "Predicted Grade: B+ (3.5 points)")
	assert.Contains(t, out, "Semester GPA (SGPA): 3.50")
	assert.NotContains(t, out, "CGPA)")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteWithPrior(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSummary(t, true), NoColor()))
	// (3.0*30 + 3.5*3) / 33
	assert.Contains(t, buf.String(), "Cumulative GPA (CGPA): 3.05")
}

func TestWriteScale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScale(&buf, grading.DefaultGradeScale(), NoColor()))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 8)
	assert.Equal(t, "+20% relative to average: A (4 points)", string(lines[0]))
	assert.Equal(t, "-20% relative to average: F (0 points)", string(lines[7]))
}

func TestExport(t *testing.T) {
	want := testSummary(t, true)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, want))

	var got grading.SemesterSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, want, got)
}
