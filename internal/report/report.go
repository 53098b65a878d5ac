//
// plain-text rendering of grading summaries for terminals and logs,
// plus the json export document.
//
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/labstack/gommon/color"
	"github.com/nsip/otf-grade/internal/grading"
	"github.com/pkg/errors"
)

type options struct {
	noColor bool
}

type Option func(*options)

// NoColor turns off terminal colouring even when w is a terminal.
func NoColor() Option {
	return func(o *options) { o.noColor = true }
}

//
// colouring is only switched on when the destination is a terminal
//
func newColor(w io.Writer, opts []Option) *color.Color {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	c := color.New()
	c.SetOutput(w)
	if o.noColor {
		c.Disable()
	}
	return c
}

//
// Write renders the semester summary: a component breakdown and the
// predicted grade for each subject, then SGPA (and CGPA when a prior
// aggregate was given).
//
func Write(w io.Writer, summary grading.SemesterSummary, opts ...Option) error {

	c := newColor(w, opts)
	ew := &errWriter{w: w}

	rule := strings.Repeat("#", 70)
	ew.printf("\n%s\nSemester: %s\n%s\n", rule, c.Bold(summary.Name), rule)

	for _, s := range summary.Subjects {
		writeSubject(ew, c, s)
	}

	ew.printf("\n%s\n", rule)
	ew.printf("Semester GPA (SGPA): %s\n", c.Bold(fmt.Sprintf("%.2f", summary.SGPA)))
	if summary.CGPA != nil {
		ew.printf("Cumulative GPA (CGPA): %s\n", c.Bold(fmt.Sprintf("%.2f", *summary.CGPA)))
	}
	ew.printf("Total credits: %g\n", summary.TotalCredits)
	ew.printf("%s\n", rule)

	return ew.err
}

func writeSubject(ew *errWriter, c *color.Color, s grading.SubjectSummary) {

	rule := strings.Repeat("=", 60)
	ew.printf("\n%s\nSubject: %s (%g credits)\n%s\n", rule, s.Name, s.CreditHours, rule)

	ew.printf("\nComponent Breakdown:\n")
	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Component\tWeight\tMy Score\tClass Avg\tRelative")
	fmt.Fprintln(tw, "---------\t------\t--------\t---------\t--------")

	var totalWeight float64
	for _, comp := range s.Components {
		totalWeight += comp.Weight
		fmt.Fprintf(tw, "%s\t%.1f%%\t%g/%g (%.1f%%)\t%g/%g (%.1f%%)\t%+.1f%%\n",
			comp.Name, comp.Weight,
			comp.MyMarks, comp.MaxMarks, comp.MyPercentage,
			comp.ClassAvgMarks, comp.MaxMarks, comp.ClassAvgPercentage,
			comp.RelativePerformancePercentage)
	}
	tw.Flush()

	ew.printf("\nOverall:\n")
	ew.printf("My weighted total: %.1f/%g\n", s.WeightedMyScore, totalWeight)
	ew.printf("Class average: %.1f/%g\n", s.WeightedClassAvg, totalWeight)
	ew.printf("Relative performance: %s\n", relative(c, s.RelativePerformancePercentage))

	ew.printf("\nPredicted Grade: %s (%g points)\n", gradeColor(c, s.GradePoints, s.PredictedGrade), s.GradePoints)
}

func relative(c *color.Color, pct float64) string {
	txt := fmt.Sprintf("%+.1f%%", pct)
	switch {
	case pct > 0:
		return c.Green(txt)
	case pct < 0:
		return c.Red(txt)
	}
	return txt
}

func gradeColor(c *color.Color, points float64, grade string) string {
	switch {
	case points >= 3.0:
		return c.Bold(c.Green(grade))
	case points >= 2.0:
		return c.Bold(c.Yellow(grade))
	}
	return c.Bold(c.Red(grade))
}

//
// WriteScale lists the bands of a grade scale, highest first.
//
func WriteScale(w io.Writer, gs *grading.GradeScale, opts ...Option) error {
	c := newColor(w, opts)
	ew := &errWriter{w: w}
	for _, b := range gs.Bands() {
		ew.printf("%+.0f%% relative to average: %s (%g points)\n",
			b.Threshold*100, gradeColor(c, b.Points, b.Grade), b.Points)
	}
	return ew.err
}

//
// Export writes the summary as an indented json document.
//
func Export(w io.Writer, summary grading.SemesterSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return errors.Wrap(err, "cannot export summary")
	}
	return nil
}

// errWriter keeps the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	fmt.Fprintf(ew, format, args...)
}
