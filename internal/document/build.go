package document

import (
	"github.com/nsip/otf-grade/internal/grading"
	"github.com/pkg/errors"
)

//
// Build constructs the semester and the grade scale the request asks
// for. Component weights are rescaled to 100 per subject when the
// request sets normalizeWeights.
//
func (r *Request) Build() (grading.Semester, *grading.GradeScale, error) {

	gs, err := r.Scale()
	if err != nil {
		return grading.Semester{}, nil, err
	}

	subjects := make([]grading.Subject, 0, len(r.Subjects))
	for i, sr := range r.Subjects {
		sub, err := sr.build(r.NormalizeWeights)
		if err != nil {
			return grading.Semester{}, nil, errors.Wrapf(err, "subject %d", i+1)
		}
		subjects = append(subjects, sub)
	}

	sem, err := grading.NewSemester(r.Name, subjects, r.PreviousCgpa, r.PreviousCredits)
	if err != nil {
		return grading.Semester{}, nil, err
	}

	return sem, gs, nil
}

func (sr SubjectRecord) build(normalize bool) (grading.Subject, error) {

	components := make([]grading.Component, 0, len(sr.Components))
	for j, cr := range sr.Components {
		c, err := grading.NewComponent(cr.Name, cr.Weight, cr.MaxMarks, cr.MyMarks, cr.ClassAvgMarks)
		if err != nil {
			return grading.Subject{}, errors.Wrapf(err, "component %d", j+1)
		}
		components = append(components, c)
	}

	if normalize && len(components) > 0 {
		var err error
		if components, err = grading.NormalizeWeights(components); err != nil {
			return grading.Subject{}, err
		}
	}

	return grading.NewSubject(sr.Name, sr.CreditHours, components)
}

// Scale returns the grade scale the request asks for.
func (r *Request) Scale() (*grading.GradeScale, error) {
	return scaleFor(r.GradeScale)
}

// Scale returns the grade scale the prediction should use.
func (p *Prediction) Scale() (*grading.GradeScale, error) {
	return scaleFor(p.GradeScale)
}

func scaleFor(entries []grading.ThresholdEntry) (*grading.GradeScale, error) {
	if entries == nil {
		return grading.DefaultGradeScale(), nil
	}
	gs, err := grading.NewCustomGradeScale(entries)
	if err != nil {
		return nil, errors.Wrap(err, "grade scale")
	}
	return gs, nil
}
