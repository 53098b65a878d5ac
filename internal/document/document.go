//
// reads grading requests posted by web/cli clients and turns them
// into grading entities.
//
// Documents are accepted with either camelCase keys (web client) or
// snake_case keys (files written by the python-era cli), e.g.
//
//	{
//	  "name": "Semester 3",
//	  "previousCgpa": 3.1, "previousCredits": 45,
//	  "normalizeWeights": true,
//	  "gradeScale": {"A": 20, "B+": 10, ...},
//	  "subjects": [
//	    {"name": "Maths", "creditHours": 4,
//	     "components": [{"name": "Final", "weight": 60, "maxMarks": 100,
//	                     "myMarks": 72, "classAvgMarks": 64}]}
//	  ]
//	}
//
// A component may instead be a group of like items sharing one weight,
// split equally or by max marks:
//
//	{"name": "Quizzes", "weight": 10, "distribution": "maxMarks",
//	 "items": [{"maxMarks": 10, "myMarks": 8, "classAvgMarks": 6}, ...]}
//
package document

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/nsip/otf-grade/internal/grading"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

type ComponentRecord struct {
	Name          string  `json:"name" validate:"required"`
	Weight        float64 `json:"weight" validate:"gt=0"`
	MaxMarks      float64 `json:"maxMarks" validate:"gt=0"`
	MyMarks       float64 `json:"myMarks" validate:"gte=0,ltefield=MaxMarks"`
	ClassAvgMarks float64 `json:"classAvgMarks" validate:"gte=0,ltefield=MaxMarks"`
}

type SubjectRecord struct {
	Name        string            `json:"name" validate:"required"`
	CreditHours float64           `json:"creditHours" validate:"gt=0"`
	Components  []ComponentRecord `json:"components" validate:"required,min=1,dive"`
}

//
// Request is one grading request: a semester of subjects, an
// optional prior aggregate and an optional custom grade scale.
//
type Request struct {
	Name             string          `json:"name"`
	Subjects         []SubjectRecord `json:"subjects" validate:"dive"`
	PreviousCgpa     *float64        `json:"previousCgpa" validate:"omitempty,gte=0,lte=4"`
	PreviousCredits  *float64        `json:"previousCredits" validate:"omitempty,gte=0"`
	NormalizeWeights bool            `json:"normalizeWeights"`
	// nil means the default scale
	GradeScale []grading.ThresholdEntry `json:"gradeScale"`
}

//
// Prediction asks for the grade of a single relative-performance
// value, optionally against a custom scale.
//
type Prediction struct {
	RelativePerformance float64                  `json:"relativePerformance"`
	GradeScale          []grading.ThresholdEntry `json:"gradeScale"`
}

var validate = validator.New()

//
// Parse decodes and validates a grading request document.
//
func Parse(data []byte) (*Request, error) {

	if !gjson.ValidBytes(data) {
		return nil, errors.New("grading request is not valid json")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("grading request must be a json object")
	}

	req := &Request{
		Name:             lookup(doc, "name").String(),
		NormalizeWeights: lookup(doc, "normalizeWeights", "normalize_weights").Bool(),
	}

	var err error
	if req.PreviousCgpa, err = optionalNumber(doc, "previousCgpa", "previous_cgpa"); err != nil {
		return nil, err
	}
	if req.PreviousCredits, err = optionalNumber(doc, "previousCredits", "previous_credits"); err != nil {
		return nil, err
	}
	if req.GradeScale, err = parseScale(lookup(doc, "gradeScale", "grade_scale")); err != nil {
		return nil, err
	}

	subjects := lookup(doc, "subjects")
	if subjects.Exists() && !subjects.IsArray() {
		return nil, &grading.ValidationError{Field: "subjects", Reason: "must be a list"}
	}
	for i, s := range subjects.Array() {
		rec, err := parseSubject(s)
		if err != nil {
			return nil, errors.Wrapf(err, "subject %d", i+1)
		}
		req.Subjects = append(req.Subjects, rec)
	}

	if err := check(req); err != nil {
		return nil, err
	}

	return req, nil
}

//
// ParsePrediction decodes a single-value prediction request.
// Non-finite values are rejected here so the scale never sees them.
//
func ParsePrediction(data []byte) (*Prediction, error) {

	if !gjson.ValidBytes(data) {
		return nil, errors.New("prediction request is not valid json")
	}
	doc := gjson.ParseBytes(data)

	rp, err := requiredNumber(doc, "relativePerformance", "relative_performance")
	if err != nil {
		return nil, err
	}
	scale, err := parseScale(lookup(doc, "gradeScale", "grade_scale"))
	if err != nil {
		return nil, err
	}

	return &Prediction{RelativePerformance: rp, GradeScale: scale}, nil
}

func parseSubject(s gjson.Result) (SubjectRecord, error) {

	rec := SubjectRecord{Name: lookup(s, "name").String()}

	var err error
	if rec.CreditHours, err = requiredNumber(s, "creditHours", "credit_hours"); err != nil {
		return rec, err
	}

	for j, c := range lookup(s, "components").Array() {
		if items := lookup(c, "items"); items.Exists() {
			group, err := parseGroup(c, items)
			if err != nil {
				return rec, errors.Wrapf(err, "component %d", j+1)
			}
			rec.Components = append(rec.Components, group...)
			continue
		}
		comp, err := parseComponent(c, true)
		if err != nil {
			return rec, errors.Wrapf(err, "component %d", j+1)
		}
		rec.Components = append(rec.Components, comp)
	}

	return rec, nil
}

func parseComponent(c gjson.Result, withWeight bool) (ComponentRecord, error) {

	comp := ComponentRecord{Name: lookup(c, "name").String()}
	fields := []struct {
		dst  *float64
		keys []string
	}{
		{&comp.Weight, []string{"weight"}},
		{&comp.MaxMarks, []string{"maxMarks", "max_marks"}},
		{&comp.MyMarks, []string{"myMarks", "my_marks"}},
		{&comp.ClassAvgMarks, []string{"classAvgMarks", "class_avg_marks"}},
	}
	// group items take their weight from the group
	if !withWeight {
		fields = fields[1:]
	}

	var err error
	for _, f := range fields {
		if *f.dst, err = requiredNumber(c, f.keys...); err != nil {
			return comp, err
		}
	}
	return comp, nil
}

//
// parseGroup expands a group of like items (e.g. four quizzes sharing
// 10%) into one component per item, splitting the group weight with
// the requested distribution. Unnamed items are numbered after the
// group: "Quizzes 1", "Quizzes 2", ...
//
func parseGroup(c, items gjson.Result) ([]ComponentRecord, error) {

	name := lookup(c, "name").String()
	if name == "" {
		return nil, &grading.ValidationError{Field: "name", Reason: "component group needs a name"}
	}
	if !items.IsArray() {
		return nil, &grading.ValidationError{Field: "items", Reason: "must be a list"}
	}
	total, err := requiredNumber(c, "weight")
	if err != nil {
		return nil, err
	}
	method, err := parseDistribution(lookup(c, "distribution").String())
	if err != nil {
		return nil, err
	}

	var records []ComponentRecord
	var maxMarks []float64
	for i, item := range items.Array() {
		rec, err := parseComponent(item, false)
		if err != nil {
			return nil, errors.Wrapf(err, "%s item %d", name, i+1)
		}
		if rec.Name == "" {
			rec.Name = fmt.Sprintf("%s %d", name, i+1)
		}
		records = append(records, rec)
		maxMarks = append(maxMarks, rec.MaxMarks)
	}

	weights, err := grading.DistributeWeight(total, maxMarks, method)
	if err != nil {
		return nil, errors.Wrapf(err, "group %q", name)
	}
	for i := range records {
		records[i].Weight = weights[i]
	}
	return records, nil
}

// parseDistribution maps a distribution name; blank means equal shares.
func parseDistribution(name string) (grading.Distribution, error) {
	if name == "" {
		return grading.DistributeEqual, nil
	}
	for _, d := range []grading.Distribution{grading.DistributeEqual, grading.DistributeByMaxMarks} {
		if d.String() == name {
			return d, nil
		}
	}
	return 0, &grading.ValidationError{
		Field:  "distribution",
		Reason: fmt.Sprintf("unknown distribution %q, use equal or maxMarks", name),
	}
}

//
// parseScale accepts either a list of {threshold, grade} pairs or an
// object of letter -> threshold, thresholds given in percent.
//
func parseScale(r gjson.Result) ([]grading.ThresholdEntry, error) {

	switch {
	case !r.Exists() || r.Type == gjson.Null:
		return nil, nil

	case r.IsArray():
		entries := []grading.ThresholdEntry{}
		for i, e := range r.Array() {
			pct, err := requiredNumber(e, "threshold", "percentage")
			if err != nil {
				return nil, errors.Wrapf(err, "grade scale entry %d", i+1)
			}
			entries = append(entries, grading.ThresholdEntry{
				Percentage: pct,
				Grade:      lookup(e, "grade", "letter").String(),
			})
		}
		return entries, nil

	case r.IsObject():
		entries := []grading.ThresholdEntry{}
		var err error
		r.ForEach(func(k, v gjson.Result) bool {
			if v.Type != gjson.Number || !finite(v.Float()) {
				err = &grading.ValidationError{
					Field:  "gradeScale." + k.String(),
					Reason: "threshold must be a number",
				}
				return false
			}
			entries = append(entries, grading.ThresholdEntry{Percentage: v.Float(), Grade: k.String()})
			return true
		})
		return entries, err
	}

	return nil, &grading.ValidationError{Field: "gradeScale", Reason: "must be a list or an object"}
}

// lookup returns the first of keys present in r.
func lookup(r gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := r.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func requiredNumber(r gjson.Result, keys ...string) (float64, error) {
	v, err := optionalNumber(r, keys...)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, &grading.ValidationError{Field: keys[0], Reason: "is required"}
	}
	return *v, nil
}

func optionalNumber(r gjson.Result, keys ...string) (*float64, error) {
	v := lookup(r, keys...)
	if !v.Exists() || v.Type == gjson.Null {
		return nil, nil
	}
	if v.Type != gjson.Number {
		return nil, &grading.ValidationError{Field: keys[0], Reason: fmt.Sprintf("%s is not a number", v.Raw)}
	}
	f := v.Float()
	if !finite(f) {
		return nil, &grading.ValidationError{Field: keys[0], Reason: "must be a finite number"}
	}
	return &f, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// check runs the struct-tag rules and reports the first failure.
func check(req *Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(err, "cannot validate grading request")
	}
	fe := verrs[0]
	return &grading.ValidationError{
		Field:  fe.Namespace(),
		Reason: fmt.Sprintf("failed %q rule (got %v)", fe.Tag(), fe.Value()),
	}
}
