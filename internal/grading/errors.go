package grading

import (
	"fmt"
	"math"
	"sort"

	"github.com/pkg/errors"
)

//
// ValidationError reports a field that failed construction-time
// checks. It is the only error the grading core raises.
//
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

//
// IsValidation reports whether err (or the cause of a wrapped err)
// is a ValidationError.
//
func IsValidation(err error) bool {
	if err == nil {
		return false
	}
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

type namedValue struct {
	field string
	value float64
}

// checkFinite reports the first value, in the given order, that is NaN or ±Inf.
func checkFinite(values []namedValue) error {
	for _, nv := range values {
		if !finite(nv.value) {
			return invalid(nv.field, "%v is not a finite number", nv.value)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// relativeRatio is the one place the zero-denominator rule lives.
func relativeRatio(mine, avg float64) float64 {
	if avg == 0 {
		return 0
	}
	return (mine - avg) / avg
}

//
// orderedSum adds values smallest first so the result does not
// depend on the order the caller supplied them in.
//
func orderedSum(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var total float64
	for _, v := range sorted {
		total += v
	}
	return total
}
