//
// the grading engine: assessment components, subjects, grade scales
// and semesters. marks are graded by how far they sit above or below
// the class average rather than by absolute percentage; subject grades
// are then combined into credit-weighted SGPA and CGPA.
//
// every type is immutable once constructed and safe to share between
// goroutines.
//
package grading
