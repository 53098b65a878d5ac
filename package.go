//
// web service that accepts a semester of assessment results - each
// component's marks alongside the class average for it - and grades
// every subject by its performance relative to the class, then
// combines the subject grades into credit-weighted SGPA and CGPA.
//
// grading itself lives in internal/grading and has no dependency on
// the service; this package only carries requests to it.
//
package otfgrade
