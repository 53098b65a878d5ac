package grading

//
// The summary records are the only thing handed back to callers for
// display or export. They are plain data and marshal to JSON as-is.
//

type ComponentSummary struct {
	Name                          string  `json:"name"`
	Weight                        float64 `json:"weight"`
	MyMarks                       float64 `json:"my_marks"`
	MaxMarks                      float64 `json:"max_marks"`
	ClassAvgMarks                 float64 `json:"class_avg_marks"`
	MyPercentage                  float64 `json:"my_percentage"`
	ClassAvgPercentage            float64 `json:"class_avg_percentage"`
	WeightedMyScore               float64 `json:"weighted_my_score"`
	WeightedClassAvg              float64 `json:"weighted_class_avg"`
	RelativePerformance           float64 `json:"relative_performance"`
	RelativePerformancePercentage float64 `json:"relative_performance_percentage"`
}

type SubjectSummary struct {
	Name                          string             `json:"name"`
	CreditHours                   float64            `json:"credit_hours"`
	MyTotalRaw                    float64            `json:"my_total_raw"`
	MaxTotalRaw                   float64            `json:"max_total_raw"`
	ClassAvgRaw                   float64            `json:"class_avg_raw"`
	MyPercentage                  float64            `json:"my_percentage"`
	ClassAvgPercentage            float64            `json:"class_avg_percentage"`
	WeightedMyScore               float64            `json:"weighted_my_score"`
	WeightedClassAvg              float64            `json:"weighted_class_avg"`
	RelativePerformance           float64            `json:"relative_performance"`
	RelativePerformancePercentage float64            `json:"relative_performance_percentage"`
	PredictedGrade                string             `json:"predicted_grade"`
	GradePoints                   float64            `json:"grade_points"`
	Components                    []ComponentSummary `json:"components"`
}

//
// SemesterSummary carries the semester result. CGPA is nil unless a
// complete prior aggregate was supplied; the prior values are echoed
// exactly as given.
//
type SemesterSummary struct {
	Name            string           `json:"name"`
	Subjects        []SubjectSummary `json:"subjects"`
	SGPA            float64          `json:"sgpa"`
	CGPA            *float64         `json:"cgpa"`
	TotalCredits    float64          `json:"total_credits"`
	PreviousCgpa    *float64         `json:"previous_cgpa"`
	PreviousCredits *float64         `json:"previous_credits"`
}

func SummarizeComponent(c Component) ComponentSummary {
	rp := c.RelativePerformance()
	return ComponentSummary{
		Name:                          c.Name(),
		Weight:                        c.Weight(),
		MyMarks:                       c.MyMarks(),
		MaxMarks:                      c.MaxMarks(),
		ClassAvgMarks:                 c.ClassAvgMarks(),
		MyPercentage:                  c.MyPercentage(),
		ClassAvgPercentage:            c.ClassAvgPercentage(),
		WeightedMyScore:               c.WeightedMyScore(),
		WeightedClassAvg:              c.WeightedClassAvg(),
		RelativePerformance:           rp,
		RelativePerformancePercentage: rp * 100,
	}
}

func SummarizeSubject(s Subject, gs *GradeScale) SubjectSummary {

	rp := s.OverallRelativePerformance()
	grade, points := gs.PredictGrade(rp)

	components := make([]ComponentSummary, 0, len(s.components))
	for _, c := range s.components {
		components = append(components, SummarizeComponent(c))
	}

	return SubjectSummary{
		Name:                          s.Name(),
		CreditHours:                   s.CreditHours(),
		MyTotalRaw:                    s.TotalMyMarks(),
		MaxTotalRaw:                   s.TotalMaxMarks(),
		ClassAvgRaw:                   s.TotalClassAvgMarks(),
		MyPercentage:                  s.MyPercentage(),
		ClassAvgPercentage:            s.ClassAvgPercentage(),
		WeightedMyScore:               s.WeightedTotalMyScore(),
		WeightedClassAvg:              s.WeightedTotalClassAvg(),
		RelativePerformance:           rp,
		RelativePerformancePercentage: rp * 100,
		PredictedGrade:                grade,
		GradePoints:                   points,
		Components:                    components,
	}
}

// Summarize grades every subject of the semester and its aggregates.
func Summarize(s Semester, gs *GradeScale) SemesterSummary {

	subjects := make([]SubjectSummary, 0, len(s.subjects))
	for _, sub := range s.subjects {
		subjects = append(subjects, SummarizeSubject(sub, gs))
	}

	summary := SemesterSummary{
		Name:            s.Name(),
		Subjects:        subjects,
		SGPA:            s.CalculateSGPA(gs),
		TotalCredits:    s.TotalCredits(),
		PreviousCgpa:    s.PreviousCgpa(),
		PreviousCredits: s.PreviousCredits(),
	}
	if s.HasPrior() {
		cgpa := s.CalculateCGPA(gs)
		summary.CGPA = &cgpa
	}

	return summary
}
