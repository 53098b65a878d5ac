package grading

//
// Component is a single graded item of a subject (a quiz, an
// assignment, an exam), holding the learner's marks alongside
// the class average for the same item.
//
// Components are values; there are no mutators after NewComponent.
//
type Component struct {
	name          string
	weight        float64
	maxMarks      float64
	myMarks       float64
	classAvgMarks float64
}

//
// NewComponent validates the raw fields and returns the component.
//
// weight: percentage contribution to the subject, must be > 0
// maxMarks: must be > 0
// myMarks, classAvgMarks: must lie in [0, maxMarks]
//
func NewComponent(name string, weight, maxMarks, myMarks, classAvgMarks float64) (Component, error) {

	if name == "" {
		return Component{}, invalid("name", "component name must not be empty")
	}
	if err := checkFinite([]namedValue{
		{"weight", weight},
		{"maxMarks", maxMarks},
		{"myMarks", myMarks},
		{"classAvgMarks", classAvgMarks},
	}); err != nil {
		return Component{}, err
	}
	if weight <= 0 {
		return Component{}, invalid("weight", "must be greater than 0, got %g", weight)
	}
	if maxMarks <= 0 {
		return Component{}, invalid("maxMarks", "must be greater than 0, got %g", maxMarks)
	}
	if myMarks < 0 || myMarks > maxMarks {
		return Component{}, invalid("myMarks", "must be between 0 and %g, got %g", maxMarks, myMarks)
	}
	if classAvgMarks < 0 || classAvgMarks > maxMarks {
		return Component{}, invalid("classAvgMarks", "must be between 0 and %g, got %g", maxMarks, classAvgMarks)
	}

	c := Component{
		name:          name,
		weight:        weight,
		maxMarks:      maxMarks,
		myMarks:       myMarks,
		classAvgMarks: classAvgMarks,
	}

	// a tiny class average or max marks can push the ratios past float range
	if err := checkFinite([]namedValue{
		{"myPercentage", c.MyPercentage()},
		{"classAvgPercentage", c.ClassAvgPercentage()},
		{"weightedMyScore", c.WeightedMyScore()},
		{"weightedClassAvg", c.WeightedClassAvg()},
		{"relativePerformance", c.RelativePerformance() * 100},
	}); err != nil {
		return Component{}, err
	}

	return c, nil
}

func (c Component) Name() string           { return c.name }
func (c Component) Weight() float64        { return c.weight }
func (c Component) MaxMarks() float64      { return c.maxMarks }
func (c Component) MyMarks() float64       { return c.myMarks }
func (c Component) ClassAvgMarks() float64 { return c.classAvgMarks }

func (c Component) MyPercentage() float64 {
	return c.myMarks / c.maxMarks * 100
}

func (c Component) ClassAvgPercentage() float64 {
	return c.classAvgMarks / c.maxMarks * 100
}

// WeightedMyScore is this component's share of the subject's weighted total.
func (c Component) WeightedMyScore() float64 {
	return c.myMarks / c.maxMarks * c.weight
}

func (c Component) WeightedClassAvg() float64 {
	return c.classAvgMarks / c.maxMarks * c.weight
}

//
// RelativePerformance is (mine - avg) / avg, or 0 when the class
// average is 0.
//
func (c Component) RelativePerformance() float64 {
	return relativeRatio(c.myMarks, c.classAvgMarks)
}

// withWeight returns a copy carrying a new weight.
func (c Component) withWeight(w float64) Component {
	c.weight = w
	return c
}
