package grading

// TotalWeight sums the weights of the given components.
func TotalWeight(components []Component) float64 {
	var total float64
	for _, c := range components {
		total += c.weight
	}
	return total
}

//
// NormalizeWeights rescales the component weights so they sum to 100.
// A new slice is returned; the input components are not modified.
//
func NormalizeWeights(components []Component) ([]Component, error) {
	if len(components) == 0 {
		return nil, invalid("components", "nothing to normalize")
	}
	total := TotalWeight(components)
	if !finite(total) || total <= 0 {
		return nil, invalid("weight", "total weight %g cannot be normalized", total)
	}

	out := make([]Component, len(components))
	for i, c := range components {
		out[i] = c.withWeight(c.weight / total * 100)
	}
	return out, nil
}

// Distribution selects how a group weight is split across its items.
type Distribution int

const (
	// DistributeEqual gives every item total/n.
	DistributeEqual Distribution = iota
	// DistributeByMaxMarks splits in proportion to each item's max marks.
	DistributeByMaxMarks
)

func (d Distribution) String() string {
	switch d {
	case DistributeEqual:
		return "equal"
	case DistributeByMaxMarks:
		return "maxMarks"
	default:
		return "unknown"
	}
}

//
// DistributeWeight splits a group weight (e.g. 10% over four quizzes)
// into per-item weights. maxMarks has one entry per item.
// When the max marks sum to 0, the split falls back to equal shares.
//
func DistributeWeight(total float64, maxMarks []float64, method Distribution) ([]float64, error) {

	n := len(maxMarks)
	if n == 0 {
		return nil, invalid("count", "a group needs at least one item")
	}
	if !finite(total) || total <= 0 {
		return nil, invalid("weight", "group weight must be greater than 0, got %g", total)
	}

	weights := make([]float64, n)

	var sumMax float64
	for _, m := range maxMarks {
		sumMax += m
	}

	if method == DistributeByMaxMarks && sumMax > 0 && finite(sumMax) {
		for i, m := range maxMarks {
			weights[i] = m / sumMax * total
		}
		return weights, nil
	}

	each := total / float64(n)
	for i := range weights {
		weights[i] = each
	}
	return weights, nil
}
