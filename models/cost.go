package models

import (
	"fmt"

	"github.com/aouyang1/go-pricer/floatsunrolled"
)

// Cost computes the halved mean squared error, 1/(2m) * sum((estimate(x_i) - y_i)^2). An empty
// dataset has a cost of 0.
func Cost(x, y []float64, c Coefficients) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("features have %d samples and targets have %d, %w", len(x), len(y), ErrFeatureLenMismatch)
	}
	if len(x) == 0 {
		return 0, nil
	}
	return cost(make([]float64, len(x)), x, y, c), nil
}

// cost uses res as scratch space for the residuals
func cost(res, x, y []float64, c Coefficients) float64 {
	res = residuals(res, x, y, c)
	return floatsunrolled.Dot(res, res) / (2.0 * float64(len(x)))
}

// residuals writes estimate(x_i) - y_i into res
func residuals(res, x, y []float64, c Coefficients) []float64 {
	for i := range x {
		res[i] = Estimate(x[i], c)
	}
	return floatsunrolled.SubTo(res, res, y)
}
