package models

import "fmt"

// Coefficients are the intercept and slope of the linear model. Depending on where they come from
// they are valid against either normalized or original scale features.
type Coefficients struct {
	Intercept float64 `json:"intercept"`
	Slope     float64 `json:"slope"`
}

// String returns the model equation as y ~ b + m*x
func (c Coefficients) String() string {
	return fmt.Sprintf("y ~ %g + %g*x", c.Intercept, c.Slope)
}

// Estimate returns intercept + slope * x. This is used for training on normalized features and for
// inference on raw features alike.
func Estimate(x float64, c Coefficients) float64 {
	return c.Intercept + c.Slope*x
}

// EstimateAll applies Estimate to every feature value.
func EstimateAll(x []float64, c Coefficients) []float64 {
	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = Estimate(v, c)
	}
	return res
}
