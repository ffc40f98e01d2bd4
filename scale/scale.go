// Package scale standardizes a single feature to zero mean and unit variance and maps coefficients
// fit on the standardized feature back to the original feature scale.
package scale

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-pricer/models"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrEmptyFeature = errors.New("no feature values to scale")
	ErrNonPositive  = errors.New("scale must be positive")
)

// Params holds the z-score parameters computed from the training feature. Scale is the population
// standard deviation and is always positive.
type Params struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

// Identity returns parameters that leave values unchanged.
func Identity() Params {
	return Params{Mean: 0, Scale: 1}
}

// Fit computes the mean and population standard deviation of x. A constant feature gets a scale of 1
// so every normalized value is 0.
func Fit(x []float64) (Params, error) {
	if len(x) == 0 {
		return Params{}, ErrEmptyFeature
	}

	if floats.Max(x) == floats.Min(x) {
		return Params{Mean: x[0], Scale: 1}, nil
	}

	mean, variance := stat.PopMeanVariance(x, nil)
	sd := math.Sqrt(variance)
	if sd == 0 {
		sd = 1
	}
	return Params{Mean: mean, Scale: sd}, nil
}

// Validate checks that the parameters can be used to scale values.
func (p Params) Validate() error {
	if !(p.Scale > 0) || math.IsInf(p.Scale, 1) {
		return fmt.Errorf("got %g, %w", p.Scale, ErrNonPositive)
	}
	return nil
}

// Transform returns a new slice with (x - mean) / scale for every value.
func (p Params) Transform(x []float64) []float64 {
	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = p.TransformValue(v)
	}
	return res
}

// TransformValue normalizes a single value.
func (p Params) TransformValue(v float64) float64 {
	return (v - p.Mean) / p.Scale
}

// Inverse returns a new slice mapping normalized values back to the original scale.
func (p Params) Inverse(x []float64) []float64 {
	res := make([]float64, len(x))
	for i, v := range x {
		res[i] = v*p.Scale + p.Mean
	}
	return res
}

// Denormalize converts coefficients fit against normalized features into coefficients that apply
// to raw features, so that
//
//	estimate(x, denormalized) == estimate((x-mean)/scale, normalized)
func (p Params) Denormalize(c models.Coefficients) models.Coefficients {
	slope := c.Slope / p.Scale
	return models.Coefficients{
		Intercept: c.Intercept - slope*p.Mean,
		Slope:     slope,
	}
}
