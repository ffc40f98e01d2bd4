// Package dataset holds the labeled mileage/price samples used for training along with loaders and
// synthetic generators.
package dataset

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrDatasetLenMismatch = errors.New("feature has a different length than targets")
	ErrNonFinite          = errors.New("non-finite value in dataset")
)

// Dataset represents parallel feature and target values. Both must be of the same length.
type Dataset struct {
	X []float64
	Y []float64
}

// New returns an instance of a Dataset given a feature and target slice. The inputs are copied.
func New(x, y []float64) (*Dataset, error) {
	if len(y) == 0 {
		return nil, ErrNoTrainingData
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf(
			"feature has length of %d, but targets has a length of %d, %w",
			len(x), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 0; i < len(x); i++ {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return nil, fmt.Errorf("sample %d (%g, %g), %w", i, x[i], y[i], ErrNonFinite)
		}
	}

	xSeries := make([]float64, len(x))
	ySeries := make([]float64, len(y))
	copy(xSeries, x)
	copy(ySeries, y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}, nil
}

// Len returns the number of samples
func (d *Dataset) Len() int {
	return len(d.Y)
}

func (d *Dataset) Copy() *Dataset {
	xSeries := make([]float64, len(d.X))
	ySeries := make([]float64, len(d.Y))
	copy(xSeries, d.X)
	copy(ySeries, d.Y)
	return &Dataset{
		X: xSeries,
		Y: ySeries,
	}
}

// Range is the closed interval covered by a set of values.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v lies within the range
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FeatureRange returns the min and max of the feature values
func (d *Dataset) FeatureRange() Range {
	return Range{Min: floats.Min(d.X), Max: floats.Max(d.X)}
}

// TargetRange returns the min and max of the target values
func (d *Dataset) TargetRange() Range {
	return Range{Min: floats.Min(d.Y), Max: floats.Max(d.Y)}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
