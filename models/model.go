// Package models contains the single feature linear model fit by batch gradient descent along with
// the predictor and cost functions it is built from.
package models

// Model is a fitted single feature linear regression.
type Model interface {
	Fit(x, y []float64) error
	Predict(x []float64) ([]float64, error)
	Score(x, y []float64) (float64, error)
	Intercept() float64
	Coef() []float64
}
