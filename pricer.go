// Package pricer estimates a price from a mileage with a single feature linear model trained by
// batch gradient descent over a normalized mileage.
package pricer

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/aouyang1/go-pricer/dataset"
	"github.com/aouyang1/go-pricer/models"
	"github.com/aouyang1/go-pricer/scale"
	"github.com/aouyang1/go-pricer/stats"
)

var (
	ErrUntrained        = errors.New("pricer has not been trained or loaded from a model")
	ErrNegativeMileage  = errors.New("mileage cannot be negative")
	ErrNonFiniteMileage = errors.New("mileage must be a finite number")
	ErrNoTrainingData   = errors.New("no training data available")
)

// Pricer fits a price model and can be used to estimate prices
type Pricer struct {
	opt *Options

	norm     scale.Params
	normCoef models.Coefficients
	coef     models.Coefficients

	featureRange *dataset.Range
	targetRange  *dataset.Range

	fitTrainingData *dataset.Dataset
	fitScores       *stats.Scores
	trace           []models.CostSample
	iterations      int
	converged       bool
	trained         bool
}

// New creates a new instance of a Pricer using the provided options. If no options are provided
// a default is used.
func New(opt *Options) (*Pricer, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &Pricer{
		opt:  opt,
		norm: scale.Identity(),
	}, nil
}

// NewFromModel creates a new instance of Pricer from a pre-existing model, ready for estimates
// without training. The model is usually produced by a previous call to Model() or read from disk.
func NewFromModel(model Model) (*Pricer, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("unable to load from model, %w", err)
	}
	opt, err := model.Options.Validate()
	if err != nil {
		return nil, fmt.Errorf("unable to load options from model, %w", err)
	}

	p := &Pricer{
		opt:          opt,
		norm:         model.Normalization,
		normCoef:     model.NormalizedCoefficients,
		coef:         model.Coefficients,
		featureRange: model.FeatureRange,
		targetRange:  model.TargetRange,
		fitScores:    model.Scores,
		iterations:   model.Iterations,
		converged:    model.Converged,
		trained:      true,
	}
	if p.norm.Scale == 0 {
		p.norm = scale.Identity()
	}
	return p, nil
}

// Fit trains the model on mileage and price pairs. The mileage is normalized, the coefficients are
// fit with gradient descent in the normalized space, then mapped back to the original mileage scale.
func (p *Pricer) Fit(mileage, price []float64) error {
	ds, err := dataset.New(mileage, price)
	if err != nil {
		return fmt.Errorf("unable to create training dataset, %w", err)
	}

	norm, err := scale.Fit(ds.X)
	if err != nil {
		return fmt.Errorf("unable to normalize mileage, %w", err)
	}

	trainer, err := models.NewGradientDescentRegression(p.opt.Training)
	if err != nil {
		return fmt.Errorf("unable to initialize gradient descent, %w", err)
	}
	if err := trainer.Fit(norm.Transform(ds.X), ds.Y); err != nil {
		return fmt.Errorf("unable to train model, %w", err)
	}

	normCoef := trainer.Coefficients()
	coef := norm.Denormalize(normCoef)

	scores, err := stats.NewScores(models.EstimateAll(ds.X, coef), ds.Y)
	if err != nil {
		return fmt.Errorf("unable to score fit, %w", err)
	}
	scores.Cost, err = models.Cost(ds.X, ds.Y, coef)
	if err != nil {
		return fmt.Errorf("unable to compute training cost, %w", err)
	}

	featureRange := ds.FeatureRange()
	targetRange := ds.TargetRange()

	p.norm = norm
	p.normCoef = normCoef
	p.coef = coef
	p.featureRange = &featureRange
	p.targetRange = &targetRange
	p.fitTrainingData = ds
	p.fitScores = scores
	p.trace = slices.Collect(trainer.CostTrace())
	p.iterations = trainer.Iterations()
	p.converged = trainer.Converged()
	p.trained = true

	if !p.converged {
		slog.Warn("gradient descent stopped at the iteration cap before converging",
			"iterations", p.iterations, "tolerance", p.opt.Training.Tolerance)
	}
	return nil
}

// Predict estimates the price of every mileage. No range checks are applied.
func (p *Pricer) Predict(mileage []float64) ([]float64, error) {
	if !p.trained {
		return nil, ErrUntrained
	}
	return models.EstimateAll(mileage, p.coef), nil
}

// Estimate predicts the price of a single mileage. Negative or non-finite mileages are rejected while
// mileages outside of the training range are only flagged.
func (p *Pricer) Estimate(mileage float64) (Prediction, error) {
	if !p.trained {
		return Prediction{}, ErrUntrained
	}
	if !isFinite(mileage) {
		return Prediction{}, fmt.Errorf("got %g, %w", mileage, ErrNonFiniteMileage)
	}
	if mileage < 0 {
		return Prediction{}, fmt.Errorf("got %g, %w", mileage, ErrNegativeMileage)
	}

	price := models.Estimate(mileage, p.coef)
	return Prediction{
		Mileage:       mileage,
		Price:         price,
		OutOfRange:    p.featureRange != nil && !p.featureRange.Contains(mileage),
		NegativePrice: price < 0,
	}, nil
}

// Coefficients returns the intercept and slope on the original mileage scale
func (p *Pricer) Coefficients() models.Coefficients {
	return p.coef
}

// NormalizedCoefficients returns the intercept and slope fit against the normalized mileage
func (p *Pricer) NormalizedCoefficients() models.Coefficients {
	return p.normCoef
}

// Normalization returns the mean and scale used to normalize the mileage
func (p *Pricer) Normalization() scale.Params {
	return p.norm
}

// FeatureRange returns the mileage range seen during training, nil if unknown
func (p *Pricer) FeatureRange() *dataset.Range {
	return p.featureRange
}

// FitScores returns the scores of the model against its training data
func (p *Pricer) FitScores() *stats.Scores {
	return p.fitScores
}

// CostTrace yields the training cost recorded during the last fit
func (p *Pricer) CostTrace() iter.Seq[models.CostSample] {
	return slices.Values(p.trace)
}

// Iterations returns the number of gradient descent iterations run by the last fit
func (p *Pricer) Iterations() int {
	return p.iterations
}

// Converged reports whether the last fit stopped before the iteration cap
func (p *Pricer) Converged() bool {
	return p.converged
}

// TrainingData returns a copy of the training data used to fit the current model, nil when the
// pricer was loaded from a model
func (p *Pricer) TrainingData() *dataset.Dataset {
	if p.fitTrainingData == nil {
		return nil
	}
	return p.fitTrainingData.Copy()
}

// Model generates a serializeable representation of the options, normalization and coefficients.
// This can be used to initialize a new Pricer for immediate estimates skipping the training step.
func (p *Pricer) Model() (Model, error) {
	if !p.trained {
		return Model{}, ErrUntrained
	}
	return Model{
		Options:                p.opt,
		Normalization:          p.norm,
		NormalizedCoefficients: p.normCoef,
		Coefficients:           p.coef,
		FeatureRange:           p.featureRange,
		TargetRange:            p.targetRange,
		Scores:                 p.fitScores,
		Iterations:             p.iterations,
		Converged:              p.converged,
	}, nil
}
