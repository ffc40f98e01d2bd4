package models

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"math"
	"sync"

	"github.com/aouyang1/go-pricer/floatsunrolled"
	"gonum.org/v1/gonum/stat"
)

const (
	DefaultLearningRate   = 0.01
	DefaultIterations     = 1000
	DefaultTolerance      = 1e-8
	DefaultReportInterval = 100

	// MinParallelSamples is the smallest number of samples where the per iteration sums are split
	// across goroutines when parallelization is requested.
	MinParallelSamples = 4096

	// divergenceSlack is the relative cost increase tolerated between iterations before the
	// divergence guard trips.
	divergenceSlack = 1e-12
)

var ErrUntrainedModel = errors.New("model has not been trained yet")

// GradientDescentOptions represents input options to run the batch gradient descent
type GradientDescentOptions struct {
	// LearningRate scales the averaged gradient applied to the coefficients on every iteration.
	LearningRate float64 `json:"learning_rate"`

	// Iterations is the maximum number of full passes over the training data.
	Iterations int `json:"iterations"`

	// Tolerance stops the descent early once both coefficient steps are smaller in magnitude.
	Tolerance float64 `json:"tolerance"`

	// ReportInterval records the cost every n iterations. 0 only records the final cost.
	ReportInterval int `json:"report_interval"`

	// Parallelization splits the per iteration sums across this many goroutines. 0 or 1 runs serially.
	Parallelization int `json:"parallelization"`

	// DetectDivergence fails the fit if the cost increases between iterations or a coefficient
	// is no longer finite.
	DetectDivergence bool `json:"detect_divergence"`
}

// NewDefaultGradientDescentOptions returns a default set of gradient descent options
func NewDefaultGradientDescentOptions() *GradientDescentOptions {
	return &GradientDescentOptions{
		LearningRate:   DefaultLearningRate,
		Iterations:     DefaultIterations,
		Tolerance:      DefaultTolerance,
		ReportInterval: DefaultReportInterval,
	}
}

// Validate runs basic validation on gradient descent options
func (g *GradientDescentOptions) Validate() (*GradientDescentOptions, error) {
	if g == nil {
		g = NewDefaultGradientDescentOptions()
	}

	if !(g.LearningRate > 0) || math.IsInf(g.LearningRate, 1) {
		return nil, fmt.Errorf("got %g, %w", g.LearningRate, ErrNonPositiveLearningRate)
	}
	if g.Iterations <= 0 {
		return nil, fmt.Errorf("got %d, %w", g.Iterations, ErrNonPositiveIterations)
	}
	if !(g.Tolerance > 0) {
		return nil, fmt.Errorf("got %g, %w", g.Tolerance, ErrNonPositiveTolerance)
	}
	if g.ReportInterval < 0 {
		return nil, ErrNegativeReportInterval
	}
	if g.Parallelization < 0 {
		return nil, ErrNegativeParallelization
	}
	return g, nil
}

// CostSample is the training cost observed before the update of a given iteration.
type CostSample struct {
	Iteration int     `json:"iteration"`
	Cost      float64 `json:"cost"`
}

// GradientDescentRegression fits an intercept and slope with full batch gradient descent. The
// feature is expected to already be normalized so a single learning rate works for both coefficients.
type GradientDescentRegression struct {
	opt *GradientDescentOptions

	coef       Coefficients
	iterations int
	converged  bool
	trace      []CostSample
	trained    bool
}

// NewGradientDescentRegression initializes a gradient descent model ready for fitting
func NewGradientDescentRegression(opt *GradientDescentOptions) (*GradientDescentRegression, error) {
	opt, err := opt.Validate()
	if err != nil {
		return nil, err
	}
	return &GradientDescentRegression{
		opt: opt,
	}, nil
}

// Fit the model according to the given training data. Coefficients start at zero and every
// iteration moves both of them using the gradient evaluated at the same starting point.
func (g *GradientDescentRegression) Fit(x, y []float64) error {
	if g.opt == nil {
		return ErrNoOptions
	}
	if len(x) == 0 {
		return ErrNoTrainingData
	}
	if len(x) != len(y) {
		return fmt.Errorf("training data has %d samples and target has %d, %w", len(x), len(y), ErrFeatureLenMismatch)
	}

	g.trained = false
	g.converged = false
	g.iterations = 0
	g.trace = nil

	m := float64(len(x))
	lr := g.opt.LearningRate
	tol := g.opt.Tolerance

	var c Coefficients
	res := make([]float64, len(x))
	prevCost := math.Inf(1)
	if g.opt.DetectDivergence {
		prevCost = cost(res, x, y, c)
	}
	for i := 0; i < g.opt.Iterations; i++ {
		if g.opt.ReportInterval > 0 && i%g.opt.ReportInterval == 0 {
			cst := cost(res, x, y, c)
			g.trace = append(g.trace, CostSample{Iteration: i, Cost: cst})
			slog.Debug("gradient descent progress",
				"iteration", i, "cost", cst, "intercept", c.Intercept, "slope", c.Slope)
		}

		sumErr0, sumErr1 := g.residualSums(res, x, y, c)
		step0 := lr * sumErr0 / m
		step1 := lr * sumErr1 / m

		// both steps are taken from the same pre-update coefficients
		c = Coefficients{
			Intercept: c.Intercept - step0,
			Slope:     c.Slope - step1,
		}
		g.iterations = i + 1

		if g.opt.DetectDivergence {
			if !finite(c) {
				return fmt.Errorf("non-finite coefficients at iteration %d, %w", i, ErrDiverged)
			}
			cst := cost(res, x, y, c)
			if cst > prevCost*(1+divergenceSlack) {
				return fmt.Errorf("cost increased from %g to %g at iteration %d, %w", prevCost, cst, i, ErrDiverged)
			}
			prevCost = cst
		}

		if i > 0 && math.Abs(step0) < tol && math.Abs(step1) < tol {
			g.converged = true
			slog.Debug("gradient descent converged", "iteration", i)
			break
		}
	}

	g.coef = c
	g.trace = append(g.trace, CostSample{Iteration: g.iterations, Cost: cost(res, x, y, c)})
	g.trained = true
	return nil
}

// residualSums returns sum(err_i) and sum(err_i * x_i) where err_i = estimate(x_i) - y_i, using res
// as scratch space. Partial sums of the parallel path are always combined in chunk order.
func (g *GradientDescentRegression) residualSums(res, x, y []float64, c Coefficients) (float64, float64) {
	n := g.opt.Parallelization
	if n <= 1 || len(x) < MinParallelSamples {
		return residualSums(res, x, y, c)
	}

	chunk := (len(x) + n - 1) / n
	sums0 := make([]float64, n)
	sums1 := make([]float64, n)

	var wg sync.WaitGroup
	for j := 0; j < n; j++ {
		start := j * chunk
		if start >= len(x) {
			break
		}
		end := min(start+chunk, len(x))
		wg.Add(1)
		go func(j, start, end int) {
			defer wg.Done()
			sums0[j], sums1[j] = residualSums(res[start:end], x[start:end], y[start:end], c)
		}(j, start, end)
	}
	wg.Wait()

	var sum0, sum1 float64
	for j := 0; j < n; j++ {
		sum0 += sums0[j]
		sum1 += sums1[j]
	}
	return sum0, sum1
}

func residualSums(res, x, y []float64, c Coefficients) (float64, float64) {
	res = residuals(res, x, y, c)
	return floatsunrolled.Sum(res), floatsunrolled.Dot(res, x)
}

func finite(c Coefficients) bool {
	return !math.IsNaN(c.Intercept) && !math.IsInf(c.Intercept, 0) &&
		!math.IsNaN(c.Slope) && !math.IsInf(c.Slope, 0)
}

// Predict using the fitted coefficients
func (g *GradientDescentRegression) Predict(x []float64) ([]float64, error) {
	if !g.trained {
		return nil, ErrUntrainedModel
	}
	return EstimateAll(x, g.coef), nil
}

// Score computes the coefficient of determination of the prediction
func (g *GradientDescentRegression) Score(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0.0, fmt.Errorf("features have %d samples and target has %d, %w", len(x), len(y), ErrFeatureLenMismatch)
	}
	res, err := g.Predict(x)
	if err != nil {
		return 0.0, err
	}
	return stat.RSquaredFrom(res, y, nil), nil
}

// Intercept returns the fitted intercept
func (g *GradientDescentRegression) Intercept() float64 {
	return g.coef.Intercept
}

// Coef returns the fitted slope as a single element slice
func (g *GradientDescentRegression) Coef() []float64 {
	return []float64{g.coef.Slope}
}

// Coefficients returns the fitted intercept and slope
func (g *GradientDescentRegression) Coefficients() Coefficients {
	return g.coef
}

// Iterations returns the number of iterations run by the last fit
func (g *GradientDescentRegression) Iterations() int {
	return g.iterations
}

// Converged reports whether the last fit stopped because both steps fell under the tolerance
func (g *GradientDescentRegression) Converged() bool {
	return g.converged
}

// CostTrace yields the cost samples recorded during the last fit, ending with the final cost.
func (g *GradientDescentRegression) CostTrace() iter.Seq[CostSample] {
	return func(yield func(CostSample) bool) {
		for _, s := range g.trace {
			if !yield(s) {
				return
			}
		}
	}
}
