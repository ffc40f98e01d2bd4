package models

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

var _ Model = (*GradientDescentRegression)(nil)

func TestGradientDescentOptionsValidate(t *testing.T) {
	testData := map[string]struct {
		opt      *GradientDescentOptions
		expected *GradientDescentOptions
		err      error
	}{
		"nil options": {
			expected: NewDefaultGradientDescentOptions(),
		},
		"zero learning rate": {
			opt: &GradientDescentOptions{Iterations: 10, Tolerance: 1e-3},
			err: ErrNonPositiveLearningRate,
		},
		"nan learning rate": {
			opt: &GradientDescentOptions{LearningRate: math.NaN(), Iterations: 10, Tolerance: 1e-3},
			err: ErrNonPositiveLearningRate,
		},
		"negative iterations": {
			opt: &GradientDescentOptions{LearningRate: 0.1, Iterations: -1, Tolerance: 1e-3},
			err: ErrNonPositiveIterations,
		},
		"zero tolerance": {
			opt: &GradientDescentOptions{LearningRate: 0.1, Iterations: 10},
			err: ErrNonPositiveTolerance,
		},
		"negative report interval": {
			opt: &GradientDescentOptions{LearningRate: 0.1, Iterations: 10, Tolerance: 1e-3, ReportInterval: -1},
			err: ErrNegativeReportInterval,
		},
		"negative parallelization": {
			opt: &GradientDescentOptions{LearningRate: 0.1, Iterations: 10, Tolerance: 1e-3, Parallelization: -2},
			err: ErrNegativeParallelization,
		},
		"valid": {
			opt:      &GradientDescentOptions{LearningRate: 0.1, Iterations: 10, Tolerance: 1e-3},
			expected: &GradientDescentOptions{LearningRate: 0.1, Iterations: 10, Tolerance: 1e-3},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			opt, err := td.opt.Validate()
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Equal(t, td.expected, opt)
		})
	}
}

func TestNewGradientDescentRegressionRejectsConfig(t *testing.T) {
	_, err := NewGradientDescentRegression(&GradientDescentOptions{LearningRate: -0.01, Iterations: 1000, Tolerance: 1e-8})
	assert.ErrorIs(t, err, ErrNonPositiveLearningRate)
}

func TestGradientDescentFitInputErrors(t *testing.T) {
	testData := map[string]struct {
		x   []float64
		y   []float64
		err error
	}{
		"no training data": {
			err: ErrNoTrainingData,
		},
		"length mismatch": {
			x:   []float64{1, 2},
			y:   []float64{1},
			err: ErrFeatureLenMismatch,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			reg, err := NewGradientDescentRegression(nil)
			require.Nil(t, err)
			assert.ErrorIs(t, reg.Fit(td.x, td.y), td.err)
		})
	}
}

// referenceStep applies one simultaneous batch gradient descent update.
func referenceStep(x, y []float64, c Coefficients, lr float64) Coefficients {
	var s0, s1 float64
	for i := range x {
		e := c.Intercept + c.Slope*x[i] - y[i]
		s0 += e
		s1 += e * x[i]
	}
	m := float64(len(x))
	return Coefficients{
		Intercept: c.Intercept - lr*s0/m,
		Slope:     c.Slope - lr*s1/m,
	}
}

func TestGradientDescentSimultaneousUpdate(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 6}

	testData := map[string]struct {
		iterations int
	}{
		"one iteration":    {iterations: 1},
		"two iterations":   {iterations: 2},
		"five iterations":  {iterations: 5},
		"fifty iterations": {iterations: 50},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			reg, err := NewGradientDescentRegression(&GradientDescentOptions{
				LearningRate: 0.1,
				Iterations:   td.iterations,
				Tolerance:    1e-300,
			})
			require.Nil(t, err)
			require.Nil(t, reg.Fit(x, y))

			var expected Coefficients
			for i := 0; i < td.iterations; i++ {
				expected = referenceStep(x, y, expected, 0.1)
			}
			assert.InDelta(t, expected.Intercept, reg.Intercept(), 1e-12, "intercept")
			assert.InDelta(t, expected.Slope, reg.Coefficients().Slope, 1e-12, "slope")
			assert.Equal(t, td.iterations, reg.Iterations())
			assert.False(t, reg.Converged())
		})
	}

	reg, err := NewGradientDescentRegression(&GradientDescentOptions{LearningRate: 0.1, Iterations: 1, Tolerance: 1e-8})
	require.Nil(t, err)
	require.Nil(t, reg.Fit(x, y))
	assert.InDelta(t, 0.4, reg.Intercept(), 1e-12, "intercept")
	assert.InDeltaSlice(t, []float64{28.0 / 30.0}, reg.Coef(), 1e-12, "slope")
}

func TestGradientDescentConverges(t *testing.T) {
	x := []float64{-2, -1, 0, 1, 2}
	y := []float64{-1, 1, 3, 5, 7}

	reg, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 0.1,
		Iterations:   10000,
		Tolerance:    1e-12,
	})
	require.Nil(t, err)
	require.Nil(t, reg.Fit(x, y))

	assert.True(t, reg.Converged())
	assert.Less(t, reg.Iterations(), 10000)
	assert.InDelta(t, 3.0, reg.Intercept(), 1e-9, "intercept")
	assert.InDeltaSlice(t, []float64{2.0}, reg.Coef(), 1e-9, "slope")

	r2, err := reg.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, 1e-9, "score")
}

func TestGradientDescentMatchesClosedForm(t *testing.T) {
	x, y := noisyNormalizedLine(200)

	reg, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 0.1,
		Iterations:   20000,
		Tolerance:    1e-12,
	})
	require.Nil(t, err)
	require.Nil(t, reg.Fit(x, y))

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	assert.InDelta(t, alpha, reg.Intercept(), 1e-6, "intercept")
	assert.InDelta(t, beta, reg.Coefficients().Slope, 1e-6, "slope")
}

func TestGradientDescentDeterministic(t *testing.T) {
	x, y := noisyNormalizedLine(50)

	fit := func() Coefficients {
		reg, err := NewGradientDescentRegression(nil)
		require.Nil(t, err)
		require.Nil(t, reg.Fit(x, y))
		return reg.Coefficients()
	}
	first := fit()
	second := fit()
	assert.Equal(t, first, second)
}

func TestGradientDescentCostNonIncreasing(t *testing.T) {
	x, y := noisyNormalizedLine(100)

	reg, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate:   0.05,
		Iterations:     2000,
		Tolerance:      1e-10,
		ReportInterval: 1,
	})
	require.Nil(t, err)
	require.Nil(t, reg.Fit(x, y))

	trace := slices.Collect(reg.CostTrace())
	require.Greater(t, len(trace), 2)
	assert.Equal(t, 0, trace[0].Iteration)
	assert.Equal(t, reg.Iterations(), trace[len(trace)-1].Iteration)
	for i := 1; i < len(trace); i++ {
		assert.LessOrEqual(t, trace[i].Cost, trace[i-1].Cost*(1+1e-12), "iteration %d", trace[i].Iteration)
	}
}

func TestGradientDescentReportInterval(t *testing.T) {
	x, y := noisyNormalizedLine(20)

	reg, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate:   0.01,
		Iterations:     250,
		Tolerance:      1e-300,
		ReportInterval: 100,
	})
	require.Nil(t, err)
	require.Nil(t, reg.Fit(x, y))

	var iterations []int
	for s := range reg.CostTrace() {
		iterations = append(iterations, s.Iteration)
	}
	assert.Equal(t, []int{0, 100, 200, 250}, iterations)
}

func TestGradientDescentSingleSample(t *testing.T) {
	reg, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 0.5,
		Iterations:   1000,
		Tolerance:    1e-10,
	})
	require.Nil(t, err)
	require.Nil(t, reg.Fit([]float64{0}, []float64{5}))

	assert.InDelta(t, 5.0, reg.Intercept(), 1e-8)
	c, err := Cost([]float64{0}, []float64{5}, reg.Coefficients())
	require.Nil(t, err)
	assert.InDelta(t, 0.0, c, 1e-12)
}

func TestGradientDescentDivergence(t *testing.T) {
	x := []float64{-1, 1}
	y := []float64{1, 3}

	guarded, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate:     3.0,
		Iterations:       1000,
		Tolerance:        1e-8,
		DetectDivergence: true,
	})
	require.Nil(t, err)
	assert.ErrorIs(t, guarded.Fit(x, y), ErrDiverged)

	unguarded, err := NewGradientDescentRegression(&GradientDescentOptions{
		LearningRate: 3.0,
		Iterations:   1000,
		Tolerance:    1e-8,
	})
	require.Nil(t, err)
	require.Nil(t, unguarded.Fit(x, y))
	c := unguarded.Coefficients()
	assert.False(t, finite(c) && math.Abs(c.Slope) < 1e100, "expected exploding coefficients, got %v", c)
}

func TestGradientDescentGuardKeepsConvergedResult(t *testing.T) {
	x, y := noisyNormalizedLine(100)

	fit := func(guard bool) Coefficients {
		reg, err := NewGradientDescentRegression(&GradientDescentOptions{
			LearningRate:     0.01,
			Iterations:       1000,
			Tolerance:        1e-8,
			DetectDivergence: guard,
		})
		require.Nil(t, err)
		require.Nil(t, reg.Fit(x, y))
		return reg.Coefficients()
	}
	assert.Equal(t, fit(false), fit(true))
}

func TestGradientDescentParallelization(t *testing.T) {
	x, y := noisyNormalizedLine(3*MinParallelSamples + 7)

	fit := func(parallelization int) Coefficients {
		reg, err := NewGradientDescentRegression(&GradientDescentOptions{
			LearningRate:    0.1,
			Iterations:      500,
			Tolerance:       1e-8,
			Parallelization: parallelization,
		})
		require.Nil(t, err)
		require.Nil(t, reg.Fit(x, y))
		return reg.Coefficients()
	}

	serial := fit(1)
	for _, p := range []int{2, 3, 4, 7} {
		c := fit(p)
		assert.InDelta(t, serial.Intercept, c.Intercept, 1e-9, "intercept with %d", p)
		assert.InDelta(t, serial.Slope, c.Slope, 1e-9, "slope with %d", p)
		assert.Equal(t, c, fit(p), "parallel fit with %d is not deterministic", p)
	}
}

func TestGradientDescentPredictUntrained(t *testing.T) {
	reg, err := NewGradientDescentRegression(nil)
	require.Nil(t, err)

	_, err = reg.Predict([]float64{1})
	assert.ErrorIs(t, err, ErrUntrainedModel)

	_, err = reg.Score([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrUntrainedModel)
}

// noisyNormalizedLine generates a zero mean, roughly unit variance feature with a deterministic
// wobble added to the line 7 - 3x.
func noisyNormalizedLine(n int) ([]float64, []float64) {
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = -1.7 + 3.4*float64(i)/float64(max(n-1, 1))
		y[i] = 7 - 3*x[i] + 0.25*math.Sin(float64(i)*1.3)
	}
	return x, y
}
