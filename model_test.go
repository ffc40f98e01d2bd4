package pricer

import (
	"bytes"
	"testing"

	"github.com/aouyang1/go-pricer/dataset"
	"github.com/aouyang1/go-pricer/models"
	"github.com/aouyang1/go-pricer/scale"
	"github.com/aouyang1/go-pricer/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelTablePrint(t *testing.T) {
	testData := map[string]struct {
		m        Model
		expected string
	}{
		"default": {
			m: DefaultModel(),
			expected: `Model:
  Equation: y ~ 0 + 0*x
  Iterations: 0    Converged: false
  Normalization: Mean: 0.000    Scale: 1.000
Weights:
        Space Intercept Slope
   Normalized     0.000 0.000
     Original         0     0
`,
		},
		"trained": {
			m: Model{
				Options: &Options{
					Training: &models.GradientDescentOptions{
						LearningRate: 0.01,
						Iterations:   1000,
						Tolerance:    1e-8,
					},
				},
				Normalization:          scale.Params{Mean: 2000, Scale: 1414.25},
				NormalizedCoefficients: models.Coefficients{Intercept: 100, Slope: -70.5},
				Coefficients:           models.Coefficients{Intercept: 200, Slope: -0.05},
				FeatureRange:           &dataset.Range{Min: 0, Max: 4000},
				TargetRange:            &dataset.Range{Min: 0, Max: 200},
				Scores: &stats.Scores{
					Cost: 0.5,
					MSE:  1,
					RMSE: 1,
					MAPE: 0.01,
					R2:   0.99,
				},
				Iterations: 412,
				Converged:  true,
			},
			expected: `Model:
  Equation: y ~ 200 + -0.05*x
  Learning Rate: 0.01    Max Iterations: 1000    Tolerance: 1e-08
  Iterations: 412    Converged: true
  Normalization: Mean: 2000.000    Scale: 1414.250
  Mileage: 0.000 to 4000.000
  Price: 0.000 to 200.000
Scores:
  Cost: 0.500    MSE: 1.000    RMSE: 1.000    MAPE: 0.010    R2: 0.990
Weights:
        Space Intercept   Slope
   Normalized   100.000 -70.500
     Original       200   -0.05
`,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := td.m.TablePrint(&buf)
			require.NoError(t, err)
			assert.Equal(t, td.expected, buf.String())
		})
	}
}

func TestModelValidate(t *testing.T) {
	assert.Nil(t, DefaultModel().Validate())
	assert.Nil(t, Model{}.Validate())

	m := DefaultModel()
	m.Normalization.Scale = -1
	assert.ErrorIs(t, m.Validate(), scale.ErrNonPositive)
}
