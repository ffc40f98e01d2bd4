package pricer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/aouyang1/go-pricer/dataset"
	"github.com/aouyang1/go-pricer/models"
	"github.com/aouyang1/go-pricer/scale"
	"github.com/aouyang1/go-pricer/stats"
)

var ErrNonFiniteCoefficients = errors.New("model coefficients must be finite")

// Model represents a serializeable format of a trained pricer storing the training options,
// normalization, coefficients in both spaces and the fit scores
type Model struct {
	Options                *Options            `json:"options,omitempty"`
	Normalization          scale.Params        `json:"normalization"`
	NormalizedCoefficients models.Coefficients `json:"normalized_coefficients"`
	Coefficients           models.Coefficients `json:"coefficients"`
	FeatureRange           *dataset.Range      `json:"feature_range,omitempty"`
	TargetRange            *dataset.Range      `json:"target_range,omitempty"`
	Scores                 *stats.Scores       `json:"scores,omitempty"`
	Iterations             int                 `json:"iterations"`
	Converged              bool                `json:"converged"`
}

// DefaultModel is the model used when nothing has been trained yet. Every estimate is 0.
func DefaultModel() Model {
	return Model{
		Normalization: scale.Identity(),
	}
}

// Validate checks the coefficients are usable for estimates
func (m Model) Validate() error {
	for _, v := range []float64{m.Coefficients.Intercept, m.Coefficients.Slope} {
		if !isFinite(v) {
			return fmt.Errorf("got %g, %w", v, ErrNonFiniteCoefficients)
		}
	}
	if m.Normalization.Scale != 0 {
		if err := m.Normalization.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TablePrint writes a human readable summary of the model
func (m Model) TablePrint(w io.Writer) error {
	return m.tablePrint(w, "", "  ")
}

func (m Model) tablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sModel:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sEquation: %s\n", prefix, indentExpand(indent, 1), m.Coefficients); err != nil {
		return err
	}
	if m.Options != nil && m.Options.Training != nil {
		if _, err := fmt.Fprintf(w, "%s%sLearning Rate: %g    Max Iterations: %d    Tolerance: %g\n",
			prefix, indentExpand(indent, 1),
			m.Options.Training.LearningRate,
			m.Options.Training.Iterations,
			m.Options.Training.Tolerance,
		); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%s%sIterations: %d    Converged: %t\n",
		prefix, indentExpand(indent, 1), m.Iterations, m.Converged); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sNormalization: Mean: %.3f    Scale: %.3f\n",
		prefix, indentExpand(indent, 1), m.Normalization.Mean, m.Normalization.Scale); err != nil {
		return err
	}
	if m.FeatureRange != nil {
		if _, err := fmt.Fprintf(w, "%s%sMileage: %.3f to %.3f\n",
			prefix, indentExpand(indent, 1), m.FeatureRange.Min, m.FeatureRange.Max); err != nil {
			return err
		}
	}
	if m.TargetRange != nil {
		if _, err := fmt.Fprintf(w, "%s%sPrice: %.3f to %.3f\n",
			prefix, indentExpand(indent, 1), m.TargetRange.Min, m.TargetRange.Max); err != nil {
			return err
		}
	}

	if m.Scores != nil {
		if _, err := fmt.Fprintf(w, "%s%sScores:\n", prefix, indentExpand(indent, 0)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%sCost: %.3f    MSE: %.3f    RMSE: %.3f    MAPE: %.3f    R2: %.3f\n",
			prefix, indentExpand(indent, 1),
			m.Scores.Cost,
			m.Scores.MSE,
			m.Scores.RMSE,
			m.Scores.MAPE,
			m.Scores.R2,
		); err != nil {
			return err
		}
	}

	return m.tablePrintWeights(w, prefix, indent, 0)
}

func (m Model) tablePrintWeights(w io.Writer, prefix, indent string, indentGrowth int) error {
	if _, err := fmt.Fprintf(w, "%s%sWeights:\n", prefix, indentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sSpace\tIntercept\tSlope\t\n", prefix, indentExpand(indent, indentGrowth+1)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%sNormalized\t%.3f\t%.3f\t\n",
		prefix, indentExpand(indent, indentGrowth+1),
		m.NormalizedCoefficients.Intercept, m.NormalizedCoefficients.Slope); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tbl, "%s%sOriginal\t%g\t%g\t\n",
		prefix, indentExpand(indent, indentGrowth+1),
		m.Coefficients.Intercept, m.Coefficients.Slope); err != nil {
		return err
	}
	return tbl.Flush()
}

func indentExpand(indent string, growth int) string {
	out := make([]byte, 0, len(indent)*growth)
	for i := 0; i < growth; i++ {
		out = append(out, indent...)
	}
	return string(out)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
