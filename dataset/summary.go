package dataset

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// ColumnSummary describes the distribution of a single column
type ColumnSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Summary describes the feature and target columns of a dataset
type Summary struct {
	Samples int           `json:"samples"`
	Feature ColumnSummary `json:"feature"`
	Target  ColumnSummary `json:"target"`
}

// Summarize computes the summary statistics of both columns
func (d *Dataset) Summarize() (Summary, error) {
	feat, err := summarizeColumn(d.X)
	if err != nil {
		return Summary{}, fmt.Errorf("unable to summarize feature, %w", err)
	}
	target, err := summarizeColumn(d.Y)
	if err != nil {
		return Summary{}, fmt.Errorf("unable to summarize target, %w", err)
	}
	return Summary{
		Samples: d.Len(),
		Feature: feat,
		Target:  target,
	}, nil
}

func summarizeColumn(col []float64) (ColumnSummary, error) {
	data := stats.Float64Data(col)

	var cs ColumnSummary
	var err error
	if cs.Min, err = stats.Min(data); err != nil {
		return cs, err
	}
	if cs.Max, err = stats.Max(data); err != nil {
		return cs, err
	}
	if cs.Mean, err = stats.Mean(data); err != nil {
		return cs, err
	}
	if cs.Median, err = stats.Median(data); err != nil {
		return cs, err
	}
	if cs.StdDev, err = stats.StandardDeviationPopulation(data); err != nil {
		return cs, err
	}
	return cs, nil
}
