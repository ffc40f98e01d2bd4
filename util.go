package pricer

import (
	"fmt"
	"io"
	"math"

	"github.com/aouyang1/go-pricer/dataset"
	"github.com/aouyang1/go-pricer/models"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
)

// ScatterFit generates an echart scatter plot of the training data overlapped with the fitted line
// drawn across the mileage range. The title carries the fitted equation.
func ScatterFit(trainingData *dataset.Dataset, c models.Coefficients) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    "Price Fit",
				Subtitle: c.String(),
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "mileage", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "price", Type: "value"}),
	)

	scatterData := make([]opts.ScatterData, 0, trainingData.Len())
	for i := 0; i < trainingData.Len(); i++ {
		scatterData = append(scatterData, opts.ScatterData{Value: []float64{trainingData.X[i], trainingData.Y[i]}})
	}
	scatter.AddSeries("Actual", scatterData)

	lo, hi := floats.Min(trainingData.X), floats.Max(trainingData.X)
	line := charts.NewLine()
	line.AddSeries("Fit", []opts.LineData{
		{Value: []float64{lo, models.Estimate(lo, c)}},
		{Value: []float64{hi, models.Estimate(hi, c)}},
	})
	scatter.Overlap(line)
	return scatter
}

// LineCost generates an echart line chart of the training cost against the iteration
func LineCost(trace []models.CostSample) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Training Cost",
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "iteration"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cost"}),
	)

	iterations := make([]int, 0, len(trace))
	lineData := make([]opts.LineData, 0, len(trace))
	for _, s := range trace {
		if math.IsNaN(s.Cost) {
			continue
		}
		iterations = append(iterations, s.Iteration)
		lineData = append(lineData, opts.LineData{Value: s.Cost})
	}

	line.SetXAxis(iterations).AddSeries("Cost", lineData)
	return line
}

// PlotFit uses the Apache Echarts library to generate an html page showing the training data with
// the fitted line and the cost over the training iterations
func (p *Pricer) PlotFit(w io.Writer) error {
	if !p.trained {
		return ErrUntrained
	}
	td := p.TrainingData()
	if td == nil {
		return fmt.Errorf("model was loaded without training data, %w", ErrNoTrainingData)
	}

	page := components.NewPage()
	page.AddCharts(
		ScatterFit(td, p.coef),
		LineCost(p.trace),
	)
	return page.Render(w)
}
