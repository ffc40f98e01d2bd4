package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	pricer "github.com/aouyang1/go-pricer"
	"github.com/aouyang1/go-pricer/dataset"
	"github.com/urfave/cli/v2"
)

func trainAction(c *cli.Context) error {
	u := newUI(c)
	u.header("Car Price Training")

	opt, err := trainingOptions(c)
	if err != nil {
		return err
	}

	dataPath := c.Path(flagData)
	ds, err := dataset.LoadCSVFile(dataPath)
	if err != nil {
		return err
	}
	u.successf("Loaded %d entries from %s", ds.Len(), dataPath)

	summary, err := ds.Summarize()
	if err != nil {
		return err
	}
	u.section("Dataset")
	if err := u.summaryTable(summary); err != nil {
		return err
	}

	p, err := pricer.New(opt)
	if err != nil {
		return err
	}
	u.infof("Training with learning rate %g for at most %d iterations",
		opt.Training.LearningRate, opt.Training.Iterations)
	if err := p.Fit(ds.X, ds.Y); err != nil {
		return err
	}

	u.section("Training")
	if err := u.costTable(slices.Collect(p.CostTrace())); err != nil {
		return err
	}
	if p.Converged() {
		u.successf("Converged after %d iterations", p.Iterations())
	} else {
		u.warningf("Stopped at the iteration cap of %d without converging", p.Iterations())
	}

	u.section("Model")
	u.coefficients(p.Coefficients())
	if scores := p.FitScores(); scores != nil {
		u.infof("R2: %.4f    RMSE: %.2f    MAPE: %.4f", scores.R2, scores.RMSE, scores.MAPE)
	}

	m, err := p.Model()
	if err != nil {
		return err
	}
	modelPath := c.Path(flagModel)
	if err := pricer.SaveModel(modelPath, m); err != nil {
		return err
	}
	u.successf("Model saved to %s", modelPath)

	if plotPath := c.Path(flagPlot); plotPath != "" {
		if err := writePlot(plotPath, p.PlotFit); err != nil {
			return err
		}
		u.successf("Plot saved to %s", plotPath)
	}
	return nil
}

func writePlot(path string, render func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create plot file, %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("unable to render plot, %w", err)
	}
	return f.Close()
}
