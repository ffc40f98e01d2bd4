package main

import (
	"io"

	pricer "github.com/aouyang1/go-pricer"
	"github.com/aouyang1/go-pricer/dataset"
	"github.com/aouyang1/go-pricer/models"
	"github.com/aouyang1/go-pricer/stats"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/urfave/cli/v2"
)

func plotAction(c *cli.Context) error {
	u := newUI(c)

	ds, err := dataset.LoadCSVFile(c.Path(flagData))
	if err != nil {
		return err
	}
	m := pricer.LoadModel(c.Path(flagModel))

	r2, err := stats.RSquared(models.EstimateAll(ds.X, m.Coefficients), ds.Y)
	if err != nil {
		return err
	}

	output := c.Path(flagOutput)
	err = writePlot(output, func(w io.Writer) error {
		page := components.NewPage()
		page.AddCharts(pricer.ScatterFit(ds, m.Coefficients))
		return page.Render(w)
	})
	if err != nil {
		return err
	}

	u.infof("Regression line: %s", m.Coefficients)
	u.infof("R2: %.4f", r2)
	u.successf("Plot saved to %s", output)
	return nil
}
