package main

import (
	"fmt"
	"io"

	pricer "github.com/aouyang1/go-pricer"
	"github.com/aouyang1/go-pricer/dataset"
	"github.com/aouyang1/go-pricer/models"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

// ui prints styled console output to the writers of the running app
type ui struct {
	out    io.Writer
	errOut io.Writer
}

func newUI(c *cli.Context) *ui {
	return &ui{
		out:    c.App.Writer,
		errOut: c.App.ErrWriter,
	}
}

func (u *ui) header(title string) {
	pterm.DefaultHeader.WithWriter(u.out).WithFullWidth().Println(title)
}

func (u *ui) section(title string) {
	pterm.DefaultSection.WithWriter(u.out).Println(title)
}

func (u *ui) infof(format string, a ...any) {
	pterm.Info.WithWriter(u.out).Printfln(format, a...)
}

func (u *ui) successf(format string, a ...any) {
	pterm.Success.WithWriter(u.out).Printfln(format, a...)
}

func (u *ui) warningf(format string, a ...any) {
	pterm.Warning.WithWriter(u.out).Printfln(format, a...)
}

func (u *ui) errorf(format string, a ...any) {
	pterm.Error.WithWriter(u.errOut).Printfln(format, a...)
}

func (u *ui) table(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithWriter(u.out).WithData(data).Render()
}

func (u *ui) summaryTable(s dataset.Summary) error {
	row := func(name string, cs dataset.ColumnSummary) []string {
		return []string{
			name,
			fmt.Sprintf("%.2f", cs.Min),
			fmt.Sprintf("%.2f", cs.Max),
			fmt.Sprintf("%.2f", cs.Mean),
			fmt.Sprintf("%.2f", cs.Median),
			fmt.Sprintf("%.2f", cs.StdDev),
		}
	}
	return u.table(pterm.TableData{
		{"Column", "Min", "Max", "Mean", "Median", "StdDev"},
		row("mileage", s.Feature),
		row("price", s.Target),
	})
}

func (u *ui) costTable(trace []models.CostSample) error {
	data := pterm.TableData{{"Iteration", "Cost"}}
	for _, s := range trace {
		data = append(data, []string{fmt.Sprintf("%d", s.Iteration), fmt.Sprintf("%.6f", s.Cost)})
	}
	return u.table(data)
}

func (u *ui) coefficients(c models.Coefficients) {
	u.infof("Base price (theta0): %.2f", c.Intercept)
	u.infof("Price per km (theta1): %.6f", c.Slope)
}

func (u *ui) prediction(pred pricer.Prediction) {
	u.infof("Car with %.0f km mileage", pred.Mileage)
	if pred.NegativePrice {
		u.warningf("Estimated price: %.2f", pred.Price)
		u.warningf("Negative price indicates the car is beyond economic repair!")
		return
	}
	u.successf("Estimated price: %.2f", pred.Price)
}

func (u *ui) outOfRange(mileage float64, trained *dataset.Range) {
	u.warningf("%.0f km is outside of the trained mileage range of %.0f to %.0f km, the prediction might be unreliable",
		mileage, trained.Min, trained.Max)
}
