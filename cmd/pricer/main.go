// Package main is the pricer command tool. It trains a mileage to price model from a csv file,
// estimates prices from the saved model, plots the fit and prints the saved model.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	flagConfig           = "config"
	flagDebug            = "debug"
	flagData             = "data"
	flagModel            = "model"
	flagLearningRate     = "learning-rate"
	flagIterations       = "iterations"
	flagTolerance        = "tolerance"
	flagReportInterval   = "report-interval"
	flagParallel         = "parallel"
	flagDetectDivergence = "detect-divergence"
	flagPlot             = "plot"
	flagMileage          = "mileage"
	flagOutput           = "output"

	defaultDataPath  = "data.csv"
	defaultModelPath = "thetas.json"
	defaultPlotPath  = "pricer.html"
)

func main() {
	app := newApp(os.Stdout, os.Stderr, newPtermPrompter())
	if err := app.Run(os.Args); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err)
		os.Exit(1)
	}
}

// newApp returns the command tool with its output written to out and logs and errors written to
// errOut. Interactive input is read through p.
func newApp(out, errOut io.Writer, p prompter) *cli.App {
	dataFlag := &cli.PathFlag{
		Name:    flagData,
		Aliases: []string{"d"},
		Usage:   "load the mileage and price csv from `FILE`",
		EnvVars: []string{"PRICER_DATA"},
		Value:   defaultDataPath,
	}
	modelFlag := &cli.PathFlag{
		Name:    flagModel,
		Aliases: []string{"m"},
		Usage:   "model `FILE`, the extension selects the format: .txt, .json, .json.zst or .json.lz4",
		EnvVars: []string{"PRICER_MODEL"},
		Value:   defaultModelPath,
	}

	return &cli.App{
		Name:      "pricer",
		Usage:     "estimate a car price from its mileage",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load training options from a json `FILE`",
				EnvVars: []string{"PRICER_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Usage:   "enable debug logging",
				EnvVars: []string{"PRICER_DEBUG"},
			},
		},
		Before: func(c *cli.Context) error {
			level := pterm.LogLevelInfo
			if c.Bool(flagDebug) {
				level = pterm.LogLevelDebug
			}
			logger := pterm.DefaultLogger.WithLevel(level).WithWriter(c.App.ErrWriter)
			slog.SetDefault(slog.New(pterm.NewSlogHandler(logger)))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "train",
				Usage: "train the model with gradient descent and save it",
				Flags: []cli.Flag{
					dataFlag,
					modelFlag,
					&cli.Float64Flag{
						Name:    flagLearningRate,
						Usage:   "gradient descent learning rate",
						EnvVars: []string{"PRICER_LEARNING_RATE"},
					},
					&cli.IntFlag{
						Name:    flagIterations,
						Usage:   "maximum number of gradient descent iterations",
						EnvVars: []string{"PRICER_ITERATIONS"},
					},
					&cli.Float64Flag{
						Name:    flagTolerance,
						Usage:   "stop once both coefficient steps are smaller than this",
						EnvVars: []string{"PRICER_TOLERANCE"},
					},
					&cli.IntFlag{
						Name:    flagReportInterval,
						Usage:   "record the cost every n iterations, 0 only records the final cost",
						EnvVars: []string{"PRICER_REPORT_INTERVAL"},
					},
					&cli.IntFlag{
						Name:    flagParallel,
						Usage:   "split the gradient sums across n goroutines on large datasets",
						EnvVars: []string{"PRICER_PARALLEL"},
					},
					&cli.BoolFlag{
						Name:    flagDetectDivergence,
						Usage:   "fail the training if the cost increases between iterations",
						EnvVars: []string{"PRICER_DETECT_DIVERGENCE"},
						Value:   true,
					},
					&cli.PathFlag{
						Name:  flagPlot,
						Usage: "also write the fit and cost plot to an html `FILE`",
					},
				},
				Action: trainAction,
			},
			{
				Name:  "predict",
				Usage: "estimate prices with the saved model",
				Flags: []cli.Flag{
					modelFlag,
					&cli.Float64Flag{
						Name:  flagMileage,
						Usage: "estimate a single mileage instead of prompting",
					},
				},
				Action: func(c *cli.Context) error {
					return predictAction(c, p)
				},
			},
			{
				Name:  "plot",
				Usage: "plot the data with the saved regression line",
				Flags: []cli.Flag{
					dataFlag,
					modelFlag,
					&cli.PathFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   "write the html plot to `FILE`",
						Value:   defaultPlotPath,
					},
				},
				Action: plotAction,
			},
			{
				Name:   "inspect",
				Usage:  "print the saved model",
				Flags:  []cli.Flag{modelFlag},
				Action: inspectAction,
			},
		},
	}
}
