package main

import (
	"fmt"
	"os"

	pricer "github.com/aouyang1/go-pricer"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"
)

// trainingOptions builds the pricer options from the optional json config file. Flags that were
// explicitly set override values from the file.
func trainingOptions(c *cli.Context) (*pricer.Options, error) {
	opt := pricer.NewDefaultOptions()
	opt.Training.DetectDivergence = c.Bool(flagDetectDivergence)

	if path := c.Path(flagConfig); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config, %w", err)
		}
		if err := json.Unmarshal(data, opt); err != nil {
			return nil, fmt.Errorf("unable to parse config %s, %w", path, err)
		}
		if opt.Training == nil {
			opt.Training = pricer.NewDefaultOptions().Training
			opt.Training.DetectDivergence = c.Bool(flagDetectDivergence)
		}
	}

	if c.IsSet(flagLearningRate) {
		opt.Training.LearningRate = c.Float64(flagLearningRate)
	}
	if c.IsSet(flagIterations) {
		opt.Training.Iterations = c.Int(flagIterations)
	}
	if c.IsSet(flagTolerance) {
		opt.Training.Tolerance = c.Float64(flagTolerance)
	}
	if c.IsSet(flagReportInterval) {
		opt.Training.ReportInterval = c.Int(flagReportInterval)
	}
	if c.IsSet(flagParallel) {
		opt.Training.Parallelization = c.Int(flagParallel)
	}
	if c.IsSet(flagDetectDivergence) {
		opt.Training.DetectDivergence = c.Bool(flagDetectDivergence)
	}

	return opt.Validate()
}
