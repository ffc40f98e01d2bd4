package main

import (
	"errors"
	"strconv"
	"strings"

	pricer "github.com/aouyang1/go-pricer"
	"github.com/aouyang1/go-pricer/models"
	"github.com/urfave/cli/v2"
)

func predictAction(c *cli.Context, p prompter) error {
	u := newUI(c)

	model := pricer.LoadModel(c.Path(flagModel))
	pr, err := pricer.NewFromModel(model)
	if err != nil {
		return err
	}

	if c.IsSet(flagMileage) {
		pred, err := pr.Estimate(c.Float64(flagMileage))
		if err != nil {
			return err
		}
		if pred.OutOfRange {
			u.outOfRange(pred.Mileage, pr.FeatureRange())
		}
		u.prediction(pred)
		return nil
	}

	u.header("Car Price Prediction")
	if model.Coefficients == (models.Coefficients{}) {
		u.warningf("No trained model loaded, every estimate will be 0. Run the train command first.")
	}
	u.coefficients(model.Coefficients)

	for {
		pred, err := promptEstimate(u, p, pr)
		if err != nil {
			return err
		}
		u.prediction(pred)

		again, err := p.Confirm("Would you like to estimate another price?")
		if err != nil {
			return err
		}
		if !again {
			break
		}
	}
	u.successf("Goodbye!")
	return nil
}

// promptEstimate asks for a mileage until a valid one is given. Mileages outside the training range
// need to be confirmed.
func promptEstimate(u *ui, p prompter, pr *pricer.Pricer) (pricer.Prediction, error) {
	for {
		answer, err := p.Mileage()
		if err != nil {
			return pricer.Prediction{}, err
		}

		mileage, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
		if err != nil {
			u.errorf("Invalid input %q. Please enter a numeric value.", answer)
			continue
		}

		pred, err := pr.Estimate(mileage)
		if errors.Is(err, pricer.ErrNegativeMileage) {
			u.errorf("Mileage cannot be negative. Please enter a valid mileage.")
			continue
		}
		if errors.Is(err, pricer.ErrNonFiniteMileage) {
			u.errorf("Invalid input %q. Please enter a finite mileage.", answer)
			continue
		}
		if err != nil {
			return pricer.Prediction{}, err
		}

		if pred.OutOfRange {
			u.outOfRange(pred.Mileage, pr.FeatureRange())
			ok, err := p.Confirm("Continue anyway?")
			if err != nil {
				return pricer.Prediction{}, err
			}
			if !ok {
				continue
			}
		}
		return pred, nil
	}
}
