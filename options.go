package pricer

import (
	"fmt"

	"github.com/aouyang1/go-pricer/models"
)

// Options configures how a Pricer trains its model
type Options struct {
	Training *models.GradientDescentOptions `json:"training"`
}

// NewDefaultOptions returns a set of options training with the default learning rate, iteration
// cap and convergence tolerance
func NewDefaultOptions() *Options {
	return &Options{
		Training: models.NewDefaultGradientDescentOptions(),
	}
}

// Validate fills in defaults for unset options and rejects invalid training configuration
func (o *Options) Validate() (*Options, error) {
	if o == nil {
		o = NewDefaultOptions()
	}
	training, err := o.Training.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid training options, %w", err)
	}
	o.Training = training
	return o, nil
}
