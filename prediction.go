package pricer

// Prediction is the estimated price of a single mileage
type Prediction struct {
	Mileage float64 `json:"mileage"`
	Price   float64 `json:"price"`

	// OutOfRange is set when the mileage lies outside of the mileages seen during training. The
	// estimate is still returned.
	OutOfRange bool `json:"out_of_range"`

	// NegativePrice is set when the estimate falls below zero, usually far beyond the training range.
	NegativePrice bool `json:"negative_price"`
}
