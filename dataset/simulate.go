package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// GenerateX returns n evenly spaced values from start to end inclusive.
func GenerateX(n int, start, end float64) []float64 {
	if n <= 0 {
		return nil
	}
	x := make([]float64, n)
	if n == 1 {
		x[0] = start
		return x
	}
	return floats.Span(x, start, end)
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

// Clip raises every value below floor up to floor.
func (s Series) Clip(floor float64) Series {
	for i := range s {
		if s[i] < floor {
			s[i] = floor
		}
	}
	return s
}

// GenerateLinearY returns intercept + slope * x for every x.
func GenerateLinearY(x []float64, intercept, slope float64) Series {
	y := make([]float64, 0, len(x))
	for _, v := range x {
		y = append(y, intercept+slope*v)
	}
	return Series(y)
}

// GenerateNoise returns normally distributed noise with the given standard deviation. The seed
// makes the sequence reproducible.
func GenerateNoise(n int, stdDev float64, seed uint64) Series {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, rng.NormFloat64()*stdDev)
	}
	return Series(y)
}
