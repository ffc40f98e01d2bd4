package models

import "errors"

var (
	ErrNoTrainingData          = errors.New("no training data")
	ErrFeatureLenMismatch      = errors.New("feature length does not match target length")
	ErrNoOptions               = errors.New("no initialized model options")
	ErrNonPositiveLearningRate = errors.New("learning rate must be positive")
	ErrNonPositiveIterations   = errors.New("iterations must be positive")
	ErrNonPositiveTolerance    = errors.New("tolerance must be positive")
	ErrNegativeReportInterval  = errors.New("negative report interval")
	ErrNegativeParallelization = errors.New("negative parallelization")
	ErrDiverged                = errors.New("gradient descent diverged")
)
