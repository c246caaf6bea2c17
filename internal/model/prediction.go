package model

import (
	"errors"
	"fmt"
	"math"
)

// Prediction validation errors.
var (
	ErrNoPredictionSignal = errors.New("prediction response carries neither probability nor fraud flag")
	ErrBadProbability     = errors.New("probability must be a finite number in [0,1]")
)

// RawPrediction is the untrusted response body from the prediction
// service. Both fields are optional on the wire, so they are pointers;
// Validate must pass before the values are used.
type RawPrediction struct {
	IsFraud     *bool    `json:"isFraud"`
	Probability *float64 `json:"probability"`
}

// Validate checks that the response carries at least one usable signal
// and that the probability, when present, is a finite number in [0,1].
func (r RawPrediction) Validate() error {
	if r.IsFraud == nil && r.Probability == nil {
		return ErrNoPredictionSignal
	}
	if r.Probability != nil {
		p := *r.Probability
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
			return fmt.Errorf("%w: got %v", ErrBadProbability, p)
		}
	}
	return nil
}

// FraudFlag returns the explicit fraud flag, or false when absent.
func (r RawPrediction) FraudFlag() bool {
	return r.IsFraud != nil && *r.IsFraud
}

// ProbabilityValue returns the probability, or 0 when absent.
func (r RawPrediction) ProbabilityValue() float64 {
	if r.Probability == nil {
		return 0
	}
	return *r.Probability
}
