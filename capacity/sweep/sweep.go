// Package sweep builds the ordered traffic domain a capacity curve is evaluated over.
// It is kept apart from the capacity model, which has no notion of stepping.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrInvalidDomain reports bounds or a step count that cannot describe a sweep.
var ErrInvalidDomain = errors.New("invalid traffic domain")

// MinStep is the smallest step between two swept traffic values.
const MinStep = 1.0

// Domain is a swept traffic range.
type Domain struct {
	Min       float64 // first traffic value (>= 0)
	Max       float64 // last traffic value is the first sample >= Max
	StepCount int     // requested number of steps between Min and Max (>= 1)
}

// Validate checks that the domain describes a non-empty increasing sweep.
func (d Domain) Validate() error {
	if math.IsNaN(d.Min) || math.IsInf(d.Min, 0) || math.IsNaN(d.Max) || math.IsInf(d.Max, 0) {
		return fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidDomain, d.Min, d.Max)
	}
	if d.Min < 0 {
		return fmt.Errorf("%w: min traffic must be non-negative, got %v", ErrInvalidDomain, d.Min)
	}
	if d.Min >= d.Max {
		return fmt.Errorf("%w: min traffic %v must be less than max traffic %v", ErrInvalidDomain, d.Min, d.Max)
	}
	if d.StepCount < 1 {
		return fmt.Errorf("%w: step count must be at least 1, got %d", ErrInvalidDomain, d.StepCount)
	}
	return nil
}

// Step returns the distance between consecutive samples: the width rounded half to
// even, divided by StepCount, or MinStep when that would be smaller than one unit of traffic.
func (d Domain) Step() float64 {
	step := math.RoundToEven(d.Max-d.Min) / float64(d.StepCount)
	if step < MinStep {
		logrus.Debugf("step %v over [%v, %v] is below %v, using %v", step, d.Min, d.Max, MinStep, MinStep)
		return MinStep
	}
	return step
}

// Samples returns Min, Min+step, ... ending at the first value that reaches Max.
// The result is strictly increasing and never empty.
func (d Domain) Samples() ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	step := d.Step()
	n := int(math.Floor((d.Max-d.Min)/step)) + 1
	// Absorb rounding so a last sample that lands on Max does not spill one step over.
	if last := d.Min + float64(n-1)*step; last < d.Max-step*1e-9 {
		n++
	}
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = d.Min + float64(i)*step
	}
	return samples, nil
}
