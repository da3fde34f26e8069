package capacity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration reports a ModelConfig that violates its invariants.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvalidTrafficSample reports a negative or non-finite traffic value.
	ErrInvalidTrafficSample = errors.New("invalid traffic sample")
)

// SampleError identifies the element of a series whose evaluation failed.
type SampleError struct {
	Index   int     // position in the input series
	Traffic float64 // offending traffic value
	Err     error   // underlying error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample[%d] (traffic=%v): %v", e.Index, e.Traffic, e.Err)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}
