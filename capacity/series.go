package capacity

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// minChunkSize keeps parallel evaluation from spawning goroutines for a handful of samples.
const minChunkSize = 64

// EvaluateSeries applies Evaluate to every sample, preserving order and length.
// The first invalid sample aborts the series with a *SampleError; no value is coerced.
// An empty input yields an empty result.
func EvaluateSeries(samples []float64, cfg ModelConfig) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	results := make([]Result, len(samples))
	if err := evaluateInto(results, samples, 0, cfg); err != nil {
		return nil, err
	}
	return results, nil
}

// EvaluateSeriesParallel is EvaluateSeries with the input split into contiguous
// chunks evaluated by up to workers goroutines. Each chunk writes only its own
// slice of the output, so results come back in input order.
// workers <= 1 evaluates sequentially.
func EvaluateSeriesParallel(ctx context.Context, samples []float64, cfg ModelConfig, workers int) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 1 || len(samples) <= minChunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return EvaluateSeries(samples, cfg)
	}

	chunk := (len(samples) + workers - 1) / workers
	if chunk < minChunkSize {
		chunk = minChunkSize
	}
	logrus.Debugf("evaluating %d samples in chunks of %d with %d workers", len(samples), chunk, workers)

	results := make([]Result, len(samples))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(samples); start += chunk {
		start, end := start, min(start+chunk, len(samples))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return evaluateInto(results[start:end], samples[start:end], start, cfg)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// evaluateInto fills dst from samples; offset is the index of samples[0] in the caller's series.
func evaluateInto(dst []Result, samples []float64, offset int, cfg ModelConfig) error {
	for i, t := range samples {
		units, err := RequiredUnits(t, cfg)
		if err != nil {
			return &SampleError{Index: offset + i, Traffic: t, Err: err}
		}
		dst[i] = evaluate(t, units, cfg)
		logrus.Tracef("sample[%d] traffic=%v units=%d", offset+i, t, units)
	}
	return nil
}
