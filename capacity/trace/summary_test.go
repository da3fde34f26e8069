package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/burst-capacity/capacity"
)

func TestSummarize_NilTrace_ReturnsZeroSummary(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Samples)
	assert.Equal(t, -1.0, s.FirstNotNeeded)
	assert.Equal(t, -1.0, s.LastNeeded)
}

func TestSummarize_EvaluatedSweep(t *testing.T) {
	// GIVEN the default revision swept from 0 to 1000 in steps of 100
	cfg, err := capacity.NewModelConfig(100, 0.7, 200)
	require.NoError(t, err)
	samples := []float64{0, 100, 200, 300, 400, 500, 600, 700, 800, 900, 1000}
	results, err := capacity.EvaluateSeries(samples, cfg)
	require.NoError(t, err)

	// WHEN the series is traced and summarized
	s := Summarize(NewProxyTrace(TraceLevelTransitions).ObserveAll(results))

	// THEN counts cover every sample; 300 and 400 sit exactly on the boundary and
	// 500 (8 pods, excess 100) is the first point that no longer needs proxying
	assert.Equal(t, 3, s.NeededCount)
	assert.Equal(t, 2, s.BoundaryCount)
	assert.Equal(t, len(samples), s.Samples)
	assert.Equal(t, len(samples), s.NeededCount+s.NotNeededCount+s.BoundaryCount)
	assert.Equal(t, 500.0, s.FirstNotNeeded)
	assert.Equal(t, 200.0, s.LastNeeded)
	assert.Equal(t, 2, s.TransitionCount)
}

func TestSummarize_AllNeeded(t *testing.T) {
	pt := NewProxyTrace(TraceLevelTransitions).ObserveAll([]capacity.Result{result(0, -5), result(3, -2)})
	s := Summarize(pt)
	assert.Equal(t, 2, s.NeededCount)
	assert.Equal(t, 0, s.TransitionCount)
	assert.Equal(t, -1.0, s.FirstNotNeeded)
	assert.Equal(t, 3.0, s.LastNeeded)
}
