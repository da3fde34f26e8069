package capacity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/burst-capacity/capacity/internal/testutil"
)

func defaultConfig(t *testing.T) ModelConfig {
	t.Helper()
	cfg, err := NewModelConfig(100, 0.7, 200)
	require.NoError(t, err)
	return cfg
}

func TestEvaluate_Scenarios(t *testing.T) {
	dataset := testutil.LoadScenarios(t)
	for _, sc := range dataset.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			cfg, err := NewModelConfig(sc.Target, sc.TargetUtilization, sc.BurstCapacity)
			require.NoError(t, err)

			got, err := Evaluate(sc.Traffic, cfg)
			require.NoError(t, err)

			assert.Equal(t, sc.Traffic, got.Traffic)
			assert.Equal(t, sc.Want.Units, got.Units, "units")
			assert.Equal(t, sc.Want.TotalCapacity, got.TotalCapacity, "total capacity")
			assert.Equal(t, sc.Want.TargetCapacity, got.TargetCapacity, "target capacity")
			assert.Equal(t, sc.Want.AvailableCapacity, got.AvailableCapacity, "available capacity")
			assert.Equal(t, sc.Want.ExcessCapacity, got.ExcessCapacity, "excess capacity")
			assert.Equal(t, ProxyMode(sc.Want.ProxyMode), got.ProxyMode, "proxy mode")
		})
	}
}

func TestRequiredUnits_ZeroTraffic_ZeroUnits(t *testing.T) {
	for _, cfg := range []ModelConfig{
		{Target: 100, TargetUtilization: 0.7, BurstCapacity: 200},
		{Target: 1, TargetUtilization: 0.01, BurstCapacity: 1},
		{Target: 0.5, TargetUtilization: 1, BurstCapacity: 1000},
	} {
		units, err := RequiredUnits(0, cfg)
		require.NoError(t, err)
		assert.Equal(t, 0, units)
	}
}

func TestRequiredUnits_PositiveTraffic_AtLeastOneUnit(t *testing.T) {
	cfg := defaultConfig(t)
	for _, traffic := range []float64{1e-9, 1e-300, math.SmallestNonzeroFloat64} {
		units, err := RequiredUnits(traffic, cfg)
		require.NoError(t, err)
		assert.Equal(t, 1, units, "traffic %v", traffic)

		r, err := Evaluate(traffic, cfg)
		require.NoError(t, err)
		assert.Equal(t, cfg.Target-traffic, r.AvailableCapacity, "traffic %v", traffic)
	}
}

func TestRequiredUnits_MonotonicInTraffic(t *testing.T) {
	// GIVEN a fixed configuration
	cfg := defaultConfig(t)

	// WHEN traffic sweeps upward in fine steps
	prev := -1
	for traffic := 0.0; traffic <= 2000; traffic += 0.25 {
		units, err := RequiredUnits(traffic, cfg)
		require.NoError(t, err)

		// THEN the unit count never decreases and is never negative
		assert.GreaterOrEqual(t, units, 0)
		if units < prev {
			t.Fatalf("units decreased from %d to %d at traffic %v", prev, units, traffic)
		}
		prev = units
	}
}

func TestRequiredUnits_ExactMultiple_DoesNotRoundUp(t *testing.T) {
	cfg := ModelConfig{Target: 10, TargetUtilization: 1, BurstCapacity: 1}
	units, err := RequiredUnits(30, cfg)
	require.NoError(t, err)
	assert.Equal(t, 3, units)

	units, err = RequiredUnits(30.5, cfg)
	require.NoError(t, err)
	assert.Equal(t, 4, units)
}

func TestRequiredUnits_InvalidTraffic(t *testing.T) {
	cfg := defaultConfig(t)
	for _, traffic := range []float64{-1, -1e-12, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := RequiredUnits(traffic, cfg)
		assert.ErrorIs(t, err, ErrInvalidTrafficSample, "traffic %v", traffic)
	}
}

func TestRequiredUnits_UncountablePods_ReturnsError(t *testing.T) {
	cfg := ModelConfig{Target: 1e-300, TargetUtilization: 0.01, BurstCapacity: 1}
	_, err := RequiredUnits(1e10, cfg)
	assert.ErrorIs(t, err, ErrInvalidTrafficSample)
}

func TestEvaluate_InvalidConfig_FailsForEveryOperation(t *testing.T) {
	for _, cfg := range []ModelConfig{
		{Target: 0, TargetUtilization: 0.7, BurstCapacity: 200},
		{Target: 100, TargetUtilization: 1.5, BurstCapacity: 200},
		{Target: 100, TargetUtilization: 0.7, BurstCapacity: -1},
	} {
		_, err := RequiredUnits(10, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = Evaluate(10, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = EvaluateSeries([]float64{10}, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)

		_, err = PodCapacities(3, cfg)
		assert.ErrorIs(t, err, ErrInvalidConfiguration)
	}
}

func TestEvaluate_InvalidConfig_CheckedBeforeTraffic(t *testing.T) {
	// GIVEN both an invalid config and an invalid sample
	cfg := ModelConfig{Target: 0, TargetUtilization: 0.7, BurstCapacity: 200}

	// WHEN evaluating
	_, err := Evaluate(-5, cfg)

	// THEN the configuration error wins
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.NotErrorIs(t, err, ErrInvalidTrafficSample)
}

func TestEvaluate_DerivedCapacitiesFollowFormulas(t *testing.T) {
	cfgs := []ModelConfig{
		{Target: 100, TargetUtilization: 0.7, BurstCapacity: 200},
		{Target: 7, TargetUtilization: 0.33, BurstCapacity: 13.5},
		{Target: 250, TargetUtilization: 1, BurstCapacity: 1},
	}
	for _, cfg := range cfgs {
		for traffic := 0.0; traffic <= 1500; traffic += 17.3 {
			got, err := Evaluate(traffic, cfg)
			require.NoError(t, err)

			assert.Equal(t, float64(got.Units)*cfg.Target, got.TotalCapacity)
			assert.Equal(t, got.TotalCapacity*cfg.TargetUtilization, got.TargetCapacity)
			assert.Equal(t, got.TotalCapacity-traffic, got.AvailableCapacity)
			assert.Equal(t, got.AvailableCapacity-cfg.BurstCapacity, got.ExcessCapacity)
			assert.Equal(t, ProxyModeFor(got.ExcessCapacity), got.ProxyMode)
		}
	}
}

func TestProxyModeFor_SignOfExcess(t *testing.T) {
	tests := []struct {
		excess float64
		want   ProxyMode
		sign   int
	}{
		{100, ProxyNotNeeded, 1},
		{1e-12, ProxyNotNeeded, 1},
		{-170, ProxyNeeded, -1},
		{-1e-12, ProxyNeeded, -1},
		{0, ProxyBoundary, 0},
		{math.Copysign(0, -1), ProxyBoundary, 0},
	}
	for _, tc := range tests {
		got := ProxyModeFor(tc.excess)
		assert.Equal(t, tc.want, got, "excess %v", tc.excess)
		assert.Equal(t, tc.sign, got.Sign(), "excess %v", tc.excess)
	}
}
