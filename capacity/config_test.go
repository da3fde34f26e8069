package capacity

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelConfig_FieldEquivalence(t *testing.T) {
	got, err := NewModelConfig(100, 0.7, 200)
	require.NoError(t, err)
	want := ModelConfig{Target: 100, TargetUtilization: 0.7, BurstCapacity: 200}
	assert.Equal(t, want, got)
}

func TestModelConfig_Validate_AcceptsFullUtilization(t *testing.T) {
	cfg := ModelConfig{Target: 1, TargetUtilization: 1, BurstCapacity: 1}
	assert.NoError(t, cfg.Validate())
}

func TestModelConfig_Validate_RejectsInvariantViolations(t *testing.T) {
	tests := []struct {
		name string
		cfg  ModelConfig
	}{
		{"zero target", ModelConfig{Target: 0, TargetUtilization: 0.7, BurstCapacity: 200}},
		{"negative target", ModelConfig{Target: -1, TargetUtilization: 0.7, BurstCapacity: 200}},
		{"zero utilization", ModelConfig{Target: 100, TargetUtilization: 0, BurstCapacity: 200}},
		{"utilization above one", ModelConfig{Target: 100, TargetUtilization: 1.5, BurstCapacity: 200}},
		{"zero tbc", ModelConfig{Target: 100, TargetUtilization: 0.7, BurstCapacity: 0}},
		{"negative tbc", ModelConfig{Target: 100, TargetUtilization: 0.7, BurstCapacity: -1}},
		{"NaN target", ModelConfig{Target: math.NaN(), TargetUtilization: 0.7, BurstCapacity: 200}},
		{"infinite tbc", ModelConfig{Target: 100, TargetUtilization: 0.7, BurstCapacity: math.Inf(1)}},
		{"zero value", ModelConfig{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfiguration), "got %v", err)
		})
	}
}

func TestNewModelConfig_Invalid_ReturnsZeroValue(t *testing.T) {
	got, err := NewModelConfig(100, 1.5, 200)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, ModelConfig{}, got)
}
