package capacity

import (
	"fmt"
	"math"
)

// ModelConfig groups the revision parameters the capacity model is evaluated under.
// Treat it as an immutable value: construct it once with NewModelConfig and pass it
// to every call.
type ModelConfig struct {
	Target            float64 `json:"target"`             // per-pod concurrency target (> 0)
	TargetUtilization float64 `json:"target_utilization"` // fraction of Target treated as full, (0, 1]
	BurstCapacity     float64 `json:"tbc"`                // desired slack in concurrent requests (> 0)
}

// NewModelConfig builds a ModelConfig and validates it.
func NewModelConfig(target, targetUtilization, burstCapacity float64) (ModelConfig, error) {
	cfg := ModelConfig{
		Target:            target,
		TargetUtilization: targetUtilization,
		BurstCapacity:     burstCapacity,
	}
	if err := cfg.Validate(); err != nil {
		return ModelConfig{}, err
	}
	return cfg, nil
}

// Validate checks the ModelConfig invariants. All errors wrap ErrInvalidConfiguration.
func (c ModelConfig) Validate() error {
	if err := validateFinitePositive("target", c.Target); err != nil {
		return err
	}
	if err := validateFinitePositive("target_utilization", c.TargetUtilization); err != nil {
		return err
	}
	if c.TargetUtilization > 1 {
		return fmt.Errorf("%w: target_utilization must be at most 1, got %v", ErrInvalidConfiguration, c.TargetUtilization)
	}
	return validateFinitePositive("tbc", c.BurstCapacity)
}

// unitCapacity is the concurrency one pod absorbs at the target utilization.
func (c ModelConfig) unitCapacity() float64 {
	return c.Target * c.TargetUtilization
}

func validateFinitePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidConfiguration, name, v)
	}
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfiguration, name, v)
	}
	return nil
}
