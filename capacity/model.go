package capacity

import (
	"fmt"
	"math"
)

// ProxyMode says whether the request path should buffer through a proxy
// (the activator) to protect the revision from bursts.
type ProxyMode string

const (
	// ProxyNotNeeded means excess capacity is positive: enough slack to absorb the burst.
	ProxyNotNeeded ProxyMode = "not-needed"
	// ProxyNeeded means excess capacity is negative: the burst would queue, proxying should engage.
	ProxyNeeded ProxyMode = "needed"
	// ProxyBoundary means excess capacity is exactly zero.
	ProxyBoundary ProxyMode = "boundary"
)

// Sign returns +1, -1 or 0 for NotNeeded, Needed and Boundary respectively.
func (m ProxyMode) Sign() int {
	switch m {
	case ProxyNotNeeded:
		return 1
	case ProxyNeeded:
		return -1
	default:
		return 0
	}
}

// ProxyModeFor classifies an excess capacity by its sign.
// Zero is its own state; the magnitude is never used to normalize the sign.
func ProxyModeFor(excessCapacity float64) ProxyMode {
	switch {
	case excessCapacity > 0:
		return ProxyNotNeeded
	case excessCapacity < 0:
		return ProxyNeeded
	default:
		return ProxyBoundary
	}
}

// Result is the set of capacities derived from one traffic sample.
type Result struct {
	Traffic           float64   `json:"traffic"`
	Units             int       `json:"units"`
	TotalCapacity     float64   `json:"total_capacity"`
	TargetCapacity    float64   `json:"target_capacity"`
	AvailableCapacity float64   `json:"available_capacity"`
	ExcessCapacity    float64   `json:"excess_capacity"`
	ProxyMode         ProxyMode `json:"proxy_mode"`
}

// RequiredUnits returns the minimum number of pods that keep each pod at or
// below Target*TargetUtilization concurrent requests for the given traffic.
func RequiredUnits(traffic float64, cfg ModelConfig) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if err := validateTraffic(traffic); err != nil {
		return 0, err
	}
	units := math.Ceil(traffic / cfg.unitCapacity())
	// A subnormal traffic can underflow the division; any positive traffic needs a pod.
	if units == 0 && traffic > 0 {
		units = 1
	}
	if units >= float64(math.MaxInt) {
		return 0, fmt.Errorf("%w: traffic %v needs more pods than can be counted", ErrInvalidTrafficSample, traffic)
	}
	return int(units), nil
}

// Evaluate computes the capacities for a single traffic sample.
func Evaluate(traffic float64, cfg ModelConfig) (Result, error) {
	units, err := RequiredUnits(traffic, cfg)
	if err != nil {
		return Result{}, err
	}
	return evaluate(traffic, units, cfg), nil
}

// evaluate derives the capacities from an already validated sample and its unit count.
func evaluate(traffic float64, units int, cfg ModelConfig) Result {
	total := float64(units) * cfg.Target
	target := total * cfg.TargetUtilization
	available := total - traffic
	excess := available - cfg.BurstCapacity
	return Result{
		Traffic:           traffic,
		Units:             units,
		TotalCapacity:     total,
		TargetCapacity:    target,
		AvailableCapacity: available,
		ExcessCapacity:    excess,
		ProxyMode:         ProxyModeFor(excess),
	}
}

func validateTraffic(traffic float64) error {
	if math.IsNaN(traffic) || math.IsInf(traffic, 0) {
		return fmt.Errorf("%w: traffic must be finite, got %v", ErrInvalidTrafficSample, traffic)
	}
	if traffic < 0 {
		return fmt.Errorf("%w: traffic must be non-negative, got %v", ErrInvalidTrafficSample, traffic)
	}
	return nil
}
