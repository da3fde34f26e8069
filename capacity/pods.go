package capacity

import "fmt"

// PodCapacity describes the capacity of a fixed pod count, independent of traffic.
//
// The two excess figures bracket what a scale decision can leave behind: with the
// pods exactly at the target every pod contributes Target*(1-TargetUtilization) of
// slack; with load just short of triggering another pod, one pod's worth of target
// (less one request) is already consumed.
type PodCapacity struct {
	Pods            int       `json:"pods"`
	TotalCapacity   float64   `json:"total_capacity"`
	TargetCapacity  float64   `json:"target_capacity"`
	ExcessMinLoaded float64   `json:"excess_min_loaded"`
	ExcessMaxLoaded float64   `json:"excess_max_loaded"`
	ProxyMode       ProxyMode `json:"proxy_mode"` // ExcessMaxLoaded compared against BurstCapacity
}

// PodCapacities tabulates PodCapacity for 1..podRange pods.
func PodCapacities(podRange int, cfg ModelConfig) ([]PodCapacity, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if podRange < 1 {
		return nil, fmt.Errorf("pod range must be at least 1, got %d", podRange)
	}
	out := make([]PodCapacity, podRange)
	for i := range out {
		n := i + 1
		total := float64(n) * cfg.Target
		slack := total * (1 - cfg.TargetUtilization)
		maxLoaded := slack - cfg.Target + 1
		out[i] = PodCapacity{
			Pods:            n,
			TotalCapacity:   total,
			TargetCapacity:  total * cfg.TargetUtilization,
			ExcessMinLoaded: slack,
			ExcessMaxLoaded: maxLoaded,
			ProxyMode:       ProxyModeFor(maxLoaded - cfg.BurstCapacity),
		}
	}
	return out, nil
}
