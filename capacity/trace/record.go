// Package trace records where the proxy mode changes along an evaluated traffic series.
package trace

import "github.com/inference-sim/burst-capacity/capacity"

// TransitionRecord captures one change of proxy mode between consecutive samples.
type TransitionRecord struct {
	Index   int                // position of the first sample in the new mode
	Traffic float64            // traffic at which the new mode starts
	From    capacity.ProxyMode // mode of the preceding sample
	To      capacity.ProxyMode // mode starting at Traffic
	Excess  float64            // excess capacity at Traffic
}
