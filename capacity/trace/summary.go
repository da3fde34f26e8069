package trace

import "github.com/inference-sim/burst-capacity/capacity"

// TraceSummary aggregates statistics from a ProxyTrace.
type TraceSummary struct {
	Samples         int     `json:"samples"`
	NeededCount     int     `json:"needed"`
	NotNeededCount  int     `json:"not_needed"`
	BoundaryCount   int     `json:"boundary"`
	TransitionCount int     `json:"transitions"`
	FirstNotNeeded  float64 `json:"first_not_needed_traffic"` // -1 if proxying is needed everywhere
	LastNeeded      float64 `json:"last_needed_traffic"`      // -1 if proxying is never needed
}

// Summarize computes aggregate statistics from a ProxyTrace.
// Safe for nil or empty traces.
func Summarize(pt *ProxyTrace) *TraceSummary {
	summary := &TraceSummary{FirstNotNeeded: -1, LastNeeded: -1}
	if pt == nil {
		return summary
	}

	summary.Samples = pt.observed
	summary.NeededCount = pt.Counts[capacity.ProxyNeeded]
	summary.NotNeededCount = pt.Counts[capacity.ProxyNotNeeded]
	summary.BoundaryCount = pt.Counts[capacity.ProxyBoundary]
	summary.TransitionCount = len(pt.Transitions)

	summary.FirstNotNeeded = pt.firstNotNeeded
	summary.LastNeeded = pt.lastNeeded
	return summary
}
