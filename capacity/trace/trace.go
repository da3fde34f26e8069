package trace

import "github.com/inference-sim/burst-capacity/capacity"

// TraceLevel controls the verbosity of transition tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions captures every proxy-mode change along the series.
	TraceLevelTransitions TraceLevel = "transitions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// ProxyTrace collects mode transitions while a series is replayed through Observe.
// Per-mode counts are kept at every level; transitions only at TraceLevelTransitions.
type ProxyTrace struct {
	Level       TraceLevel
	Transitions []TransitionRecord
	Counts      map[capacity.ProxyMode]int

	observed       int
	last           capacity.ProxyMode
	firstNotNeeded float64
	lastNeeded     float64
}

// NewProxyTrace creates a ProxyTrace ready for recording.
func NewProxyTrace(level TraceLevel) *ProxyTrace {
	return &ProxyTrace{
		Level:          level,
		Transitions:    make([]TransitionRecord, 0),
		Counts:         make(map[capacity.ProxyMode]int),
		firstNotNeeded: -1,
		lastNeeded:     -1,
	}
}

// Observe feeds the next result of the series. Results must arrive in series order.
func (pt *ProxyTrace) Observe(r capacity.Result) {
	if pt.Level == TraceLevelTransitions && pt.observed > 0 && r.ProxyMode != pt.last {
		pt.Transitions = append(pt.Transitions, TransitionRecord{
			Index:   pt.observed,
			Traffic: r.Traffic,
			From:    pt.last,
			To:      r.ProxyMode,
			Excess:  r.ExcessCapacity,
		})
	}
	switch {
	case r.ProxyMode == capacity.ProxyNotNeeded && pt.firstNotNeeded < 0:
		pt.firstNotNeeded = r.Traffic
	case r.ProxyMode == capacity.ProxyNeeded:
		pt.lastNeeded = r.Traffic
	}
	pt.Counts[r.ProxyMode]++
	pt.last = r.ProxyMode
	pt.observed++
}

// ObserveAll feeds a whole series in order and returns the trace for chaining.
func (pt *ProxyTrace) ObserveAll(results []capacity.Result) *ProxyTrace {
	for _, r := range results {
		pt.Observe(r)
	}
	return pt
}

// Len returns the number of results observed.
func (pt *ProxyTrace) Len() int {
	return pt.observed
}
