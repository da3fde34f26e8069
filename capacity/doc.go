// Package capacity models how a horizontally-scaled revision's capacity tracks
// incoming traffic under a concurrency target, a target utilization and a
// target burst capacity (TBC).
//
// # Reading Guide
//
//   - config.go: ModelConfig and its invariants
//   - model.go: RequiredUnits and Evaluate, the per-sample formulas
//   - series.go: elementwise evaluation over a traffic domain
//   - pods.go: capacity as a function of pod count rather than traffic
//
// Every function is pure. A ModelConfig is validated on each call, so an
// invalid configuration fails every operation with ErrInvalidConfiguration
// instead of being clamped.
//
// Sub-packages:
//   - capacity/sweep/: construction of the swept traffic domain
//   - capacity/trace/: proxy-mode transition recording along a series
package capacity
