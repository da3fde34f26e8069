// Package testutil provides shared test infrastructure for the capacity packages.
// It loads the scenario dataset and holds float assertion helpers.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// ScenarioDataset represents the structure of testdata/scenarios.json.
type ScenarioDataset struct {
	Scenarios []Scenario `json:"scenarios"`
}

// Scenario is one hand-checked evaluation of the capacity model.
type Scenario struct {
	Name              string         `json:"name"`
	Target            float64        `json:"target"`
	TargetUtilization float64        `json:"target_utilization"`
	BurstCapacity     float64        `json:"tbc"`
	Traffic           float64        `json:"traffic"`
	Want              ScenarioResult `json:"want"`
}

// ScenarioResult is the expected outcome of a Scenario.
type ScenarioResult struct {
	Units             int     `json:"units"`
	TotalCapacity     float64 `json:"total_capacity"`
	TargetCapacity    float64 `json:"target_capacity"`
	AvailableCapacity float64 `json:"available_capacity"`
	ExcessCapacity    float64 `json:"excess_capacity"`
	ProxyMode         string  `json:"proxy_mode"`
}

// LoadScenarios loads the scenario dataset from the repository testdata directory.
// The path is resolved relative to this source file: capacity/internal/testutil/ → testdata/.
func LoadScenarios(t *testing.T) *ScenarioDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "scenarios.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read scenario dataset: %v", err)
	}

	var dataset ScenarioDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse scenario dataset: %v", err)
	}
	if len(dataset.Scenarios) == 0 {
		t.Fatal("scenario dataset is empty")
	}
	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
