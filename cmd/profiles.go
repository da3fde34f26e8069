package cmd

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile is a named set of revision and sweep parameters in profiles.yaml.
// Zero-valued fields leave the corresponding flag default in place.
type Profile struct {
	Target            float64 `yaml:"target"`
	TargetUtilization float64 `yaml:"target_utilization"`
	BurstCapacity     float64 `yaml:"tbc"`
	MinTraffic        float64 `yaml:"min_traffic"`
	MaxTraffic        float64 `yaml:"max_traffic"`
	StepCount         int     `yaml:"step_count"`
	PodRange          int     `yaml:"pod_range"`
	Description       string  `yaml:"description"`
}

// ProfilesConfig represents the full profiles.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ProfilesConfig struct {
	Version  string             `yaml:"version"`
	Profiles map[string]Profile `yaml:"profiles"`
}

// LoadProfiles parses a profiles file with strict field checking, so typos are errors.
func LoadProfiles(path string) (*ProfilesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles file: %w", err)
	}
	var cfg ProfilesConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing profiles file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadProfile returns the named profile from the file at path.
func LoadProfile(path, name string) (*Profile, error) {
	cfg, err := LoadProfiles(path)
	if err != nil {
		return nil, err
	}
	p, ok := cfg.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found in %s; available: %v", name, path, cfg.Names())
	}
	return &p, nil
}

// Names returns the profile names in sorted order.
func (c *ProfilesConfig) Names() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
