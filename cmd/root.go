package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/burst-capacity/capacity"
)

var (
	logLevel string // Log verbosity level

	// Revision parameters shared by every subcommand
	target            float64 // Per-pod concurrency target
	targetUtilization float64 // Fraction of target at which pods are considered full
	burstCapacity     float64 // Target burst capacity (TBC)

	outputFormat string // table, json, csv or prom
	profileName  string // Named preset from the profiles file
	profilesPath string // Path to the profiles YAML
)

// Flag bounds accepted by the CLI. The model itself only requires positivity.
const (
	minTargetUtilization = 0.01
	maxTrafficLimit      = 1e8
	minStepCount         = 5
	maxStepCount         = 500
	minPodRange          = 2
	maxPodRange          = 1000
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "tbc",
	Short: "Explore how target burst capacity drives proxy mode for a revision",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addModelFlags registers the revision parameter flags on a subcommand.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&target, "target", 100, "The target concurrency per pod")
	cmd.Flags().Float64Var(&targetUtilization, "target-utilization", 0.7, "The target utilization rate: [0.01, 1] range")
	cmd.Flags().Float64Var(&burstCapacity, "tbc", 200, "The target burst capacity")
	cmd.Flags().StringVar(&outputFormat, "output", string(formatTable), "Output format (table, json, csv, prom)")
	cmd.Flags().StringVar(&profileName, "profile", "", "Named parameter preset from the profiles file")
	cmd.Flags().StringVar(&profilesPath, "profiles-file", "profiles.yaml", "Path to the profiles YAML file")
}

// resolveModelConfig applies the selected profile and validates the revision flags.
// Flags set explicitly on the command line win over profile values.
func resolveModelConfig(cmd *cobra.Command) (capacity.ModelConfig, *Profile, error) {
	var profile *Profile
	if profileName != "" {
		p, err := LoadProfile(profilesPath, profileName)
		if err != nil {
			return capacity.ModelConfig{}, nil, err
		}
		profile = p
		overrideUnchanged(cmd, "target", &target, p.Target)
		overrideUnchanged(cmd, "target-utilization", &targetUtilization, p.TargetUtilization)
		overrideUnchanged(cmd, "tbc", &burstCapacity, p.BurstCapacity)
	}
	if targetUtilization < minTargetUtilization || targetUtilization > 1 {
		return capacity.ModelConfig{}, nil, fmt.Errorf("--target-utilization must be in [%v, 1], got %v", minTargetUtilization, targetUtilization)
	}
	if !isValidOutputFormat(outputFormat) {
		return capacity.ModelConfig{}, nil, fmt.Errorf("unknown --output %q; valid: table, json, csv, prom", outputFormat)
	}
	cfg, err := capacity.NewModelConfig(target, targetUtilization, burstCapacity)
	if err != nil {
		return capacity.ModelConfig{}, nil, err
	}
	logrus.Infof("Revision: target=%v, target utilization=%v, tbc=%v", cfg.Target, cfg.TargetUtilization, cfg.BurstCapacity)
	return cfg, profile, nil
}

// overrideUnchanged copies a non-zero profile value into dst unless the user set the flag.
func overrideUnchanged[T int | float64](cmd *cobra.Command, flag string, dst *T, value T) {
	if value == 0 || cmd.Flags().Changed(flag) {
		return
	}
	logrus.Debugf("--%s=%v from profile %q", flag, value, profileName)
	*dst = value
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
}
