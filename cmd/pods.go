package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/burst-capacity/capacity"
)

var podRange int // Max number of pods to tabulate

var podsCmd = &cobra.Command{
	Use:   "pods",
	Short: "Tabulate total, target and excess capacity per pod count",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, profile, err := resolveModelConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if profile != nil {
			overrideUnchanged(cmd, "pod-range", &podRange, profile.PodRange)
		}
		if err := runPods(os.Stdout, cfg, podRange, format(outputFormat)); err != nil {
			logrus.Fatalf("Invalid arguments: %v", err)
		}
	},
}

func runPods(w io.Writer, cfg capacity.ModelConfig, pods int, f format) error {
	if pods < minPodRange || pods > maxPodRange {
		return fmt.Errorf("--pod-range must be in [%d, %d], got %d", minPodRange, maxPodRange, pods)
	}
	rows, err := capacity.PodCapacities(pods, cfg)
	if err != nil {
		return err
	}
	return writePods(w, f, cfg, rows)
}

func init() {
	addModelFlags(podsCmd)
	podsCmd.Flags().IntVar(&podRange, "pod-range", 15, "Max number of pods to tabulate")

	rootCmd.AddCommand(podsCmd)
}
