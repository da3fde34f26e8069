package cmd

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/burst-capacity/capacity"
)

var evalTraffic float64 // Average concurrent requests to evaluate

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate the capacities for a single traffic value",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, _, err := resolveModelConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if err := runEval(os.Stdout, cfg, evalTraffic, format(outputFormat)); err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
	},
}

func runEval(w io.Writer, cfg capacity.ModelConfig, traffic float64, f format) error {
	r, err := capacity.Evaluate(traffic, cfg)
	if err != nil {
		return err
	}
	logrus.Debugf("traffic=%v needs %d pods, excess capacity %v", traffic, r.Units, r.ExcessCapacity)
	return writeResults(w, f, cfg, []capacity.Result{r}, nil)
}

func init() {
	addModelFlags(evalCmd)
	evalCmd.Flags().Float64Var(&evalTraffic, "traffic", 0, "Average concurrent requests")
	_ = evalCmd.MarkFlagRequired("traffic")

	rootCmd.AddCommand(evalCmd)
}
