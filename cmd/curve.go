package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/burst-capacity/capacity"
	"github.com/inference-sim/burst-capacity/capacity/sweep"
	"github.com/inference-sim/burst-capacity/capacity/trace"
)

var (
	minTraffic float64 // Traffic range lower bound
	maxTraffic float64 // Traffic range upper bound
	stepCount  int     // Max number of points in the sweep
	workers    int     // Goroutines evaluating the sweep
	traceLevel string  // Proxy-mode transition tracing
)

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Sweep traffic and evaluate capacities and proxy mode along the curve",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, profile, err := resolveModelConfig(cmd)
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if profile != nil {
			overrideUnchanged(cmd, "min-traffic", &minTraffic, profile.MinTraffic)
			overrideUnchanged(cmd, "max-traffic", &maxTraffic, profile.MaxTraffic)
			overrideUnchanged(cmd, "step-count", &stepCount, profile.StepCount)
		}
		domain := sweep.Domain{Min: minTraffic, Max: maxTraffic, StepCount: stepCount}
		if err := validateCurveFlags(domain, traceLevel); err != nil {
			logrus.Fatalf("Invalid arguments: %v", err)
		}

		startTime := time.Now()
		if err := runCurve(cmd.Context(), os.Stdout, cfg, domain, workers, trace.TraceLevel(traceLevel), format(outputFormat)); err != nil {
			logrus.Fatalf("Curve evaluation failed: %v", err)
		}
		logrus.Infof("Curve complete in %v", time.Since(startTime))
	},
}

// validateCurveFlags enforces the CLI bounds on the sweep before any evaluation.
func validateCurveFlags(d sweep.Domain, level string) error {
	if d.Min >= d.Max {
		return fmt.Errorf("--min-traffic %v must be less than --max-traffic %v", d.Min, d.Max)
	}
	if d.Max > maxTrafficLimit {
		return fmt.Errorf("--max-traffic must be at most %v, got %v", maxTrafficLimit, d.Max)
	}
	if d.StepCount < minStepCount || d.StepCount > maxStepCount {
		return fmt.Errorf("--step-count must be in [%d, %d], got %d", minStepCount, maxStepCount, d.StepCount)
	}
	if !trace.IsValidTraceLevel(level) {
		return fmt.Errorf("unknown --trace %q; valid: none, transitions", level)
	}
	return d.Validate()
}

func runCurve(ctx context.Context, w io.Writer, cfg capacity.ModelConfig, d sweep.Domain, workers int, level trace.TraceLevel, f format) error {
	if ctx == nil {
		ctx = context.Background()
	}
	samples, err := d.Samples()
	if err != nil {
		return err
	}
	logrus.Infof("Sweeping %d traffic values in [%v, %v], step %v", len(samples), d.Min, d.Max, d.Step())

	results, err := capacity.EvaluateSeriesParallel(ctx, samples, cfg, workers)
	if err != nil {
		return err
	}

	var pt *trace.ProxyTrace
	if level == trace.TraceLevelTransitions {
		pt = trace.NewProxyTrace(level).ObserveAll(results)
	}
	return writeResults(w, f, cfg, results, pt)
}

func init() {
	addModelFlags(curveCmd)
	curveCmd.Flags().Float64Var(&minTraffic, "min-traffic", 0, "Traffic range lower bound for the sweep")
	curveCmd.Flags().Float64Var(&maxTraffic, "max-traffic", 1000, "Traffic range upper bound for the sweep")
	curveCmd.Flags().IntVar(&stepCount, "step-count", 100, "Max number of steps in the sweep")
	curveCmd.Flags().IntVar(&workers, "workers", runtime.GOMAXPROCS(0), "Goroutines used to evaluate the sweep")
	curveCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelTransitions), "Proxy-mode tracing (none, transitions)")

	rootCmd.AddCommand(curveCmd)
}
