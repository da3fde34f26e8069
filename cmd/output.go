package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/inference-sim/burst-capacity/capacity"
	"github.com/inference-sim/burst-capacity/capacity/trace"
)

type format string

const (
	formatTable format = "table"
	formatJSON  format = "json"
	formatCSV   format = "csv"
	formatProm  format = "prom"
)

var validOutputFormats = map[format]bool{
	formatTable: true,
	formatJSON:  true,
	formatCSV:   true,
	formatProm:  true,
}

func isValidOutputFormat(f string) bool {
	return validOutputFormats[format(f)]
}

// curveReport is the JSON document emitted for eval and curve.
type curveReport struct {
	Config      capacity.ModelConfig     `json:"config"`
	Results     []capacity.Result        `json:"results"`
	Summary     *trace.TraceSummary      `json:"summary,omitempty"`
	Transitions []trace.TransitionRecord `json:"transitions,omitempty"`
}

// podsReport is the JSON document emitted for pods.
type podsReport struct {
	Config capacity.ModelConfig   `json:"config"`
	Pods   []capacity.PodCapacity `json:"pods"`
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeResults renders evaluated samples. pt may be nil when tracing is off.
func writeResults(w io.Writer, f format, cfg capacity.ModelConfig, results []capacity.Result, pt *trace.ProxyTrace) error {
	switch f {
	case formatJSON:
		report := curveReport{Config: cfg, Results: results}
		if pt != nil {
			report.Summary = trace.Summarize(pt)
			report.Transitions = pt.Transitions
		}
		return writeJSON(w, report)
	case formatCSV:
		header := []string{"traffic", "units", "total_capacity", "target_capacity", "available_capacity", "excess_capacity", "proxy_mode"}
		rows := make([][]string, len(results))
		for i, r := range results {
			rows[i] = []string{formatFloat(r.Traffic), strconv.Itoa(r.Units), formatFloat(r.TotalCapacity),
				formatFloat(r.TargetCapacity), formatFloat(r.AvailableCapacity), formatFloat(r.ExcessCapacity), string(r.ProxyMode)}
		}
		return writeCSV(w, header, rows)
	case formatProm:
		return writePrometheus(w, resultsRegistry(cfg, results))
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "TRAFFIC\tPODS\tTOTAL\tTARGET\tAVAILABLE\tEXCESS\tPROXY\t")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n", formatFloat(r.Traffic), r.Units, formatFloat(r.TotalCapacity),
				formatFloat(r.TargetCapacity), formatFloat(r.AvailableCapacity), formatFloat(r.ExcessCapacity), r.ProxyMode)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if pt != nil {
			writeSummaryText(w, pt)
		}
		return nil
	}
}

func writeSummaryText(w io.Writer, pt *trace.ProxyTrace) {
	s := trace.Summarize(pt)
	fmt.Fprintf(w, "\n=== Proxy Mode Summary ===\n")
	fmt.Fprintf(w, "Samples: %d (needed %d, boundary %d, not needed %d)\n", s.Samples, s.NeededCount, s.BoundaryCount, s.NotNeededCount)
	if s.FirstNotNeeded >= 0 {
		fmt.Fprintf(w, "Proxy first unnecessary at traffic %s\n", formatFloat(s.FirstNotNeeded))
	} else {
		fmt.Fprintf(w, "Proxy needed across the whole domain\n")
	}
	for _, tr := range pt.Transitions {
		fmt.Fprintf(w, "  traffic %s: %s -> %s (excess %s)\n", formatFloat(tr.Traffic), tr.From, tr.To, formatFloat(tr.Excess))
	}
}

// writePods renders the per-pod capacity table.
func writePods(w io.Writer, f format, cfg capacity.ModelConfig, rows []capacity.PodCapacity) error {
	switch f {
	case formatJSON:
		return writeJSON(w, podsReport{Config: cfg, Pods: rows})
	case formatCSV:
		header := []string{"pods", "total_capacity", "target_capacity", "excess_min_loaded", "excess_max_loaded", "tbc", "proxy_mode"}
		out := make([][]string, len(rows))
		for i, r := range rows {
			out[i] = []string{strconv.Itoa(r.Pods), formatFloat(r.TotalCapacity), formatFloat(r.TargetCapacity),
				formatFloat(r.ExcessMinLoaded), formatFloat(r.ExcessMaxLoaded), formatFloat(cfg.BurstCapacity), string(r.ProxyMode)}
		}
		return writeCSV(w, header, out)
	case formatProm:
		return writePrometheus(w, podsRegistry(cfg, rows))
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "PODS\tTOTAL\tTARGET\tEXCESS(MIN LOAD)\tEXCESS(MAX LOAD)\tTBC\tPROXY\t")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t\n", r.Pods, formatFloat(r.TotalCapacity), formatFloat(r.TargetCapacity),
				formatFloat(r.ExcessMinLoaded), formatFloat(r.ExcessMaxLoaded), formatFloat(cfg.BurstCapacity), r.ProxyMode)
		}
		return tw.Flush()
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// revisionLabels identifies the configuration a gauge was computed under.
func revisionLabels(cfg capacity.ModelConfig) prometheus.Labels {
	return prometheus.Labels{
		"target":             formatFloat(cfg.Target),
		"target_utilization": formatFloat(cfg.TargetUtilization),
		"tbc":                formatFloat(cfg.BurstCapacity),
	}
}

func newGaugeVec(reg *prometheus.Registry, cfg capacity.ModelConfig, name, help, label string) *prometheus.GaugeVec {
	g := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   "tbc",
		Name:        name,
		Help:        help,
		ConstLabels: revisionLabels(cfg),
	}, []string{label})
	reg.MustRegister(g)
	return g
}

func resultsRegistry(cfg capacity.ModelConfig, results []capacity.Result) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	units := newGaugeVec(reg, cfg, "units", "Pods required to serve the traffic sample.", "traffic")
	total := newGaugeVec(reg, cfg, "total_capacity", "Concurrency the required pods can hold.", "traffic")
	targetCap := newGaugeVec(reg, cfg, "target_capacity", "Total capacity weighted by target utilization.", "traffic")
	available := newGaugeVec(reg, cfg, "available_capacity", "Total capacity minus traffic.", "traffic")
	excess := newGaugeVec(reg, cfg, "excess_capacity", "Available capacity minus target burst capacity.", "traffic")
	proxy := newGaugeVec(reg, cfg, "proxy_mode", "1 when proxying is not needed, -1 when needed, 0 at the boundary.", "traffic")
	for _, r := range results {
		l := formatFloat(r.Traffic)
		units.WithLabelValues(l).Set(float64(r.Units))
		total.WithLabelValues(l).Set(r.TotalCapacity)
		targetCap.WithLabelValues(l).Set(r.TargetCapacity)
		available.WithLabelValues(l).Set(r.AvailableCapacity)
		excess.WithLabelValues(l).Set(r.ExcessCapacity)
		proxy.WithLabelValues(l).Set(float64(r.ProxyMode.Sign()))
	}
	return reg
}

func podsRegistry(cfg capacity.ModelConfig, rows []capacity.PodCapacity) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	total := newGaugeVec(reg, cfg, "pod_total_capacity", "Concurrency the pods can hold.", "pods")
	targetCap := newGaugeVec(reg, cfg, "pod_target_capacity", "Total capacity weighted by target utilization.", "pods")
	minLoaded := newGaugeVec(reg, cfg, "pod_excess_min_loaded", "Slack when every pod sits exactly at target.", "pods")
	maxLoaded := newGaugeVec(reg, cfg, "pod_excess_max_loaded", "Slack just before another pod is added.", "pods")
	proxy := newGaugeVec(reg, cfg, "pod_proxy_mode", "1 when proxying is not needed, -1 when needed, 0 at the boundary.", "pods")
	for _, r := range rows {
		l := strconv.Itoa(r.Pods)
		total.WithLabelValues(l).Set(r.TotalCapacity)
		targetCap.WithLabelValues(l).Set(r.TargetCapacity)
		minLoaded.WithLabelValues(l).Set(r.ExcessMinLoaded)
		maxLoaded.WithLabelValues(l).Set(r.ExcessMaxLoaded)
		proxy.WithLabelValues(l).Set(float64(r.ProxyMode.Sign()))
	}
	return reg
}

// writePrometheus renders every gathered family in the text exposition format.
func writePrometheus(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering gauges: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
