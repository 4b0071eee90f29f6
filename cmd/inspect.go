package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dcn-sim/trafficgen/sim"
	"github.com/dcn-sim/trafficgen/sim/trace"
	"github.com/dcn-sim/trafficgen/sim/traffic"
)

var (
	inspectHosts     int     // Expected host count
	inspectBandwidth string  // Per-host bandwidth for the offered load figure
	inspectDuration  float64 // Horizon in seconds for the offered load figure
)

// errInvalidTrace is returned when a trace breaks a flow invariant.
var errInvalidTrace = errors.New("trace violates flow invariants")

// inspectCmd reads a generated trace back and checks it
var inspectCmd = &cobra.Command{
	Use:   "inspect <trace>",
	Short: "Summarize a trace file and check its flow invariants",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd.OutOrStdout(), args[0]); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// runInspect prints the summary of the trace at path and returns
// errInvalidTrace if any invariant is violated.
func runInspect(out io.Writer, path string) error {
	opts := trace.SummaryOptions{Hosts: inspectHosts, Duration: inspectDuration}
	if inspectBandwidth != "" {
		bw, err := traffic.ParseBandwidth(inspectBandwidth)
		if err != nil {
			return err
		}
		opts.Bandwidth = bw
	}

	tr, err := trace.ReadFile(path)
	if err != nil {
		return err
	}
	summary := trace.Summarize(tr, opts)
	renderSummary(out, path, summary)
	if !summary.Valid() {
		return fmt.Errorf("%s: %w", path, errInvalidTrace)
	}
	return nil
}

func renderSummary(out io.Writer, path string, s *trace.TraceSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(path)
	t.AppendRows([]table.Row{
		{"Header count", s.HeaderCount},
		{"Flows", s.Flows},
		{"Active hosts", s.ActiveHosts},
		{"Total bytes", s.TotalBytes},
		{"Mean size (B)", fmt.Sprintf("%.1f", s.MeanSize)},
		{"Std dev size (B)", fmt.Sprintf("%.1f", s.StdDevSize)},
		{"Median size (B)", fmt.Sprintf("%.0f", s.MedianSize)},
		{"P99 size (B)", fmt.Sprintf("%.0f", s.P99Size)},
		{"Min / max size (B)", fmt.Sprintf("%d / %d", s.MinSize, s.MaxSize)},
	})
	if s.Flows > 0 {
		t.AppendRows([]table.Row{
			{"First start (s)", sim.FormatSeconds(s.FirstStartNs)},
			{"Last start (s)", sim.FormatSeconds(s.LastStartNs)},
		})
	}
	if s.OfferedLoad > 0 {
		t.AppendRow(table.Row{"Offered load", fmt.Sprintf("%.4f", s.OfferedLoad)})
	}
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Header matches", s.HeaderMatches},
		{"Self flows", s.SelfFlows},
		{"Hosts out of range", s.OutOfRange},
		{"Non-positive sizes", s.NonPositiveSize},
		{"Start time regressions", s.TimeRegressions},
		{"Starts before base offset", s.EarlyStarts},
	})
	t.Render()
}

func init() {
	inspectCmd.Flags().IntVarP(&inspectHosts, "nhost", "n", 0, "Expected number of hosts (enables the host range check)")
	inspectCmd.Flags().StringVarP(&inspectBandwidth, "bandwidth", "b", "", "Per-host bandwidth used for the offered load figure")
	inspectCmd.Flags().Float64VarP(&inspectDuration, "time", "t", 0, "Run time in seconds used for the offered load figure")
}
