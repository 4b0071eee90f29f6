package trace

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/dcn-sim/trafficgen/sim"
)

// SummaryOptions carries the run parameters a trace does not record.
// Zero values disable the checks and figures that depend on them.
type SummaryOptions struct {
	Hosts     int     // expected host count; enables the host range check
	Bandwidth float64 // per-host bits/s; with Duration enables OfferedLoad
	Duration  float64 // horizon in seconds
}

// TraceSummary aggregates the statistics needed to validate a generated trace.
type TraceSummary struct {
	HeaderCount   int64
	Flows         int64
	HeaderMatches bool

	TotalBytes  int64
	MeanSize    float64
	StdDevSize  float64
	MedianSize  float64
	P99Size     float64
	MinSize     int64
	MaxSize     int64
	OfferedLoad float64 // 0 unless hosts, bandwidth and duration are known

	FirstStartNs int64
	LastStartNs  int64
	ActiveHosts  int           // distinct sources
	FlowsPerHost map[int]int64 // source host → flows sent

	SelfFlows       int64 // src == dst
	OutOfRange      int64 // src or dst outside [0, hosts)
	NonPositiveSize int64
	TimeRegressions int64 // a source's start time went backwards
	EarlyStarts     int64 // start before the base offset
}

// Valid reports whether the trace satisfies every flow invariant and its
// header matches its line count.
func (s *TraceSummary) Valid() bool {
	return s.HeaderMatches && s.SelfFlows == 0 && s.OutOfRange == 0 &&
		s.NonPositiveSize == 0 && s.TimeRegressions == 0 && s.EarlyStarts == 0
}

// Summarize computes aggregate statistics from a Trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace, opts SummaryOptions) *TraceSummary {
	summary := &TraceSummary{
		FlowsPerHost: make(map[int]int64),
	}
	if t == nil {
		return summary
	}
	summary.HeaderCount = t.Header
	summary.Flows = int64(len(t.Flows))
	summary.HeaderMatches = summary.HeaderCount == summary.Flows
	if len(t.Flows) == 0 {
		return summary
	}

	sizes := make([]float64, len(t.Flows))
	lastStart := make(map[int]int64)
	summary.MinSize = t.Flows[0].Size
	summary.MaxSize = t.Flows[0].Size
	summary.FirstStartNs = t.Flows[0].StartNs
	summary.LastStartNs = t.Flows[0].StartNs

	for i, f := range t.Flows {
		sizes[i] = float64(f.Size)
		summary.TotalBytes += f.Size
		summary.FlowsPerHost[f.Src]++

		if f.Size < summary.MinSize {
			summary.MinSize = f.Size
		}
		if f.Size > summary.MaxSize {
			summary.MaxSize = f.Size
		}
		if f.StartNs < summary.FirstStartNs {
			summary.FirstStartNs = f.StartNs
		}
		if f.StartNs > summary.LastStartNs {
			summary.LastStartNs = f.StartNs
		}

		if f.Src == f.Dst {
			summary.SelfFlows++
		}
		if opts.Hosts > 0 && (f.Src < 0 || f.Src >= opts.Hosts || f.Dst < 0 || f.Dst >= opts.Hosts) {
			summary.OutOfRange++
		}
		if f.Size < 1 {
			summary.NonPositiveSize++
		}
		if f.StartNs < sim.BaseStartTimeNs {
			summary.EarlyStarts++
		}
		if prev, ok := lastStart[f.Src]; ok && f.StartNs < prev {
			summary.TimeRegressions++
		}
		lastStart[f.Src] = f.StartNs
	}
	summary.ActiveHosts = len(summary.FlowsPerHost)

	summary.MeanSize, summary.StdDevSize = stat.MeanStdDev(sizes, nil)
	sort.Float64s(sizes)
	summary.MedianSize = stat.Quantile(0.5, stat.Empirical, sizes, nil)
	summary.P99Size = stat.Quantile(0.99, stat.Empirical, sizes, nil)

	if opts.Hosts > 0 && opts.Bandwidth > 0 && opts.Duration > 0 {
		capacityBits := float64(opts.Hosts) * opts.Bandwidth * opts.Duration
		summary.OfferedLoad = float64(summary.TotalBytes) * 8 / capacityBits
	}
	return summary
}
