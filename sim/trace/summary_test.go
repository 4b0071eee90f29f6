package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dcn-sim/trafficgen/sim/traffic"
)

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil, SummaryOptions{})

	assert.Zero(t, summary.Flows)
	assert.Zero(t, summary.HeaderCount)
	assert.Empty(t, summary.FlowsPerHost)
	assert.False(t, summary.Valid(), "a missing trace is not a valid trace")
}

func TestSummarize_EmptyTrace(t *testing.T) {
	// GIVEN a trace with a zero header and no flows
	summary := Summarize(&Trace{Header: 0}, SummaryOptions{Hosts: 4})

	// THEN it is consistent and valid
	assert.True(t, summary.HeaderMatches)
	assert.True(t, summary.Valid())
	assert.Zero(t, summary.MeanSize)
}

func TestSummarize_PopulatedTrace_CorrectStatistics(t *testing.T) {
	// GIVEN four well-formed flows from two hosts
	tr := &Trace{Header: 4, Flows: []traffic.Flow{
		{Src: 0, Dst: 1, Size: 100, StartNs: 1_000_000_000},
		{Src: 1, Dst: 0, Size: 200, StartNs: 1_000_000_010},
		{Src: 0, Dst: 1, Size: 300, StartNs: 1_000_000_020},
		{Src: 0, Dst: 1, Size: 400, StartNs: 1_000_000_030},
	}}

	// WHEN summarized against 2 hosts of 1 kbps over 1 second
	summary := Summarize(tr, SummaryOptions{Hosts: 2, Bandwidth: 1000, Duration: 1})

	// THEN counts and size statistics match
	assert.True(t, summary.Valid())
	assert.Equal(t, int64(4), summary.Flows)
	assert.Equal(t, int64(1000), summary.TotalBytes)
	assert.InDelta(t, 250.0, summary.MeanSize, 1e-9)
	assert.Equal(t, int64(100), summary.MinSize)
	assert.Equal(t, int64(400), summary.MaxSize)
	assert.Equal(t, 200.0, summary.MedianSize)
	assert.Equal(t, 400.0, summary.P99Size)
	assert.Equal(t, 2, summary.ActiveHosts)
	assert.Equal(t, int64(3), summary.FlowsPerHost[0])
	assert.Equal(t, int64(1), summary.FlowsPerHost[1])
	assert.Equal(t, int64(1_000_000_000), summary.FirstStartNs)
	assert.Equal(t, int64(1_000_000_030), summary.LastStartNs)

	// AND the offered load is 8000 bits over 2000 bits of capacity
	assert.InDelta(t, 4.0, summary.OfferedLoad, 1e-12)
}

func TestSummarize_DetectsViolations(t *testing.T) {
	tr := &Trace{Header: 7, Flows: []traffic.Flow{
		{Src: 0, Dst: 0, Size: 10, StartNs: 1_000_000_100}, // self flow
		{Src: 0, Dst: 9, Size: 10, StartNs: 1_000_000_200}, // out of range
		{Src: 1, Dst: 0, Size: 0, StartNs: 1_000_000_000},  // zero size
		{Src: 0, Dst: 1, Size: 10, StartNs: 1_000_000_050}, // host 0 went backwards
		{Src: 2, Dst: 1, Size: 10, StartNs: 999_999_999},   // before base offset
		{Src: 2, Dst: 1, Size: 10, StartNs: 1_000_000_000},
	}}

	summary := Summarize(tr, SummaryOptions{Hosts: 3})

	assert.False(t, summary.HeaderMatches)
	assert.Equal(t, int64(1), summary.SelfFlows)
	assert.Equal(t, int64(1), summary.OutOfRange)
	assert.Equal(t, int64(1), summary.NonPositiveSize)
	assert.Equal(t, int64(1), summary.TimeRegressions)
	assert.Equal(t, int64(1), summary.EarlyStarts)
	assert.False(t, summary.Valid())
	assert.Zero(t, summary.OfferedLoad, "no bandwidth given")
}

func TestSummarize_HostRangeCheckNeedsHostCount(t *testing.T) {
	tr := &Trace{Header: 1, Flows: []traffic.Flow{{Src: 0, Dst: 99, Size: 1, StartNs: 1_000_000_000}}}
	assert.Zero(t, Summarize(tr, SummaryOptions{}).OutOfRange)
}
