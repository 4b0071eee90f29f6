package cmd

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// progressBatch is how many flows are counted locally before the tracker
// is updated; the tracker takes a lock on every update.
const progressBatch = 4096

// flowProgress reports generation progress against the flow estimate.
// The estimate is a guess, so the bar may finish early or stop short.
type flowProgress struct {
	pw      progress.Writer
	tracker *progress.Tracker
	pending int64
}

// newProgress starts a progress bar on stderr. When enabled is false the
// returned value is inert.
func newProgress(enabled bool, estimate int64) *flowProgress {
	if !enabled {
		return &flowProgress{}
	}
	pw := progress.NewWriter()
	pw.SetAutoStop(true)
	pw.SetOutputWriter(os.Stderr)
	pw.SetTrackerLength(40)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Visibility.ETA = true

	tracker := &progress.Tracker{
		Message: "Generating flows",
		Total:   estimate,
		Units:   progress.UnitsDefault,
	}
	pw.AppendTracker(tracker)
	go pw.Render()
	return &flowProgress{pw: pw, tracker: tracker}
}

// Increment counts one emitted flow.
func (p *flowProgress) Increment() {
	if p.tracker == nil {
		return
	}
	p.pending++
	if p.pending == progressBatch {
		p.tracker.Increment(p.pending)
		p.pending = 0
	}
}

// Done flushes the count and waits for the bar to finish rendering.
func (p *flowProgress) Done() {
	if p.tracker == nil {
		return
	}
	if p.pending > 0 {
		p.tracker.Increment(p.pending)
		p.pending = 0
	}
	p.tracker.MarkAsDone()
	for p.pw.IsRenderInProgress() {
		time.Sleep(time.Millisecond)
	}
}
