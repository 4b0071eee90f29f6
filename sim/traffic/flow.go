package traffic

import (
	"fmt"

	"github.com/dcn-sim/trafficgen/sim"
)

// Flow is one point-to-point transfer of the generated workload.
type Flow struct {
	Src     int
	Dst     int
	Size    int64 // bytes, always >= 1
	StartNs int64 // absolute start time including sim.BaseStartTimeNs
}

// StartSeconds returns the start time in seconds.
func (f Flow) StartSeconds() float64 {
	return float64(f.StartNs) / sim.NanosPerSecond
}

// String renders the flow as a trace line without the newline:
// "<src> <dst> <size> <start seconds, 9 decimals>".
func (f Flow) String() string {
	return fmt.Sprintf("%d %d %d %s", f.Src, f.Dst, f.Size, sim.FormatSeconds(f.StartNs))
}
