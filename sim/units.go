package sim

import "fmt"

const (
	// NanosPerSecond converts seconds to the simulation clock unit.
	NanosPerSecond = 1_000_000_000

	// BaseStartTimeNs offsets every trace so the first flow never starts
	// at time zero; the network simulator uses the first second for setup.
	BaseStartTimeNs int64 = 1_000_000_000
)

// SecondsToNanos converts a duration in seconds to clock ticks.
func SecondsToNanos(s float64) float64 {
	return s * NanosPerSecond
}

// FormatSeconds renders a nanosecond timestamp as seconds with exactly nine
// decimal digits. Integer formatting keeps the text exact for any int64.
func FormatSeconds(ns int64) string {
	sign := ""
	if ns < 0 {
		sign = "-"
		ns = -ns
	}
	return fmt.Sprintf("%s%d.%09d", sign, ns/NanosPerSecond, ns%NanosPerSecond)
}
