package trace

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcn-sim/trafficgen/sim"
	"github.com/dcn-sim/trafficgen/sim/traffic"
)

// parseFlow parses "<src> <dst> <size> <start seconds>".
func parseFlow(line string) (traffic.Flow, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return traffic.Flow{}, fmt.Errorf("want 4 fields, got %d", len(fields))
	}
	src, err := strconv.Atoi(fields[0])
	if err != nil {
		return traffic.Flow{}, fmt.Errorf("source: %w", err)
	}
	dst, err := strconv.Atoi(fields[1])
	if err != nil {
		return traffic.Flow{}, fmt.Errorf("destination: %w", err)
	}
	size, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return traffic.Flow{}, fmt.Errorf("size: %w", err)
	}
	start, err := ParseSeconds(fields[3])
	if err != nil {
		return traffic.Flow{}, fmt.Errorf("start time: %w", err)
	}
	return traffic.Flow{Src: src, Dst: dst, Size: size, StartNs: start}, nil
}

// ParseSeconds converts a decimal seconds string into nanoseconds without
// going through float64, so sim.FormatSeconds output round-trips exactly.
// Digits beyond the ninth decimal are truncated.
func ParseSeconds(s string) (int64, error) {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("invalid seconds %q", s)
	}
	var sec int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid seconds %q", s)
		}
		sec = v
	}
	if len(frac) > 9 {
		frac = frac[:9]
	}
	var nanos int64
	if frac != "" {
		v, err := strconv.ParseInt(frac+strings.Repeat("0", 9-len(frac)), 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("invalid seconds %q", s)
		}
		nanos = v
	}
	ns := sec*sim.NanosPerSecond + nanos
	if neg {
		ns = -ns
	}
	return ns, nil
}
