package traffic

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dcn-sim/trafficgen/sim"
)

// Config parameterizes one generation run.
type Config struct {
	Hosts     int     // number of traffic sources and sinks
	Bandwidth float64 // per-host link bandwidth in bits/s
	Load      float64 // target fraction of link capacity, in (0, 1]
	Duration  float64 // horizon in seconds
	Seed      *int64  // nil means a time-derived seed
}

// Validate rejects configurations the scheduler cannot run.
// A single host has no valid destination, so at least two are required.
func (c Config) Validate() error {
	if c.Hosts < 2 {
		return fmt.Errorf("%w: host count must be >= 2, got %d", sim.ErrConfiguration, c.Hosts)
	}
	if !(c.Bandwidth > 0) || math.IsInf(c.Bandwidth, 0) {
		return fmt.Errorf("%w: bandwidth must be a positive finite number of bits/s, got %v", sim.ErrConfiguration, c.Bandwidth)
	}
	if !(c.Load > 0 && c.Load <= 1) {
		return fmt.Errorf("%w: load must be in (0, 1], got %v", sim.ErrConfiguration, c.Load)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be a positive finite number of seconds, got %v", sim.ErrConfiguration, c.Duration)
	}
	return nil
}

// bandwidthUnits maps the accepted bandwidth suffixes to their multiplier.
var bandwidthUnits = map[byte]float64{
	'G': 1e9,
	'M': 1e6,
	'K': 1e3,
}

// ParseBandwidth translates "10G", "100M", "56K" or a bare number of bits/s.
func ParseBandwidth(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty bandwidth", sim.ErrConfiguration)
	}
	num, mult := s, 1.0
	if m, ok := bandwidthUnits[s[len(s)-1]]; ok {
		num, mult = s[:len(s)-1], m
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bandwidth %q: expected a number with optional G/M/K suffix", sim.ErrConfiguration, s)
	}
	bw := v * mult
	if !(bw > 0) || math.IsInf(bw, 0) {
		return 0, fmt.Errorf("%w: bandwidth %q must be positive", sim.ErrConfiguration, s)
	}
	return bw, nil
}
