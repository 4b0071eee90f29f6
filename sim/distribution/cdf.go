// Package distribution holds empirical flow size distributions.
//
// A distribution is a piecewise-linear CDF given as control points
// (size in bytes, percentile in [0,100]). The Sampler turns one validated
// CDF into its mean and into independent size samples by inverse-transform
// sampling.
package distribution

import (
	"fmt"

	"github.com/dcn-sim/trafficgen/sim"
)

// MaxPercentile is the Y value of the last control point of every CDF.
const MaxPercentile = 100.0

// Point is one control point of a piecewise-linear CDF.
type Point struct {
	X float64 // flow size in bytes
	Y float64 // cumulative percentile in [0,100]
}

// CDF is an ordered list of control points.
type CDF []Point

// Check reports the first rule the CDF breaks, or nil if it is valid.
// The first point must have Y == 0, the last Y == 100, and both
// coordinates must strictly increase from point to point.
func Check(cdf CDF) error {
	if len(cdf) == 0 {
		return fmt.Errorf("%w: CDF has no points", sim.ErrInvalidDistribution)
	}
	if cdf[0].Y != 0 {
		return fmt.Errorf("%w: CDF must start at percentile 0, but starts at %v", sim.ErrInvalidDistribution, cdf[0].Y)
	}
	last := len(cdf) - 1
	if cdf[last].Y != MaxPercentile {
		return fmt.Errorf("%w: CDF must end at percentile 100, but ends at %v", sim.ErrInvalidDistribution, cdf[last].Y)
	}
	for i := 1; i < len(cdf); i++ {
		if cdf[i].X <= cdf[i-1].X {
			return fmt.Errorf("%w: size of point %d (%v) is not greater than point %d (%v)",
				sim.ErrInvalidDistribution, i, cdf[i].X, i-1, cdf[i-1].X)
		}
		if cdf[i].Y <= cdf[i-1].Y {
			return fmt.Errorf("%w: percentile of point %d (%v) is not greater than point %d (%v)",
				sim.ErrInvalidDistribution, i, cdf[i].Y, i-1, cdf[i-1].Y)
		}
	}
	return nil
}

// Validate is the boolean form of Check.
func Validate(cdf CDF) bool {
	return Check(cdf) == nil
}

// Clone returns an independent copy of the control points.
func (c CDF) Clone() CDF {
	out := make(CDF, len(c))
	copy(out, c)
	return out
}
