package distribution

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/dcn-sim/trafficgen/sim"
)

// Sampler draws flow sizes from a validated piecewise-linear CDF.
// It never mutates after construction, so one Sampler may back any number
// of sequential draws for the lifetime of a run.
type Sampler struct {
	cdf CDF
}

// NewSampler validates cdf and wraps a private copy of it.
func NewSampler(cdf CDF) (*Sampler, error) {
	if err := Check(cdf); err != nil {
		return nil, err
	}
	return &Sampler{cdf: cdf.Clone()}, nil
}

// Mean integrates the quantile function over the percentile domain with the
// trapezoidal rule: each segment contributes its mid size weighted by its
// percentile width. The sum is normalized by 100.
func (s *Sampler) Mean() float64 {
	sum := 0.0
	for i := 1; i < len(s.cdf); i++ {
		prev, cur := s.cdf[i-1], s.cdf[i]
		sum += (cur.X + prev.X) / 2.0 * (cur.Y - prev.Y)
	}
	return sum / MaxPercentile
}

// Quantile maps a percentile in [0,100] back to a size by linear
// interpolation inside the first segment whose upper percentile is >= p.
func (s *Sampler) Quantile(p float64) (float64, error) {
	n := len(s.cdf)
	// smallest i >= 1 with p <= cdf[i].Y
	i := 1 + sort.Search(n-1, func(k int) bool { return p <= s.cdf[k+1].Y })
	if i >= n || p < s.cdf[0].Y {
		return 0, fmt.Errorf("%w: no segment brackets percentile %v", sim.ErrSamplerInternal, p)
	}
	x0, y0 := s.cdf[i-1].X, s.cdf[i-1].Y
	x1, y1 := s.cdf[i].X, s.cdf[i].Y
	return x0 + (x1-x0)/(y1-y0)*(p-y0), nil
}

// Sample draws one size. The percentile is uniform in [0,100).
// Panics if the CDF invariant is broken; that is a defect, not an input error.
func (s *Sampler) Sample(rng *rand.Rand) float64 {
	v, err := s.Quantile(rng.Float64() * MaxPercentile)
	if err != nil {
		panic(err)
	}
	return v
}

// Min returns the smallest size the sampler can produce.
func (s *Sampler) Min() float64 {
	return s.cdf[0].X
}

// Max returns the largest size the sampler can produce.
func (s *Sampler) Max() float64 {
	return s.cdf[len(s.cdf)-1].X
}

// Len returns the number of control points.
func (s *Sampler) Len() int {
	return len(s.cdf)
}

// CDF returns a copy of the control points.
func (s *Sampler) CDF() CDF {
	return s.cdf.Clone()
}
