package traffic

import (
	"math"
	"math/rand"
)

// ArrivalSampler generates inter-arrival gaps for one host.
type ArrivalSampler interface {
	// SampleGapNs returns the next inter-arrival gap in nanoseconds.
	SampleGapNs(rng *rand.Rand) float64
}

// PoissonSampler generates exponentially-distributed gaps (CV=1), which
// makes every host an independent Poisson source.
type PoissonSampler struct {
	meanNs float64
}

// NewPoissonSampler creates a sampler whose gaps average meanNs.
func NewPoissonSampler(meanNs float64) *PoissonSampler {
	return &PoissonSampler{meanNs: meanNs}
}

// SampleGapNs draws -ln(1-U)*mean with U uniform in [0,1).
// 1-U is in (0,1], so the log is finite and the gap is >= 0.
func (s *PoissonSampler) SampleGapNs(rng *rand.Rand) float64 {
	return -math.Log(1-rng.Float64()) * s.meanNs
}

// MeanNs returns the configured mean gap.
func (s *PoissonSampler) MeanNs() float64 {
	return s.meanNs
}
