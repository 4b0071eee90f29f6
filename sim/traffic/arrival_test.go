package traffic

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func TestPoissonSampler_MeanAndCV(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewPoissonSampler(1e6)

	n := 100000
	gaps := make([]float64, n)
	for i := range gaps {
		gaps[i] = s.SampleGapNs(rng)
	}
	mean, std := stat.MeanStdDev(gaps, nil)

	if math.Abs(mean-1e6)/1e6 > 0.02 {
		t.Errorf("mean gap = %.0f, want ≈ 1e6 (within 2%%)", mean)
	}
	// Exponential gaps have CV = 1.
	if cv := std / mean; math.Abs(cv-1) > 0.03 {
		t.Errorf("CV = %.3f, want ≈ 1", cv)
	}
}

func TestPoissonSampler_NonNegativeAndFinite(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewPoissonSampler(500)
	for i := 0; i < 10000; i++ {
		g := s.SampleGapNs(rng)
		if g < 0 || math.IsInf(g, 0) || math.IsNaN(g) {
			t.Fatalf("sample %d: gap %v", i, g)
		}
	}
	if s.MeanNs() != 500 {
		t.Errorf("MeanNs() = %v, want 500", s.MeanNs())
	}
}
