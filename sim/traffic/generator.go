package traffic

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/dcn-sim/trafficgen/sim"
)

// SizeSampler draws flow sizes in bytes from an empirical distribution.
// *distribution.Sampler satisfies it.
type SizeSampler interface {
	Mean() float64
	Sample(rng *rand.Rand) float64
}

// Stats describes a run: the quantities derived from the configuration
// and the counters of what has been generated so far.
type Stats struct {
	Seed               int64
	Hosts              int
	MeanFlowBytes      float64
	MeanFlowBits       float64
	MeanInterarrivalNs float64
	DurationNs         float64
	EstimatedFlows     int64 // progress estimate only, never a bound
	Emitted            int64
	Retired            int
	ClampedSizes       int64 // samples below one byte raised to one
}

// Generator emits flows for every host as independent Poisson sources.
//
// Each host owns one pending send time in a min-heap. The loop takes the
// earliest host, draws the gap to its next send and a destination, and
// either emits a flow and pushes the host back by the gap, or retires the
// host for good once that next send would fall past the horizon.
//
// Thread-safety: NOT thread-safe. A Generator belongs to one goroutine.
type Generator struct {
	hosts      int
	sizes      SizeSampler
	arrival    ArrivalSampler
	heap       *hostHeap
	endNs      int64
	arrivalRNG *rand.Rand
	destRNG    *rand.Rand
	sizeRNG    *rand.Rand
	stats      Stats
}

// NewGenerator validates cfg, derives the per-host arrival rate from the
// mean flow size, and schedules the first send of every host.
func NewGenerator(cfg Config, sizes SizeSampler) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sizes == nil {
		return nil, fmt.Errorf("%w: no flow size distribution", sim.ErrConfiguration)
	}

	meanBytes := sizes.Mean()
	meanBits := meanBytes * 8
	meanInterarrivalNs := meanBits / (cfg.Bandwidth * cfg.Load) * sim.NanosPerSecond
	if !(meanInterarrivalNs > 0) || math.IsInf(meanInterarrivalNs, 0) {
		return nil, fmt.Errorf("%w: mean inter-arrival %v ns from mean flow size %v bytes is unusable",
			sim.ErrConfiguration, meanInterarrivalNs, meanBytes)
	}
	durationNs := sim.SecondsToNanos(cfg.Duration)
	endF := float64(sim.BaseStartTimeNs) + durationNs
	if endF >= math.MaxInt64/2 {
		return nil, fmt.Errorf("%w: duration %v s overflows the nanosecond clock", sim.ErrConfiguration, cfg.Duration)
	}

	seed, given := sim.ResolveSeed(cfg.Seed)
	if !given {
		logrus.Debugf("No seed given; using time-derived seed %d", seed)
	}
	streams := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).TrafficStreams()

	g := &Generator{
		hosts:      cfg.Hosts,
		sizes:      sizes,
		arrival:    NewPoissonSampler(meanInterarrivalNs),
		endNs:      int64(math.Floor(endF)),
		arrivalRNG: streams.Arrival,
		destRNG:    streams.Destination,
		sizeRNG:    streams.FlowSize,
		stats: Stats{
			Seed:               seed,
			Hosts:              cfg.Hosts,
			MeanFlowBytes:      meanBytes,
			MeanFlowBits:       meanBits,
			MeanInterarrivalNs: meanInterarrivalNs,
			DurationNs:         durationNs,
			EstimatedFlows:     estimateFlows(durationNs, meanInterarrivalNs, cfg.Hosts),
		},
	}

	arrivals := make([]hostArrival, cfg.Hosts)
	for i := range arrivals {
		arrivals[i] = hostArrival{NextSendNs: g.firstSend(), Host: i}
	}
	g.heap = newHostHeap(arrivals)
	return g, nil
}

// estimateFlows is floor(duration / mean gap * hosts), saturated to int64.
func estimateFlows(durationNs, meanInterarrivalNs float64, hosts int) int64 {
	est := math.Floor(durationNs / meanInterarrivalNs * float64(hosts))
	if est >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(est)
}

// firstSend draws the initial send time of a host. A first gap that already
// lands past the horizon is capped just beyond it; such a host is retired on
// its first turn whatever gap it draws then, so the cap changes nothing but
// keeps the clock inside int64.
func (g *Generator) firstSend() int64 {
	gap := g.arrival.SampleGapNs(g.arrivalRNG)
	limit := float64(g.endNs - sim.BaseStartTimeNs + 1)
	if gap >= limit {
		return g.endNs + 1
	}
	return sim.BaseStartTimeNs + int64(math.Round(gap))
}

// pickDestination draws a host uniformly from [0, hosts) other than src.
func (g *Generator) pickDestination(src int) int {
	dst := g.destRNG.Intn(g.hosts)
	for dst == src {
		dst = g.destRNG.Intn(g.hosts)
	}
	return dst
}

// Next advances the scheduler until it can emit a flow. It returns false
// once every host has been retired; the sequence is then exhausted.
func (g *Generator) Next() (Flow, bool) {
	for g.heap.Len() > 0 {
		top := g.heap.Peek()
		t, src := top.NextSendNs, top.Host

		gap := g.arrival.SampleGapNs(g.arrivalRNG)
		dst := g.pickDestination(src)

		if float64(t)+gap > float64(g.endNs) {
			g.heap.Retire()
			g.stats.Retired++
			continue
		}

		size := int64(math.Floor(g.sizes.Sample(g.sizeRNG)))
		if size < 1 {
			size = 1
			g.stats.ClampedSizes++
		}
		// t+gap <= endNs, so the rounded gap keeps the host inside the horizon.
		g.heap.RescheduleTop(t + int64(math.Round(gap)))
		g.stats.Emitted++
		return Flow{Src: src, Dst: dst, Size: size, StartNs: t}, true
	}
	return Flow{}, false
}

// Run drives Next to exhaustion and hands every flow to emit.
// It returns the exact number of flows emitted. An emit error stops the
// run and is returned together with the count emitted before it.
func (g *Generator) Run(emit func(Flow) error) (int64, error) {
	var n int64
	for {
		f, ok := g.Next()
		if !ok {
			break
		}
		if err := emit(f); err != nil {
			return n, fmt.Errorf("emit flow %d: %w", n, err)
		}
		n++
	}
	if g.stats.ClampedSizes > 0 {
		logrus.Debugf("Raised %d sub-byte flow sizes to 1 byte", g.stats.ClampedSizes)
	}
	return n, nil
}

// Done reports whether every host has been retired.
func (g *Generator) Done() bool {
	return g.heap.Len() == 0
}

// Stats returns a snapshot of the run's derived quantities and counters.
func (g *Generator) Stats() Stats {
	return g.stats
}
