package sim

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// SimulationKey identifies a reproducible generation run. Equal keys and
// equal configurations yield byte-identical traces.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// ResolveSeed returns *seed, or a seed derived from the wall clock when
// seed is nil. The bool reports whether the seed was given.
func ResolveSeed(seed *int64) (int64, bool) {
	if seed != nil {
		return *seed, true
	}
	return time.Now().UnixNano(), false
}

// Random stream names.
const (
	// SubsystemArrival drives the per-host exponential gaps. It is seeded
	// with the master seed itself.
	SubsystemArrival = "arrival"

	// SubsystemDestination drives the uniform destination draws.
	SubsystemDestination = "destination"

	// SubsystemFlowSize drives the percentile draws for flow sizes.
	SubsystemFlowSize = "flow_size"
)

// PartitionedRNG hands out one independently seeded *rand.Rand per named
// stream. SubsystemArrival gets the master seed; every other stream gets
// masterSeed XOR fnv1a64(name). Draws consumed on one stream, such as
// redrawn destinations, never shift the values another stream sees.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream called name, creating it on first use.
// Repeated calls return the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemArrival {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.subsystems[name] = rng
	return rng
}

// TrafficStreams bundles the three streams a traffic generator draws from.
type TrafficStreams struct {
	Arrival     *rand.Rand
	Destination *rand.Rand
	FlowSize    *rand.Rand
}

// TrafficStreams returns the arrival, destination and flow size streams.
func (p *PartitionedRNG) TrafficStreams() TrafficStreams {
	return TrafficStreams{
		Arrival:     p.ForSubsystem(SubsystemArrival),
		Destination: p.ForSubsystem(SubsystemDestination),
		FlowSize:    p.ForSubsystem(SubsystemFlowSize),
	}
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
