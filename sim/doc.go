// Package sim provides the shared clock units, error taxonomy and seeded
// randomness of the datacenter traffic generator.
//
// # Reading Guide
//
// Start with these three files to understand the generator:
//   - distribution/sampler.go: inverse-transform sampling from a piecewise-linear flow size CDF
//   - traffic/generator.go: the per-host Poisson scheduler over a min-heap of next send times
//   - trace/writer.go: the trace file whose header is the exact flow count
//
// # Architecture
//
// The sim package defines the types every stage shares; the stages live in
// sub-packages:
//   - sim/distribution/: CDF parsing, validation, sampling and simplification
//   - sim/traffic/: run configuration, arrival process and flow generation
//   - sim/trace/: trace writing, reading and summary statistics
//
// # Determinism
//
// All randomness flows through PartitionedRNG. The arrival, destination and
// flow size streams are independent, so a given seed reproduces a trace
// byte for byte.
package sim
