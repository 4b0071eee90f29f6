package sim

import "errors"

// Error taxonomy shared by the distribution, traffic and trace packages.
// Callers distinguish them with errors.Is; every returned error wraps
// exactly one of these.
var (
	// ErrInvalidDistribution marks a flow size CDF that fails boundary or
	// monotonicity validation, or a distribution file that cannot be parsed.
	ErrInvalidDistribution = errors.New("invalid distribution")

	// ErrConfiguration marks an unusable generator configuration: bad load,
	// bandwidth, duration or host count, or an unparseable bandwidth unit.
	ErrConfiguration = errors.New("configuration error")

	// ErrSamplerInternal marks a percentile that no CDF segment brackets.
	// It can only happen if a validated CDF was corrupted.
	ErrSamplerInternal = errors.New("sampler internal error")
)
