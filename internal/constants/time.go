package constants

import "time"

// Timeout constants define various operation timeouts throughout the application
const (
	// DefaultRequestTimeout is the standard timeout for a single API request
	DefaultRequestTimeout = 10 * time.Second

	// DiscoveryTimeout bounds a full live discovery run including retries
	DiscoveryTimeout = 60 * time.Second
)

// Backoff configuration constants
const (
	// DefaultInitialBackoff is the wait after the first failed attempt
	DefaultInitialBackoff = 200 * time.Millisecond

	// DefaultMaxBackoff caps every wait between attempts
	DefaultMaxBackoff = 5 * time.Second

	// DefaultBackoffMultiplier is the growth factor applied after each wait
	DefaultBackoffMultiplier = 2.0

	// MinBackoffMultiplier is the smallest multiplier a policy accepts; lower values are clamped
	MinBackoffMultiplier = 1.0
)

// Cache duration constants
const (
	// DefaultDiscoveryCacheTTL is how long a discovery snapshot is considered fresh
	DefaultDiscoveryCacheTTL = 10 * time.Minute
)
