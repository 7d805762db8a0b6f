package constants

// Retry configuration
const (
	// DefaultRetryAttempts is the total number of attempts, including the first call
	DefaultRetryAttempts = 5

	// UnlimitedRetryAttempts is the configuration value that disables the attempt limit
	UnlimitedRetryAttempts = 0
)

// List limits
const (
	// DefaultListLimit is the page size requested by list operations
	DefaultListLimit = 500

	// MaxConcurrentLists is the number of resource kinds listed in parallel by get
	MaxConcurrentLists = 4
)

// Cluster detection
const (
	// MinOpenShiftAPIsThreshold is the minimum number of OpenShift API groups required for detection
	MinOpenShiftAPIsThreshold = 3
)
