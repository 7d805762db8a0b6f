package constants

// Error message constants
const (
	// ErrKubeconfigNotLoaded is returned when kubeconfig is not loaded
	ErrKubeconfigNotLoaded = "kubeconfig not loaded"

	// ErrNoKubeconfigPath is returned when no kubeconfig path is found
	ErrNoKubeconfigPath = "no kubeconfig path found"

	// ErrNoCurrentContext is returned when no context is given and kubeconfig has no current-context
	ErrNoCurrentContext = "no Kubernetes context given and kubeconfig has no current-context"

	// ErrDiscoveryFailed is the message attached to failed live discovery
	ErrDiscoveryFailed = "failed to discover Kubernetes API resources"

	// ErrNoConfigDir is returned when the user configuration directory cannot be determined
	ErrNoConfigDir = "unable to determine user configuration directory"
)
