package constants

// Kubernetes configuration paths
const (
	// KubeConfigDir is the standard directory name for Kubernetes configuration
	KubeConfigDir = ".kube"

	// KubeConfigFile is the standard filename for Kubernetes configuration
	KubeConfigFile = "config"

	// KubeConfigEnvVar is the environment variable that overrides the kubeconfig location
	KubeConfigEnvVar = "KUBECONFIG"
)

// kubex application paths
const (
	// AppName is the binary name and the directory name under the user config dir
	AppName = "kubex"

	// ConfigFileName is the base name of the optional configuration file
	ConfigFileName = "config"

	// ConfigFileType is the format of the configuration file
	ConfigFileType = "yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "KUBEX"

	// DiscoveryCacheExt is the file extension of discovery cache files
	DiscoveryCacheExt = ".json"

	// DiscoveryCacheDirPermissions defines the permissions for the cache directory
	DiscoveryCacheDirPermissions = 0o755

	// DiscoveryCacheFilePermissions defines the permissions for cache files
	DiscoveryCacheFilePermissions = 0o644

	// MetricsFilePermissions defines the permissions for the metrics textfile
	MetricsFilePermissions = 0o644
)

// Kubernetes defaults
const (
	// DefaultNamespace is used when neither a flag nor the context selects one
	DefaultNamespace = "default"
)
