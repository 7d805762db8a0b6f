// Package config loads kubex settings from an optional YAML file, KUBEX_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katyella/kubex/internal/constants"
	apperrors "github.com/katyella/kubex/internal/errors"
	"github.com/katyella/kubex/internal/k8s/discovery"
	"github.com/katyella/kubex/internal/k8s/retry"
)

// Configuration keys
const (
	KeyKubeconfig     = "kubeconfig"
	KeyContext        = "context"
	KeyNamespace      = "namespace"
	KeyDebug          = "debug"
	KeyMetricsFile    = "metrics-file"
	KeyMaxAttempts    = "retry.max-attempts"
	KeyInitialBackoff = "retry.initial-backoff"
	KeyMaxBackoff     = "retry.max-backoff"
	KeyMultiplier     = "retry.multiplier"
	KeyCacheDir       = "discovery.cache-dir"
	KeyCacheTTL       = "discovery.cache-ttl"
)

// Config holds every kubex setting.
type Config struct {
	Kubeconfig  string          `mapstructure:"kubeconfig"`
	Context     string          `mapstructure:"context"`
	Namespace   string          `mapstructure:"namespace"`
	Debug       bool            `mapstructure:"debug"`
	MetricsFile string          `mapstructure:"metrics-file"`
	Retry       RetryConfig     `mapstructure:"retry"`
	Discovery   DiscoveryConfig `mapstructure:"discovery"`
}

// RetryConfig controls retries of API calls. MaxAttempts of 0 retries forever.
type RetryConfig struct {
	MaxAttempts    int           `mapstructure:"max-attempts"`
	InitialBackoff time.Duration `mapstructure:"initial-backoff"`
	MaxBackoff     time.Duration `mapstructure:"max-backoff"`
	Multiplier     float64       `mapstructure:"multiplier"`
}

// DiscoveryConfig controls the discovery cache. A CacheTTL of 0 never expires.
type DiscoveryConfig struct {
	CacheDir string        `mapstructure:"cache-dir"`
	CacheTTL time.Duration `mapstructure:"cache-ttl"`
}

// New returns a viper instance with kubex defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyKubeconfig, "")
	v.SetDefault(KeyContext, "")
	v.SetDefault(KeyNamespace, "")
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyMetricsFile, "")
	v.SetDefault(KeyMaxAttempts, constants.DefaultRetryAttempts)
	v.SetDefault(KeyInitialBackoff, constants.DefaultInitialBackoff)
	v.SetDefault(KeyMaxBackoff, constants.DefaultMaxBackoff)
	v.SetDefault(KeyMultiplier, constants.DefaultBackoffMultiplier)
	v.SetDefault(KeyCacheDir, "")
	v.SetDefault(KeyCacheTTL, constants.DefaultDiscoveryCacheTTL)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads configFile, or <user config dir>/kubex/config.yaml when empty,
// and decodes the merged settings. A missing default file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(constants.ConfigFileName)
		v.SetConfigType(constants.ConfigFileType)
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, constants.AppName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, apperrors.NewConfigError("failed to read config file", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to decode configuration", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings that cannot produce a usable retry policy.
func (c *Config) Validate() error {
	var problems []string
	if c.Retry.MaxAttempts < 0 {
		problems = append(problems, fmt.Sprintf("%s must be >= 0, got %d", KeyMaxAttempts, c.Retry.MaxAttempts))
	}
	if c.Retry.InitialBackoff < 0 {
		problems = append(problems, fmt.Sprintf("%s must not be negative", KeyInitialBackoff))
	}
	if c.Retry.MaxBackoff < 0 {
		problems = append(problems, fmt.Sprintf("%s must not be negative", KeyMaxBackoff))
	}
	if c.Retry.Multiplier <= 0 {
		problems = append(problems, fmt.Sprintf("%s must be positive, got %g", KeyMultiplier, c.Retry.Multiplier))
	}

	if len(problems) > 0 {
		return apperrors.NewConfigError("invalid configuration", errors.New(strings.Join(problems, "; ")))
	}
	return nil
}

// RetryPolicy builds the policy for API calls. Extra options are applied last.
func (c *Config) RetryPolicy(opts ...retry.Option) retry.Policy {
	limit := retry.Attempts(c.Retry.MaxAttempts)
	if c.Retry.MaxAttempts == constants.UnlimitedRetryAttempts {
		limit = retry.Unlimited()
	}

	base := []retry.Option{
		retry.WithLimit(limit),
		retry.WithInitialBackoff(c.Retry.InitialBackoff),
		retry.WithMaxBackoff(c.Retry.MaxBackoff),
		retry.WithMultiplier(c.Retry.Multiplier),
	}
	return retry.NewPolicy(append(base, opts...)...)
}

// DiscovererOptions returns the cache settings for a discovery.Discoverer.
func (c *Config) DiscovererOptions() []discovery.DiscovererOption {
	opts := []discovery.DiscovererOption{discovery.WithTTL(c.Discovery.CacheTTL)}
	if c.Discovery.CacheDir != "" {
		opts = append(opts, discovery.WithCacheDir(c.Discovery.CacheDir))
	}
	return opts
}
