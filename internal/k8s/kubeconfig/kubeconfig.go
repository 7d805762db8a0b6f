// Package kubeconfig reads the contexts and namespaces a user has
// configured and builds REST configs for them.
package kubeconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"

	"github.com/katyella/kubex/internal/constants"
)

// ContextInfo describes one kubeconfig context for listings and completion.
type ContextInfo struct {
	Name      string
	Cluster   string
	Namespace string
	Current   bool
}

// Description renders the context details shown next to completions.
func (c ContextInfo) Description() string {
	var parts []string
	if c.Current {
		parts = append(parts, "[current]")
	}
	if c.Cluster != "" {
		parts = append(parts, "cluster="+c.Cluster)
	}
	if c.Namespace != "" {
		parts = append(parts, "namespace="+c.Namespace)
	}
	return strings.Join(parts, " ")
}

// Reader loads kubeconfig files using the standard client-go precedence:
// an explicit path, then KUBECONFIG, then ~/.kube/config.
type Reader struct {
	explicitPath string

	once sync.Once
	raw  *api.Config
	err  error
}

// NewReader creates a Reader. An empty path uses the default locations.
func NewReader(kubeconfigPath string) *Reader {
	return &Reader{explicitPath: kubeconfigPath}
}

// Path returns the kubeconfig location in use, for display.
func (r *Reader) Path() string {
	if r.explicitPath != "" {
		return r.explicitPath
	}
	return getDefaultKubeconfigPath()
}

func (r *Reader) loadingRules() *clientcmd.ClientConfigLoadingRules {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = r.explicitPath
	return rules
}

// Load returns the merged kubeconfig. The result is read once per Reader.
func (r *Reader) Load() (*api.Config, error) {
	r.once.Do(func() {
		raw, err := r.loadingRules().Load()
		if err != nil {
			r.err = NewKubeconfigError(ErrTypeLoadFailed, "failed to load kubeconfig file", err)
			return
		}
		r.raw = raw
	})
	return r.raw, r.err
}

// DetermineContext returns explicit when set, otherwise the kubeconfig's
// current-context.
func (r *Reader) DetermineContext(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	raw, err := r.Load()
	if err != nil {
		return "", err
	}
	if raw.CurrentContext == "" {
		return "", NewKubeconfigError(ErrTypeNoCurrentContext, constants.ErrNoCurrentContext, nil)
	}
	return raw.CurrentContext, nil
}

// DetermineNamespace returns explicit when set, otherwise the namespace of
// kubeContext, otherwise "default". Unreadable kubeconfigs fall through to
// the default.
func (r *Reader) DetermineNamespace(explicit, kubeContext string) string {
	if explicit != "" {
		return explicit
	}

	raw, err := r.Load()
	if err != nil {
		return constants.DefaultNamespace
	}
	if c := raw.Contexts[kubeContext]; c != nil && c.Namespace != "" {
		return c.Namespace
	}
	return constants.DefaultNamespace
}

// Contexts lists all contexts with the current one first and the rest
// sorted by name.
func (r *Reader) Contexts() ([]ContextInfo, error) {
	raw, err := r.Load()
	if err != nil {
		return nil, err
	}

	contexts := make([]ContextInfo, 0, len(raw.Contexts))
	for name, c := range raw.Contexts {
		info := ContextInfo{Name: name, Current: name == raw.CurrentContext}
		if c != nil {
			info.Cluster = c.Cluster
			info.Namespace = c.Namespace
		}
		contexts = append(contexts, info)
	}

	sort.Slice(contexts, func(i, j int) bool {
		if contexts[i].Current != contexts[j].Current {
			return contexts[i].Current
		}
		return contexts[i].Name < contexts[j].Name
	})
	return contexts, nil
}

// RESTConfig builds a client configuration for kubeContext.
func (r *Reader) RESTConfig(kubeContext string) (*rest.Config, error) {
	raw, err := r.Load()
	if err != nil {
		return nil, err
	}
	if _, exists := raw.Contexts[kubeContext]; !exists {
		return nil, NewKubeconfigError(
			ErrTypeContextNotFound,
			fmt.Sprintf("context '%s' not found in kubeconfig", kubeContext),
			nil,
		)
	}

	config, err := clientcmd.NewNonInteractiveClientConfig(
		*raw,
		kubeContext,
		&clientcmd.ConfigOverrides{},
		r.loadingRules(),
	).ClientConfig()
	if err != nil {
		return nil, NewKubeconfigError(
			ErrTypeConfigBuild,
			fmt.Sprintf("failed to build config for context '%s'", kubeContext),
			err,
		)
	}

	config.Timeout = constants.DefaultRequestTimeout
	return config, nil
}

// getDefaultKubeconfigPath returns the default kubeconfig path
func getDefaultKubeconfigPath() string {
	// Check KUBECONFIG environment variable
	if kubeconfig := os.Getenv(constants.KubeConfigEnvVar); kubeconfig != "" {
		return kubeconfig
	}

	// Default to ~/.kube/config
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, constants.KubeConfigDir, constants.KubeConfigFile)
}
