package kubeconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"

	"github.com/katyella/kubex/internal/constants"
)

func writeKubeconfig(t *testing.T, currentContext string) string {
	t.Helper()

	config := api.NewConfig()
	config.Clusters["dev"] = &api.Cluster{Server: "https://dev.example.com:6443"}
	config.Clusters["prod"] = &api.Cluster{Server: "https://prod.example.com:6443"}
	config.AuthInfos["admin"] = &api.AuthInfo{Token: "secret"}
	config.Contexts["kind-dev"] = &api.Context{Cluster: "dev", AuthInfo: "admin", Namespace: "team-a"}
	config.Contexts["prod"] = &api.Context{Cluster: "prod", AuthInfo: "admin"}
	config.Contexts["arn:aws:eks:eu-west-1:1234:cluster/main"] = &api.Context{Cluster: "prod", AuthInfo: "admin", Namespace: "ops"}
	config.CurrentContext = currentContext

	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, clientcmd.WriteToFile(*config, path))
	return path
}

func TestDetermineContext(t *testing.T) {
	t.Parallel()

	reader := NewReader(writeKubeconfig(t, "prod"))

	ctx, err := reader.DetermineContext("kind-dev")
	require.NoError(t, err)
	assert.Equal(t, "kind-dev", ctx)

	ctx, err = reader.DetermineContext("")
	require.NoError(t, err)
	assert.Equal(t, "prod", ctx)
}

func TestDetermineContextWithoutCurrentContext(t *testing.T) {
	t.Parallel()

	reader := NewReader(writeKubeconfig(t, ""))

	_, err := reader.DetermineContext("")
	var kubeErr *KubeconfigError
	require.True(t, errors.As(err, &kubeErr))
	assert.Equal(t, ErrTypeNoCurrentContext, kubeErr.Type)
}

func TestDetermineContextMissingFile(t *testing.T) {
	t.Parallel()

	reader := NewReader(filepath.Join(t.TempDir(), "missing"))

	_, err := reader.DetermineContext("")
	var kubeErr *KubeconfigError
	require.ErrorAs(t, err, &kubeErr)
	assert.Equal(t, ErrTypeLoadFailed, kubeErr.Type)

	ctx, err := reader.DetermineContext("explicit")
	require.NoError(t, err, "an explicit context never needs the kubeconfig")
	assert.Equal(t, "explicit", ctx)
}

func TestDetermineNamespace(t *testing.T) {
	t.Parallel()

	reader := NewReader(writeKubeconfig(t, "prod"))

	tests := []struct {
		name     string
		explicit string
		context  string
		want     string
	}{
		{name: "explicit wins", explicit: "kube-system", context: "kind-dev", want: "kube-system"},
		{name: "context namespace", context: "kind-dev", want: "team-a"},
		{name: "context without namespace", context: "prod", want: constants.DefaultNamespace},
		{name: "unknown context", context: "nope", want: constants.DefaultNamespace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reader.DetermineNamespace(tt.explicit, tt.context))
		})
	}

	missing := NewReader(filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, constants.DefaultNamespace, missing.DetermineNamespace("", "kind-dev"))
}

func TestContextsCurrentFirst(t *testing.T) {
	t.Parallel()

	reader := NewReader(writeKubeconfig(t, "prod"))

	contexts, err := reader.Contexts()
	require.NoError(t, err)
	require.Len(t, contexts, 3)

	assert.Equal(t, ContextInfo{Name: "prod", Cluster: "prod", Current: true}, contexts[0])
	assert.Equal(t, "arn:aws:eks:eu-west-1:1234:cluster/main", contexts[1].Name)
	assert.Equal(t, "kind-dev", contexts[2].Name)

	assert.Equal(t, "[current] cluster=prod", contexts[0].Description())
	assert.Equal(t, "cluster=dev namespace=team-a", contexts[2].Description())
}

func TestRESTConfig(t *testing.T) {
	t.Parallel()

	reader := NewReader(writeKubeconfig(t, "prod"))

	config, err := reader.RESTConfig("kind-dev")
	require.NoError(t, err)
	assert.Equal(t, "https://dev.example.com:6443", config.Host)
	assert.Equal(t, "secret", config.BearerToken)
	assert.Equal(t, constants.DefaultRequestTimeout, config.Timeout)

	_, err = reader.RESTConfig("nope")
	var kubeErr *KubeconfigError
	require.ErrorAs(t, err, &kubeErr)
	assert.Equal(t, ErrTypeContextNotFound, kubeErr.Type)
}

func TestReaderPath(t *testing.T) {
	assert.Equal(t, "/explicit/config", NewReader("/explicit/config").Path())

	t.Setenv(constants.KubeConfigEnvVar, "/tmp/test-kubeconfig")
	assert.Equal(t, "/tmp/test-kubeconfig", NewReader("").Path())

	t.Setenv(constants.KubeConfigEnvVar, "")
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".kube", "config"), NewReader("").Path())
}
