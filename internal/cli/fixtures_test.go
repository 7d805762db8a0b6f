package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	fakediscovery "k8s.io/client-go/discovery/fake"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	metadatafake "k8s.io/client-go/metadata/fake"
	clienttesting "k8s.io/client-go/testing"

	"github.com/katyella/kubex/internal/k8s/kubeconfig"
)

const testKubeconfig = `apiVersion: v1
kind: Config
current-context: dev
clusters:
- name: dev-cluster
  cluster:
    server: https://127.0.0.1:6443
- name: prod-cluster
  cluster:
    server: https://10.0.0.1:6443
contexts:
- name: dev
  context:
    cluster: dev-cluster
    namespace: team-a
- name: prod
  context:
    cluster: prod-cluster
users: []
`

var (
	readVerbs = metav1.Verbs{"get", "list", "watch"}

	podsGVR        = schema.GroupVersionResource{Version: "v1", Resource: "pods"}
	deploymentsGVR = schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "deployments"}
)

func testResourceLists() []*metav1.APIResourceList {
	return []*metav1.APIResourceList{
		{
			GroupVersion: "v1",
			APIResources: []metav1.APIResource{
				{Name: "pods", SingularName: "pod", Kind: "Pod", Namespaced: true, ShortNames: []string{"po"}, Verbs: readVerbs},
				{Name: "pods/log", Kind: "Pod", Namespaced: true, Verbs: metav1.Verbs{"get"}},
				{Name: "services", SingularName: "service", Kind: "Service", Namespaced: true, ShortNames: []string{"svc"}, Verbs: readVerbs},
				{Name: "nodes", SingularName: "node", Kind: "Node", ShortNames: []string{"no"}, Verbs: readVerbs},
			},
		},
		{
			GroupVersion: "apps/v1",
			APIResources: []metav1.APIResource{
				{Name: "deployments", SingularName: "deployment", Kind: "Deployment", Namespaced: true, ShortNames: []string{"deploy"}, Verbs: readVerbs},
			},
		},
	}
}

// countingDiscovery counts live discovery runs.
type countingDiscovery struct {
	*fakediscovery.FakeDiscovery
	calls atomic.Int32
}

func (c *countingDiscovery) ServerGroups() (*metav1.APIGroupList, error) {
	c.calls.Add(1)
	return c.FakeDiscovery.ServerGroups()
}

func toUnstructured(t *testing.T, obj runtime.Object) *unstructured.Unstructured {
	t.Helper()

	content, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	require.NoError(t, err)
	return &unstructured.Unstructured{Object: content}
}

func newPod(t *testing.T, namespace, name string) *unstructured.Unstructured {
	return toUnstructured(t, &corev1.Pod{
		TypeMeta:   metav1.TypeMeta{APIVersion: "v1", Kind: "Pod"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: corev1.PodSpec{
			Containers: []corev1.Container{{Name: "main", Image: "nginx:1.27"}},
		},
	})
}

func newDeployment(t *testing.T, namespace, name string) *unstructured.Unstructured {
	return toUnstructured(t, &appsv1.Deployment{
		TypeMeta:   metav1.TypeMeta{APIVersion: "apps/v1", Kind: "Deployment"},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	})
}

func newMetadata(apiVersion, kind, namespace, name string) *metav1.PartialObjectMetadata {
	return &metav1.PartialObjectMetadata{
		TypeMeta:   metav1.TypeMeta{APIVersion: apiVersion, Kind: kind},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
}

type testEnv struct {
	cacheDir    string
	discovery   *countingDiscovery
	dynamic     *dynamicfake.FakeDynamicClient
	clients     *Clients
	connections atomic.Int32
}

// newTestEnv isolates configuration, kubeconfig and cache in temp dirs and
// serves a small cluster from fakes. Tests using it must not run in parallel.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("KUBECONFIG", "")

	kubeconfigPath := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(kubeconfigPath, []byte(testKubeconfig), 0o600))
	t.Setenv("KUBEX_KUBECONFIG", kubeconfigPath)

	cacheDir := t.TempDir()
	t.Setenv("KUBEX_DISCOVERY_CACHE_DIR", cacheDir)
	t.Setenv("KUBEX_RETRY_INITIAL_BACKOFF", "0s")
	t.Setenv("KUBEX_RETRY_MAX_ATTEMPTS", "2")

	disco := &countingDiscovery{
		FakeDiscovery: &fakediscovery.FakeDiscovery{Fake: &clienttesting.Fake{}},
	}
	disco.Resources = testResourceLists()

	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{
			podsGVR:        "PodList",
			deploymentsGVR: "DeploymentList",
		},
		newPod(t, "team-a", "web-0"),
		newPod(t, "kube-system", "coredns"),
		newDeployment(t, "team-a", "web"),
	)

	scheme := metadatafake.NewTestScheme()
	require.NoError(t, metav1.AddMetaToScheme(scheme))
	meta := metadatafake.NewSimpleMetadataClient(scheme,
		newMetadata("v1", "Pod", "team-a", "web-0"),
		newMetadata("v1", "Pod", "kube-system", "coredns"),
	)

	return &testEnv{
		cacheDir:  cacheDir,
		discovery: disco,
		dynamic:   dyn,
		clients:   &Clients{Discovery: disco, Dynamic: dyn, Metadata: meta},
	}
}

func (e *testEnv) clientsFor(_ *kubeconfig.Reader, _ string) (*Clients, error) {
	e.connections.Add(1)
	return e.clients, nil
}

type result struct {
	out    string
	errOut string
	code   int
}

func (e *testEnv) run(args ...string) result {
	var out, errOut bytes.Buffer
	code := Execute(context.Background(), Options{
		Out:     &out,
		ErrOut:  &errOut,
		Clients: e.clientsFor,
		Version: "test",
	}, args)
	return result{out: out.String(), errOut: errOut.String(), code: code}
}
