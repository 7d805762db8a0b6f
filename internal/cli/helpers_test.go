package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/watch"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	clienttesting "k8s.io/client-go/testing"

	apperrors "github.com/katyella/kubex/internal/errors"
	"github.com/katyella/kubex/internal/k8s/discovery"
	"github.com/katyella/kubex/internal/k8s/resources"
	"github.com/katyella/kubex/internal/k8s/retry"
)

func TestSplitTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"po", "svc", "deploy"}, splitTokens([]string{"po,svc", " deploy ", ","}))
	assert.Empty(t, splitTokens(nil))
}

func TestRemoteErrorClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want apperrors.ErrorType
	}{
		{"service unavailable", apierrors.NewServiceUnavailable("down"), apperrors.ErrorNetwork},
		{"too many requests", apierrors.NewTooManyRequests("slow down", 1), apperrors.ErrorNetwork},
		{"forbidden", apierrors.NewForbidden(schema.GroupResource{Resource: "pods"}, "", errors.New("rbac")), apperrors.ErrorRemote},
		{"connection refused", errors.New("dial tcp: connection refused"), apperrors.ErrorNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			appErr, ok := apperrors.As(remoteError("failed to list pods", tt.err))
			require.True(t, ok)
			assert.Equal(t, tt.want, appErr.Type)
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}

func TestPrintMetadataTablesSectionsMultipleResources(t *testing.T) {
	t.Parallel()

	pods := discovery.Descriptor{Version: "v1", Kind: "Pod", Name: "pods", Namespaced: true}
	nodes := discovery.Descriptor{Version: "v1", Kind: "Node", Name: "nodes"}
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	lists := [][]metav1.PartialObjectMetadata{
		{{ObjectMeta: metav1.ObjectMeta{
			Name:              "web-0",
			Namespace:         "default",
			CreationTimestamp: metav1.NewTime(now.Add(-90 * time.Minute)),
		}}},
		nil,
	}

	var buf bytes.Buffer
	require.NoError(t, printMetadataTables(&buf, []discovery.Descriptor{pods, nodes}, lists, "", now))

	out := buf.String()
	assert.Contains(t, out, "NAMESPACE")
	assert.Contains(t, out, "web-0")
	assert.Contains(t, out, "nodes")
	assert.Contains(t, out, "No nodes found.")
}

func TestResolutionErrorKeepsAppErrors(t *testing.T) {
	t.Parallel()

	discoveryErr := apperrors.NewDiscoveryError("discovery failed", errors.New("boom"))
	assert.Same(t, discoveryErr, resolutionError(discoveryErr))

	wrapped := resolutionError(&discovery.UnresolvedResourcesError{Tokens: []string{"widgets"}})
	appErr, ok := apperrors.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorResolution, appErr.Type)
	assert.Contains(t, wrapped.Error(), "widgets")
}

func TestWatchResourcePrintsEvents(t *testing.T) {
	t.Parallel()

	fw := watch.NewFake()
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{podsGVR: "PodList"})
	dyn.PrependWatchReactor("pods", clienttesting.DefaultWatchReactor(fw, nil))

	pods := discovery.Descriptor{Version: "v1", Kind: "Pod", Name: "pods", Namespaced: true}
	client := resources.NewClient(dyn, nil, retry.DefaultPolicy())

	pod := newPod(t, "team-a", "web-0")
	go func() {
		fw.Add(pod)
		fw.Delete(pod)
		fw.Stop()
	}()

	var buf bytes.Buffer
	err := watchResource(context.Background(), &buf, client.For(pods), "pods", resources.ListOptions{Namespace: "team-a"})
	require.NoError(t, err)
	assert.Equal(t, "ADDED      team-a/web-0\nDELETED    team-a/web-0\n", buf.String())
}

func TestWatchResourceReportsWatchErrors(t *testing.T) {
	t.Parallel()

	fw := watch.NewFake()
	dyn := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(runtime.NewScheme(),
		map[schema.GroupVersionResource]string{podsGVR: "PodList"})
	dyn.PrependWatchReactor("pods", clienttesting.DefaultWatchReactor(fw, nil))

	pods := discovery.Descriptor{Version: "v1", Kind: "Pod", Name: "pods", Namespaced: true}
	client := resources.NewClient(dyn, nil, retry.DefaultPolicy())

	go fw.Error(&apierrors.NewGone("too old resource version").ErrStatus)

	err := watchResource(context.Background(), io.Discard, client.For(pods), "pods", resources.ListOptions{})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorRemote, appErr.Type)
	assert.True(t, apierrors.IsGone(errors.Unwrap(err)))
}
