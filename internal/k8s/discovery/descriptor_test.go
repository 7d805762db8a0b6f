package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

func TestDescriptorsFromLists(t *testing.T) {
	t.Parallel()

	descriptors := DescriptorsFromLists(testResourceLists())
	require.Len(t, descriptors, 3, "subresources must be skipped")

	names := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"pods", "services", "deployments"}, names)

	assert.Equal(t, podsDescriptor, descriptors[0])
	assert.Equal(t, "apps", descriptors[2].Group)
	assert.Equal(t, "v1", descriptors[2].Version)
}

func TestDescriptorsFromListsSkipsInvalidGroupVersion(t *testing.T) {
	t.Parallel()

	lists := testResourceLists()
	lists[0].GroupVersion = "a/b/c"
	lists = append(lists, nil)

	descriptors := DescriptorsFromLists(lists)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "deployments", descriptors[0].Name)
}

func TestDescriptorCoordinates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		descriptor Descriptor
		apiVersion string
		qualified  string
		gvr        schema.GroupVersionResource
	}{
		{
			name:       "core group",
			descriptor: podsDescriptor,
			apiVersion: "v1",
			qualified:  "pods",
			gvr:        schema.GroupVersionResource{Version: "v1", Resource: "pods"},
		},
		{
			name:       "core alias",
			descriptor: Descriptor{Group: "core", Version: "v1", Kind: "ConfigMap", Name: "configmaps"},
			apiVersion: "v1",
			qualified:  "configmaps",
			gvr:        schema.GroupVersionResource{Version: "v1", Resource: "configmaps"},
		},
		{
			name:       "named group",
			descriptor: deploymentsDescriptor,
			apiVersion: "apps/v1",
			qualified:  "deployments.apps",
			gvr:        schema.GroupVersionResource{Group: "apps", Version: "v1", Resource: "deployments"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.apiVersion, tt.descriptor.APIVersion())
			assert.Equal(t, tt.qualified, tt.descriptor.QualifiedName())
			assert.Equal(t, tt.gvr, tt.descriptor.GroupVersionResource())
		})
	}
}

func TestDescriptorSupportsVerb(t *testing.T) {
	t.Parallel()

	assert.True(t, podsDescriptor.SupportsVerb("watch"))
	assert.False(t, coreEventsDescriptor.SupportsVerb("watch"))
	assert.True(t, Descriptor{Name: "unknown"}.SupportsVerb("list"))
}
