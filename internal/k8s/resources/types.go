package resources

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ResourceInfo contains the columns shown for any Kubernetes object
type ResourceInfo struct {
	Name       string            `json:"name"`
	Namespace  string            `json:"namespace,omitempty"`
	Kind       string            `json:"kind"`
	APIVersion string            `json:"apiVersion"`
	Labels     map[string]string `json:"labels,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
	Age        string            `json:"age"`
}

// ResourceList contains a list of resources with metadata
type ResourceList[T any] struct {
	Items     []T    `json:"items"`
	Total     int    `json:"total"`
	Namespace string `json:"namespace"`
	Continue  string `json:"continue,omitempty"`  // For pagination
	Remaining int64  `json:"remaining,omitempty"` // Estimated remaining items
}

// ListOptions contains options for listing and watching resources.
// An empty Namespace lists across all namespaces.
type ListOptions struct {
	Namespace       string `json:"namespace"`
	LabelSelector   string `json:"labelSelector,omitempty"`
	FieldSelector   string `json:"fieldSelector,omitempty"`
	Limit           int64  `json:"limit,omitempty"`
	Continue        string `json:"continue,omitempty"`
	ResourceVersion string `json:"resourceVersion,omitempty"`
}

func (o ListOptions) toMeta(defaultLimit int64) metav1.ListOptions {
	limit := o.Limit
	if limit == 0 {
		limit = defaultLimit
	}
	return metav1.ListOptions{
		LabelSelector:   o.LabelSelector,
		FieldSelector:   o.FieldSelector,
		Limit:           limit,
		Continue:        o.Continue,
		ResourceVersion: o.ResourceVersion,
	}
}

// NewResourceInfo summarizes an object's metadata for display.
func NewResourceInfo(typeMeta metav1.TypeMeta, objMeta metav1.Object, now time.Time) ResourceInfo {
	created := objMeta.GetCreationTimestamp().Time
	return ResourceInfo{
		Name:       objMeta.GetName(),
		Namespace:  objMeta.GetNamespace(),
		Kind:       typeMeta.Kind,
		APIVersion: typeMeta.APIVersion,
		Labels:     objMeta.GetLabels(),
		CreatedAt:  created,
		Age:        formatAge(created, now),
	}
}
