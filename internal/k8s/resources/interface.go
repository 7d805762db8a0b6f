package resources

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/watch"
)

// ResourceClient defines the operations available on one resource type.
// Every call is retried according to the client's retry policy; watches are
// retried only while the watch is being established.
type ResourceClient interface {
	// Full object operations
	Get(ctx context.Context, namespace, name string, opts metav1.GetOptions) (*unstructured.Unstructured, error)
	GetOptional(ctx context.Context, namespace, name string) (*unstructured.Unstructured, error)
	List(ctx context.Context, opts ListOptions) (*unstructured.UnstructuredList, error)
	Create(ctx context.Context, obj *unstructured.Unstructured, opts metav1.CreateOptions) (*unstructured.Unstructured, error)
	Replace(ctx context.Context, obj *unstructured.Unstructured, opts metav1.UpdateOptions) (*unstructured.Unstructured, error)
	Patch(ctx context.Context, namespace, name string, pt types.PatchType, data []byte, opts metav1.PatchOptions) (*unstructured.Unstructured, error)
	Delete(ctx context.Context, namespace, name string, opts metav1.DeleteOptions) error
	Watch(ctx context.Context, opts ListOptions) (watch.Interface, error)

	// Metadata-only operations
	GetMetadata(ctx context.Context, namespace, name string, opts metav1.GetOptions) (*metav1.PartialObjectMetadata, error)
	GetMetadataOptional(ctx context.Context, namespace, name string) (*metav1.PartialObjectMetadata, error)
	ListMetadata(ctx context.Context, opts ListOptions) (*metav1.PartialObjectMetadataList, error)
	PatchMetadata(ctx context.Context, namespace, name string, pt types.PatchType, data []byte, opts metav1.PatchOptions) (*metav1.PartialObjectMetadata, error)
	WatchMetadata(ctx context.Context, opts ListOptions) (watch.Interface, error)
}

var _ ResourceClient = (*Resource)(nil)
