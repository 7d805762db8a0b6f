package resources

import (
	"context"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/apimachinery/pkg/watch"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/metadata"

	"github.com/katyella/kubex/internal/constants"
	"github.com/katyella/kubex/internal/k8s/discovery"
	"github.com/katyella/kubex/internal/k8s/retry"
)

// Client hands out retrying accessors for discovered resource types.
type Client struct {
	dynamic      dynamic.Interface
	metadata     metadata.Interface
	policy       retry.Policy
	defaultLimit int64
}

// NewClient creates a Client. The metadata client may be nil, in which case
// metadata-only operations fail.
func NewClient(dynamicClient dynamic.Interface, metadataClient metadata.Interface, policy retry.Policy) *Client {
	return &Client{
		dynamic:      dynamicClient,
		metadata:     metadataClient,
		policy:       policy,
		defaultLimit: constants.DefaultListLimit,
	}
}

// Policy returns the retry policy applied to every call.
func (c *Client) Policy() retry.Policy {
	return c.policy
}

// For returns the accessor for the resource type described by d.
func (c *Client) For(d discovery.Descriptor) *Resource {
	return &Resource{client: c, descriptor: d, gvr: d.GroupVersionResource()}
}

// Resource implements ResourceClient for a single resource type.
type Resource struct {
	client     *Client
	descriptor discovery.Descriptor
	gvr        schema.GroupVersionResource
}

// Descriptor returns the resource type this accessor operates on.
func (r *Resource) Descriptor() discovery.Descriptor {
	return r.descriptor
}

func (r *Resource) dynamicFor(namespace string) dynamic.ResourceInterface {
	base := r.client.dynamic.Resource(r.gvr)
	if r.descriptor.Namespaced {
		return base.Namespace(namespace)
	}
	return base
}

func (r *Resource) metadataFor(namespace string) (metadata.ResourceInterface, error) {
	if r.client.metadata == nil {
		return nil, fmt.Errorf("metadata client not configured for %s", r.descriptor.QualifiedName())
	}
	base := r.client.metadata.Resource(r.gvr)
	if r.descriptor.Namespaced {
		return base.Namespace(namespace), nil
	}
	return base, nil
}

// Get fetches one object.
func (r *Resource) Get(ctx context.Context, namespace, name string, opts metav1.GetOptions) (*unstructured.Unstructured, error) {
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*unstructured.Unstructured, error) {
		return r.dynamicFor(namespace).Get(ctx, name, opts)
	})
}

// GetOptional fetches one object and returns nil without error if it does not exist.
func (r *Resource) GetOptional(ctx context.Context, namespace, name string) (*unstructured.Unstructured, error) {
	obj, err := r.Get(ctx, namespace, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	return obj, err
}

// List lists objects, across all namespaces when opts.Namespace is empty.
func (r *Resource) List(ctx context.Context, opts ListOptions) (*unstructured.UnstructuredList, error) {
	listOpts := opts.toMeta(r.client.defaultLimit)
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*unstructured.UnstructuredList, error) {
		return r.dynamicFor(opts.Namespace).List(ctx, listOpts)
	})
}

// Create creates obj in its own namespace.
func (r *Resource) Create(ctx context.Context, obj *unstructured.Unstructured, opts metav1.CreateOptions) (*unstructured.Unstructured, error) {
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*unstructured.Unstructured, error) {
		return r.dynamicFor(obj.GetNamespace()).Create(ctx, obj, opts)
	})
}

// Replace overwrites the stored object with obj.
func (r *Resource) Replace(ctx context.Context, obj *unstructured.Unstructured, opts metav1.UpdateOptions) (*unstructured.Unstructured, error) {
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*unstructured.Unstructured, error) {
		return r.dynamicFor(obj.GetNamespace()).Update(ctx, obj, opts)
	})
}

// Patch applies a patch of type pt.
func (r *Resource) Patch(ctx context.Context, namespace, name string, pt types.PatchType, data []byte, opts metav1.PatchOptions) (*unstructured.Unstructured, error) {
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*unstructured.Unstructured, error) {
		return r.dynamicFor(namespace).Patch(ctx, name, pt, data, opts)
	})
}

// Watch starts a watch. Only establishing the watch is retried.
func (r *Resource) Watch(ctx context.Context, opts ListOptions) (watch.Interface, error) {
	listOpts := opts.toMeta(0)
	listOpts.Watch = true
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (watch.Interface, error) {
		return r.dynamicFor(opts.Namespace).Watch(ctx, listOpts)
	})
}

// GetMetadata fetches only the metadata of one object.
func (r *Resource) GetMetadata(ctx context.Context, namespace, name string, opts metav1.GetOptions) (*metav1.PartialObjectMetadata, error) {
	client, err := r.metadataFor(namespace)
	if err != nil {
		return nil, err
	}
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*metav1.PartialObjectMetadata, error) {
		return client.Get(ctx, name, opts)
	})
}

// GetMetadataOptional is GetMetadata returning nil without error for missing objects.
func (r *Resource) GetMetadataOptional(ctx context.Context, namespace, name string) (*metav1.PartialObjectMetadata, error) {
	obj, err := r.GetMetadata(ctx, namespace, name, metav1.GetOptions{})
	if apierrors.IsNotFound(err) {
		return nil, nil
	}
	return obj, err
}

// ListMetadata lists only object metadata.
func (r *Resource) ListMetadata(ctx context.Context, opts ListOptions) (*metav1.PartialObjectMetadataList, error) {
	client, err := r.metadataFor(opts.Namespace)
	if err != nil {
		return nil, err
	}
	listOpts := opts.toMeta(r.client.defaultLimit)
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*metav1.PartialObjectMetadataList, error) {
		return client.List(ctx, listOpts)
	})
}

// PatchMetadata patches an object and returns its metadata.
func (r *Resource) PatchMetadata(ctx context.Context, namespace, name string, pt types.PatchType, data []byte, opts metav1.PatchOptions) (*metav1.PartialObjectMetadata, error) {
	client, err := r.metadataFor(namespace)
	if err != nil {
		return nil, err
	}
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (*metav1.PartialObjectMetadata, error) {
		return client.Patch(ctx, name, pt, data, opts)
	})
}

// WatchMetadata starts a metadata-only watch. Only establishing the watch is retried.
func (r *Resource) WatchMetadata(ctx context.Context, opts ListOptions) (watch.Interface, error) {
	client, err := r.metadataFor(opts.Namespace)
	if err != nil {
		return nil, err
	}
	listOpts := opts.toMeta(0)
	listOpts.Watch = true
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (watch.Interface, error) {
		return client.Watch(ctx, listOpts)
	})
}
