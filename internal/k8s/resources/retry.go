package resources

import (
	"context"

	"k8s.io/client-go/dynamic"

	"github.com/katyella/kubex/internal/k8s/retry"
)

// WithRetry runs op against the dynamic interface for namespace under the
// client's retry policy. It covers calls ResourceClient does not expose,
// such as subresource updates.
func WithRetry[T any](ctx context.Context, r *Resource, namespace string, op func(ctx context.Context, ri dynamic.ResourceInterface) (T, error)) (T, error) {
	ri := r.dynamicFor(namespace)
	return retry.Do(ctx, r.client.policy, func(ctx context.Context) (T, error) {
		return op(ctx, ri)
	})
}
