package resources

import (
	"context"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/katyella/kubex/internal/k8s/retry"
)

// Delete deletes one object
func (r *Resource) Delete(ctx context.Context, namespace, name string, opts metav1.DeleteOptions) error {
	return retry.Run(ctx, r.client.policy, func(ctx context.Context) error {
		return r.dynamicFor(namespace).Delete(ctx, name, opts)
	})
}
