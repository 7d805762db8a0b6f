package discovery

import (
	"context"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	clientdiscovery "k8s.io/client-go/discovery"

	"github.com/katyella/kubex/internal/k8s/retry"
	"github.com/katyella/kubex/internal/logging"
	"github.com/katyella/kubex/internal/metrics"
)

// LiveDiscoverer lists the preferred version of every resource served by a
// cluster, retrying transient failures.
type LiveDiscoverer struct {
	client clientdiscovery.DiscoveryInterface
	policy retry.Policy
}

// NewLiveDiscoverer returns a LiveDiscoverer using client and policy.
func NewLiveDiscoverer(client clientdiscovery.DiscoveryInterface, policy retry.Policy) *LiveDiscoverer {
	return &LiveDiscoverer{client: client, policy: policy}
}

// Discover implements LiveDiscoverFunc. Groups that fail to respond are
// skipped as long as at least one group was discovered.
func (l *LiveDiscoverer) Discover(ctx context.Context) ([]Descriptor, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	lists, err := retry.Do(ctx, l.policy, func(context.Context) ([]*metav1.APIResourceList, error) {
		lists, err := clientdiscovery.ServerPreferredResources(l.client)
		if err != nil && clientdiscovery.IsGroupDiscoveryFailedError(err) && len(lists) > 0 {
			logger.Warn("some API groups could not be discovered", "error", err)
			return lists, nil
		}
		return lists, err
	})

	duration := time.Since(start)
	metrics.APIDiscoveryDuration.Observe(duration.Seconds())
	if err != nil {
		metrics.APIDiscoveryErrors.Inc()
		return nil, err
	}

	descriptors := DescriptorsFromLists(lists)
	logger.Debug("discovered API resources", "count", len(descriptors), "duration", duration)
	return descriptors, nil
}
