package k8s

import (
	"context"
	"fmt"

	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/metadata"
	"k8s.io/client-go/rest"

	"github.com/katyella/kubex/internal/k8s/kubeconfig"
	"github.com/katyella/kubex/internal/k8s/retry"
)

// ClientFactory creates and manages Kubernetes clients for one context
type ClientFactory struct {
	reader      *kubeconfig.Reader
	config      *rest.Config
	kubeContext string

	discoveryClient discovery.DiscoveryInterface
	dynamicClient   dynamic.Interface
	metadataClient  metadata.Interface
}

// NewClientFactory creates a new client factory
func NewClientFactory(reader *kubeconfig.Reader) *ClientFactory {
	return &ClientFactory{reader: reader}
}

// Initialize builds the clients for kubeContext. No request is sent to the
// cluster.
func (cf *ClientFactory) Initialize(kubeContext string) error {
	config, err := cf.reader.RESTConfig(kubeContext)
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	discoveryClient, err := discovery.NewDiscoveryClientForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create discovery client: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create dynamic client: %w", err)
	}

	metadataClient, err := metadata.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create metadata client: %w", err)
	}

	cf.config = config
	cf.kubeContext = kubeContext
	cf.discoveryClient = discoveryClient
	cf.dynamicClient = dynamicClient
	cf.metadataClient = metadataClient
	return nil
}

// GetConfig returns the Kubernetes rest config
func (cf *ClientFactory) GetConfig() *rest.Config {
	return cf.config
}

// GetContext returns the context the clients were built for
func (cf *ClientFactory) GetContext() string {
	return cf.kubeContext
}

// Discovery returns the discovery client
func (cf *ClientFactory) Discovery() discovery.DiscoveryInterface {
	return cf.discoveryClient
}

// Dynamic returns the dynamic client
func (cf *ClientFactory) Dynamic() dynamic.Interface {
	return cf.dynamicClient
}

// Metadata returns the metadata-only client
func (cf *ClientFactory) Metadata() metadata.Interface {
	return cf.metadataClient
}

// CheckConnection asks the server for its version, retrying transient
// failures under policy. The final error is returned unchanged.
func CheckConnection(ctx context.Context, client discovery.DiscoveryInterface, policy retry.Policy) error {
	return retry.Run(ctx, policy, func(context.Context) error {
		_, err := client.ServerVersion()
		return err
	})
}
