package k8s

import (
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/metadata"
	"k8s.io/client-go/rest"
)

// Client defines the interface for Kubernetes client operations
type Client interface {
	// Initialization
	Initialize(kubeContext string) error

	// Client access
	GetConfig() *rest.Config
	GetContext() string
	Discovery() discovery.DiscoveryInterface
	Dynamic() dynamic.Interface
	Metadata() metadata.Interface
}

// Ensure ClientFactory implements Client interface
var _ Client = (*ClientFactory)(nil)
