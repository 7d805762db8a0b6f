package discovery

import (
	"context"
	"errors"
	"sync/atomic"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

var (
	podsDescriptor = Descriptor{
		Version: "v1", Kind: "Pod", Name: "pods", SingularName: "pod",
		ShortNames: []string{"po"}, Namespaced: true,
		Verbs: []string{"create", "delete", "get", "list", "patch", "update", "watch"},
	}
	servicesDescriptor = Descriptor{
		Version: "v1", Kind: "Service", Name: "services", SingularName: "service",
		ShortNames: []string{"svc"}, Namespaced: true,
		Verbs: []string{"create", "delete", "get", "list", "patch", "update", "watch"},
	}
	deploymentsDescriptor = Descriptor{
		Group: "apps", Version: "v1", Kind: "Deployment", Name: "deployments", SingularName: "deployment",
		ShortNames: []string{"deploy"}, Namespaced: true,
		Verbs: []string{"create", "delete", "get", "list", "patch", "update", "watch"},
	}
	ingressesDescriptor = Descriptor{
		Group: "networking.k8s.io", Version: "v1", Kind: "Ingress", Name: "ingresses", SingularName: "ingress",
		ShortNames: []string{"ing"}, Namespaced: true,
		Verbs: []string{"get", "list", "watch"},
	}
	coreEventsDescriptor = Descriptor{
		Version: "v1", Kind: "Event", Name: "events", SingularName: "event",
		ShortNames: []string{"ev"}, Namespaced: true,
		Verbs: []string{"get", "list"},
	}
	eventsV1Descriptor = Descriptor{
		Group: "events.k8s.io", Version: "v1", Kind: "Event", Name: "events", SingularName: "event",
		ShortNames: []string{"ev"}, Namespaced: true,
		Verbs: []string{"get", "list"},
	}
	nodesDescriptor = Descriptor{
		Version: "v1", Kind: "Node", Name: "nodes", SingularName: "node",
		ShortNames: []string{"no"}, Namespaced: false,
		Verbs: []string{"get", "list", "watch"},
	}
)

func testDescriptors() []Descriptor {
	return []Descriptor{
		podsDescriptor,
		servicesDescriptor,
		nodesDescriptor,
		coreEventsDescriptor,
		deploymentsDescriptor,
		ingressesDescriptor,
		eventsV1Descriptor,
	}
}

func testResourceLists() []*metav1.APIResourceList {
	return []*metav1.APIResourceList{
		{
			GroupVersion: "v1",
			APIResources: []metav1.APIResource{
				{Name: "pods", SingularName: "pod", Kind: "Pod", Namespaced: true, ShortNames: []string{"po"},
					Verbs: metav1.Verbs{"create", "delete", "get", "list", "patch", "update", "watch"}},
				{Name: "pods/log", Kind: "Pod", Namespaced: true, Verbs: metav1.Verbs{"get"}},
				{Name: "services", SingularName: "service", Kind: "Service", Namespaced: true, ShortNames: []string{"svc"},
					Verbs: metav1.Verbs{"create", "delete", "get", "list", "patch", "update", "watch"}},
			},
		},
		{
			GroupVersion: "apps/v1",
			APIResources: []metav1.APIResource{
				{Name: "deployments", SingularName: "deployment", Kind: "Deployment", Namespaced: true,
					ShortNames: []string{"deploy"},
					Verbs:      metav1.Verbs{"create", "delete", "get", "list", "patch", "update", "watch"}},
				{Name: "deployments/scale", Kind: "Scale", Group: "autoscaling", Version: "v1", Namespaced: true},
			},
		},
	}
}

// liveStub counts live discovery calls and returns a fixed result.
type liveStub struct {
	calls       atomic.Int32
	descriptors []Descriptor
	err         error
}

func (s *liveStub) discover(context.Context) ([]Descriptor, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.descriptors, nil
}

var podsGroupResource = schema.GroupResource{Resource: "pods"}

var errConnectionRefused = errors.New("dial tcp 10.0.0.1:6443: connect: connection refused")
