package k8s

import (
	"slices"
	"sort"

	appsv1 "github.com/openshift/api/apps/v1"
	authorizationv1 "github.com/openshift/api/authorization/v1"
	buildv1 "github.com/openshift/api/build/v1"
	imagev1 "github.com/openshift/api/image/v1"
	networkv1 "github.com/openshift/api/network/v1"
	projectv1 "github.com/openshift/api/project/v1"
	quotav1 "github.com/openshift/api/quota/v1"
	routev1 "github.com/openshift/api/route/v1"
	securityv1 "github.com/openshift/api/security/v1"
	templatev1 "github.com/openshift/api/template/v1"
	userv1 "github.com/openshift/api/user/v1"
	operatorsv1alpha1 "github.com/operator-framework/api/pkg/operators/v1alpha1"

	"github.com/katyella/kubex/internal/constants"
	"github.com/katyella/kubex/internal/k8s/discovery"
)

// ClusterType represents the type of Kubernetes cluster
type ClusterType int

const (
	ClusterTypeUnknown ClusterType = iota
	ClusterTypeKubernetes
	ClusterTypeOpenShift
)

func (ct ClusterType) String() string {
	switch ct {
	case ClusterTypeKubernetes:
		return "Kubernetes"
	case ClusterTypeOpenShift:
		return "OpenShift"
	default:
		return "Unknown"
	}
}

// ClusterInfo contains information about the detected cluster
type ClusterInfo struct {
	Type          ClusterType
	APIGroups     []string
	OpenShiftAPIs []string
	ResourceCount int
	// HasOLM is set when the Operator Lifecycle Manager API is served
	HasOLM bool
}

// openShiftAPIGroups are API groups only served by OpenShift clusters.
var openShiftAPIGroups = []string{
	routev1.GroupName,
	buildv1.GroupName,
	imagev1.GroupName,
	projectv1.GroupName,
	appsv1.GroupName,
	templatev1.GroupName,
	securityv1.GroupName,
	userv1.GroupName,
	quotav1.GroupName,
	networkv1.GroupName,
	authorizationv1.GroupName,
}

// DetectClusterType classifies a cluster from its discovered resources.
// An empty list yields ClusterTypeUnknown.
func DetectClusterType(descriptors []discovery.Descriptor) *ClusterInfo {
	info := &ClusterInfo{
		Type:          ClusterTypeUnknown,
		APIGroups:     []string{},
		OpenShiftAPIs: []string{},
		ResourceCount: len(descriptors),
	}
	if len(descriptors) == 0 {
		return info
	}

	seen := make(map[string]bool)
	for _, d := range descriptors {
		if d.Group == "" || seen[d.Group] {
			continue
		}
		seen[d.Group] = true
		info.APIGroups = append(info.APIGroups, d.Group)
	}
	sort.Strings(info.APIGroups)
	info.HasOLM = seen[operatorsv1alpha1.GroupName]

	for _, osAPI := range openShiftAPIGroups {
		if slices.Contains(info.APIGroups, osAPI) {
			info.OpenShiftAPIs = append(info.OpenShiftAPIs, osAPI)
		}
	}

	// Need several OpenShift groups to be confident
	if len(info.OpenShiftAPIs) >= constants.MinOpenShiftAPIsThreshold {
		info.Type = ClusterTypeOpenShift
	} else {
		info.Type = ClusterTypeKubernetes
	}
	return info
}

// HasAPIGroup checks if a specific API group is available in the cluster
func (ci *ClusterInfo) HasAPIGroup(apiGroup string) bool {
	return slices.Contains(ci.APIGroups, apiGroup)
}
