package discovery

import (
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// coreGroupAlias is accepted as a spelling of the core group.
const coreGroupAlias = "core"

// Descriptor describes one API resource served by a cluster.
type Descriptor struct {
	Group        string   `json:"group,omitempty"`
	Version      string   `json:"version,omitempty"`
	Kind         string   `json:"kind"`
	Name         string   `json:"name"`
	SingularName string   `json:"singularName,omitempty"`
	ShortNames   []string `json:"shortNames,omitempty"`
	Namespaced   bool     `json:"namespaced"`
	Verbs        []string `json:"verbs,omitempty"`
}

// DescriptorsFromLists flattens discovery results into descriptors.
// Subresources such as pods/log are skipped, as are lists whose group
// version cannot be parsed.
func DescriptorsFromLists(lists []*metav1.APIResourceList) []Descriptor {
	var descriptors []Descriptor
	for _, list := range lists {
		if list == nil {
			continue
		}
		gv, err := schema.ParseGroupVersion(list.GroupVersion)
		if err != nil {
			continue
		}
		for _, r := range list.APIResources {
			if strings.Contains(r.Name, "/") {
				continue
			}
			descriptors = append(descriptors, NewDescriptor(gv, r))
		}
	}
	return descriptors
}

// NewDescriptor builds a Descriptor from a single APIResource. Group and
// version set on the resource itself take precedence over gv.
func NewDescriptor(gv schema.GroupVersion, r metav1.APIResource) Descriptor {
	group, version := gv.Group, gv.Version
	if r.Group != "" {
		group = r.Group
	}
	if r.Version != "" {
		version = r.Version
	}
	return Descriptor{
		Group:        group,
		Version:      version,
		Kind:         r.Kind,
		Name:         r.Name,
		SingularName: r.SingularName,
		ShortNames:   append([]string(nil), r.ShortNames...),
		Namespaced:   r.Namespaced,
		Verbs:        append([]string(nil), r.Verbs...),
	}
}

func (d Descriptor) group() string {
	if d.Group == coreGroupAlias {
		return ""
	}
	return d.Group
}

// GroupVersionResource returns the coordinates used by dynamic clients.
func (d Descriptor) GroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{Group: d.group(), Version: d.Version, Resource: d.Name}
}

// GroupVersionKind returns the kind coordinates of the resource.
func (d Descriptor) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{Group: d.group(), Version: d.Version, Kind: d.Kind}
}

// APIVersion returns the apiVersion field value, "v1" for the core group.
func (d Descriptor) APIVersion() string {
	return d.GroupVersionKind().GroupVersion().String()
}

// QualifiedName returns "name.group", or just the name for the core group.
func (d Descriptor) QualifiedName() string {
	if g := d.group(); g != "" {
		return d.Name + "." + g
	}
	return d.Name
}

// SupportsVerb reports whether the resource advertises verb. Descriptors
// without verb information are assumed to support everything.
func (d Descriptor) SupportsVerb(verb string) bool {
	if len(d.Verbs) == 0 {
		return true
	}
	for _, v := range d.Verbs {
		if v == verb {
			return true
		}
	}
	return false
}
