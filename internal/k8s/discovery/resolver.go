package discovery

import (
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/util/sets"
)

type targetMode int

const (
	targetAll targetMode = iota
	targetAllOf
	targetAnyOf
)

// TargetSpec selects which descriptors a resolution returns.
type TargetSpec struct {
	mode   targetMode
	tokens []string
}

// All selects every known resource.
func All() TargetSpec {
	return TargetSpec{mode: targetAll}
}

// AllOf requires every token to match a resource.
func AllOf(tokens ...string) TargetSpec {
	return TargetSpec{mode: targetAllOf, tokens: append([]string(nil), tokens...)}
}

// AnyOf keeps whichever tokens match and fails only if none do.
func AnyOf(tokens ...string) TargetSpec {
	return TargetSpec{mode: targetAnyOf, tokens: append([]string(nil), tokens...)}
}

// Tokens returns the requested tokens, empty for All.
func (s TargetSpec) Tokens() []string {
	return append([]string(nil), s.tokens...)
}

// IsAnyOf reports whether unmatched tokens are tolerated.
func (s TargetSpec) IsAnyOf() bool {
	return s.mode == targetAnyOf
}

func (s TargetSpec) String() string {
	switch s.mode {
	case targetAllOf:
		return fmt.Sprintf("all of [%s]", strings.Join(s.tokens, ", "))
	case targetAnyOf:
		return fmt.Sprintf("any of [%s]", strings.Join(s.tokens, ", "))
	default:
		return "all resources"
	}
}

// Matches reports whether token names d by its plural, singular, a short
// name, or "plural.group" for non-core groups. Matching is exact.
func Matches(token string, d Descriptor) bool {
	if token == d.Name || (d.SingularName != "" && token == d.SingularName) {
		return true
	}
	for _, short := range d.ShortNames {
		if token == short {
			return true
		}
	}
	return d.Group != "" && token == d.Name+"."+d.Group
}

// ResolveOne returns the first descriptor in list order matching token.
func ResolveOne(token string, descriptors []Descriptor) (Descriptor, bool) {
	for _, d := range descriptors {
		if Matches(token, d) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Resolve applies spec to descriptors.
//
// AllOf returns one descriptor per distinct plural name in token order and
// fails with *UnresolvedResourcesError listing every unmatched token.
// AnyOf drops unmatched tokens, de-duplicates by group, version and name,
// and fails with *NoResourcesResolvedError only when nothing matched.
func Resolve(spec TargetSpec, descriptors []Descriptor) ([]Descriptor, error) {
	switch spec.mode {
	case targetAllOf:
		return resolveAllOf(spec.tokens, descriptors)
	case targetAnyOf:
		return resolveAnyOf(spec.tokens, descriptors)
	default:
		return descriptors, nil
	}
}

func resolveAllOf(tokens []string, descriptors []Descriptor) ([]Descriptor, error) {
	resolved := make([]Descriptor, 0, len(tokens))
	seen := sets.New[string]()
	unresolved := sets.New[string]()

	for _, token := range tokens {
		d, ok := ResolveOne(token, descriptors)
		if !ok {
			unresolved.Insert(token)
			continue
		}
		if seen.Has(d.Name) {
			continue
		}
		seen.Insert(d.Name)
		resolved = append(resolved, d)
	}

	if unresolved.Len() > 0 {
		return nil, &UnresolvedResourcesError{Tokens: sets.List(unresolved)}
	}
	return resolved, nil
}

func resolveAnyOf(tokens []string, descriptors []Descriptor) ([]Descriptor, error) {
	resolved := make([]Descriptor, 0, len(tokens))
	seen := sets.New[schema.GroupVersionResource]()

	for _, token := range tokens {
		d, ok := ResolveOne(token, descriptors)
		if !ok {
			continue
		}
		key := d.GroupVersionResource()
		if seen.Has(key) {
			continue
		}
		seen.Insert(key)
		resolved = append(resolved, d)
	}

	if len(resolved) == 0 && len(tokens) > 0 {
		return nil, &NoResourcesResolvedError{Tokens: append([]string(nil), tokens...)}
	}
	return resolved, nil
}
