// Package discovery maps user supplied resource tokens such as "po",
// "deploy" or "ingresses.networking.k8s.io" onto API resource descriptors.
//
// Descriptors come from a per-context JSON snapshot on disk when it is fresh
// and from live API discovery otherwise. A failed live discovery falls back to
// a stale snapshot so commands keep working while the API server is degraded.
package discovery
