// Package metrics provides Prometheus metrics for kubex.
//
// kubex is a short-lived CLI, so nothing is served over HTTP. Metrics are
// collected in a private registry and can be dumped in the node_exporter
// textfile format with WriteTextfile at the end of a command run.
package metrics
