// Package retry runs remote operations under a bounded exponential backoff.
//
// A Policy is an immutable value built with NewPolicy and functional options.
// Do invokes an operation until it succeeds, the attempt limit is reached,
// or the policy's Classifier reports the failure as fatal. The final error is
// returned unwrapped so callers can inspect Kubernetes status errors directly.
package retry
