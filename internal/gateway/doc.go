// Package gateway serializes a token request, performs the single synchronous
// backend invocation, and classifies the outcome for host-level error mapping.
package gateway
