// Package discovery resolves a token dispenser backend identifier from a
// directory service, enforcing the one-candidate cardinality rule. The host
// package maps the classified failures to its exported error types.
package discovery
