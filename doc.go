// Package tdsclient acquires short-lived authentication tokens from a remote
// Token Dispenser Service (TDS), discovering the correct backend through a
// directory lookup and invoking it with a validated request.
//
// The package is designed for concurrent callers: Client methods are safe to call
// from multiple goroutines after initialization through [Builder.Build]. A call
// carries no state across invocations; the only optional state is the opt-in
// Redis token cache.
//
// # Architecture boundaries
//
// tdsclient is the public surface. It exposes [Client], [Builder], [Config],
// the [Directory] and [Transport] collaborator interfaces, and value types
// (TokenRequest, MetricsSnapshot, AuditEvent). All coordination logic, meaning
// discovery cardinality enforcement and backend invocation mapping, lives
// under internal/ and is never exported. Concrete AWS-backed collaborators
// live in the ssmdir and lambdatransport subpackages; the root package never
// imports an AWS SDK.
//
// # What this package must NOT do
//
//   - Parse the token payload. Expiry and session fields are the backend's
//     contract with the caller, not ours; the body is returned verbatim.
//   - Guess among multiple discovered backends. Two or more candidates under
//     the discovery prefix is an error the caller resolves with an explicit key.
//   - Retry. Transport faults and backend rejections are surfaced once, with
//     enough context for the caller to decide.
//
// # Call contract
//
// GetToken performs at most one directory read and one backend invocation per
// call. Validation failures never reach the network. No partial state is left
// behind on failure.
package tdsclient
