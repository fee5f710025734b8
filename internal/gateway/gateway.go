package gateway

import (
	"context"
	"encoding/json"
	"net/http"
)

// FailureKind classifies invocation failures for host-level error mapping.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureBackend
	FailureTransport
)

// Response is the transport's structured reply.
type Response struct {
	Status int
	Body   string
}

// Transport is the invocation surface the gateway depends on, declared here
// so the host package can adapt its own collaborator without an import cycle.
type Transport interface {
	Call(ctx context.Context, identifier string, payload []byte) (Response, error)
}

// Request is the wire payload the backend expects.
type Request struct {
	ClientID         string `json:"client_id"`
	MinimumAliveSecs int    `json:"minimum_alive_secs"`
}

// Result carries the verbatim success body or a classified failure. Status and
// Body are populated for backend failures so the host can expose them.
type Result struct {
	Failure FailureKind
	Status  int
	Body    string
	Err     error
}

// Invoke performs exactly one call against the backend named by identifier.
// A transport error is surfaced untouched; a status at or above 400 is a
// backend rejection carrying the reported status and body; anything else is
// success and the body is passed through without interpretation.
func Invoke(ctx context.Context, transport Transport, identifier string, req Request) Result {
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{Failure: FailureTransport, Err: err}
	}

	resp, err := transport.Call(ctx, identifier, payload)
	if err != nil {
		return Result{Failure: FailureTransport, Err: err}
	}

	if resp.Status >= http.StatusBadRequest {
		return Result{Failure: FailureBackend, Status: resp.Status, Body: resp.Body}
	}

	return Result{Status: resp.Status, Body: resp.Body}
}
