package tdsclient

import "context"

// DirectoryEntry defines a public type used by tdsclient APIs.
//
// DirectoryEntry instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DirectoryEntry struct {
	Path  string
	Value string
}

// Directory is the read-only key-value directory the client resolves backend
// identifiers from. Implementations must return ErrDirectoryNotFound (possibly
// wrapped) from GetValue when no entry exists at the path, and must be safe
// for concurrent use. The client never writes to the directory.
//
// ssmdir provides an AWS SSM Parameter Store implementation.
type Directory interface {
	GetValue(ctx context.Context, path string) (string, error)
	ListUnder(ctx context.Context, prefix string) ([]DirectoryEntry, error)
}

// TransportResponse defines a public type used by tdsclient APIs.
//
// TransportResponse instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TransportResponse struct {
	Status int
	Body   string
}

// Transport is the invocation mechanism that calls the backend named by a
// resolved identifier. A returned error is a transport-level fault; a backend
// rejection is expressed through a non-success Status in the response.
// Implementations must be safe for concurrent use and own their own timeout
// behavior; the client imposes none beyond the caller's context.
//
// lambdatransport provides an AWS Lambda implementation.
type Transport interface {
	Call(ctx context.Context, identifier string, payload []byte) (TransportResponse, error)
}
