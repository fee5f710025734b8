package tdsclient

import (
	"errors"
	"fmt"
)

var (
	// ErrClientNotReady is an exported constant or variable used by the token dispenser client.
	ErrClientNotReady = errors.New("client not initialized")
	// ErrInvalidClientID is an exported constant or variable used by the token dispenser client.
	ErrInvalidClientID = errors.New("client_id must match [a-zA-Z0-9]{3,32}")
	// ErrInvalidTTL is an exported constant or variable used by the token dispenser client.
	ErrInvalidTTL = errors.New("minimum alive seconds must not be negative")
	// ErrTTLRange is an exported constant or variable used by the token dispenser client.
	ErrTTLRange = errors.New("minimum alive seconds above configured ceiling")
	// ErrDirectoryNotFound is an exported constant or variable used by the token dispenser client.
	ErrDirectoryNotFound = errors.New("directory entry not found")
	// ErrDiscoveryNotFound is an exported constant or variable used by the token dispenser client.
	ErrDiscoveryNotFound = errors.New("no token dispenser backend found")
	// ErrDiscoveryAmbiguous is an exported constant or variable used by the token dispenser client.
	ErrDiscoveryAmbiguous = errors.New("multiple token dispenser backends found")
	// ErrBackendRejected is an exported constant or variable used by the token dispenser client.
	ErrBackendRejected = errors.New("token dispenser backend rejected request")
	// ErrTransportFault indicates the invocation transport itself failed,
	// as opposed to the backend rejecting the request.
	ErrTransportFault = errors.New("invocation transport fault")
)

// DiscoveryError reports a failed backend lookup. Kind is one of
// ErrDiscoveryNotFound or ErrDiscoveryAmbiguous; Prefix is the searched
// discovery path so callers know what to disambiguate.
type DiscoveryError struct {
	Kind   error
	Prefix string
	cause  error
}

// Error describes the error operation and its observable behavior.
//
// The returned message always contains the searched prefix so a caller seeing
// the ambiguous case knows to supply an explicit discovery key.
func (e *DiscoveryError) Error() string {
	if errors.Is(e.Kind, ErrDiscoveryAmbiguous) {
		return fmt.Sprintf("found more than one token dispenser backend under %s: supply an explicit discovery key naming a single backend, not a prefix", e.Prefix)
	}
	return fmt.Sprintf("found no token dispenser backend at %s: supply a discovery key naming a single backend", e.Prefix)
}

// Unwrap exposes the discovery sentinel and the underlying directory error
// for errors.Is / errors.As matching.
func (e *DiscoveryError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.cause}
}

// BackendError reports a non-success status returned by the token dispenser
// backend. Status and Body are carried explicitly so callers can branch on the
// status programmatically instead of parsing the message.
type BackendError struct {
	Status int
	Body   string
}

// Error describes the error operation and its observable behavior.
func (e *BackendError) Error() string {
	return fmt.Sprintf("token dispenser backend rejected request: status %d: %s", e.Status, e.Body)
}

// Unwrap exposes ErrBackendRejected for errors.Is matching.
func (e *BackendError) Unwrap() error {
	return ErrBackendRejected
}

// TransportError reports a failure in the invocation transport before any
// backend status was produced. The wrapped cause is the transport's own error.
type TransportError struct {
	cause error
}

// Error describes the error operation and its observable behavior.
func (e *TransportError) Error() string {
	return fmt.Sprintf("invocation transport fault: %v", e.cause)
}

// Unwrap exposes ErrTransportFault and the transport cause for errors.Is
// and errors.As matching.
func (e *TransportError) Unwrap() []error {
	return []error{ErrTransportFault, e.cause}
}
