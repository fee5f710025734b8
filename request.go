package tdsclient

import (
	"fmt"
	"regexp"
)

const (
	// DefaultMinimumAliveSecs is an exported constant or variable used by the token dispenser client.
	DefaultMinimumAliveSecs = 300
	// DefaultDiscoveryPrefix is an exported constant or variable used by the token dispenser client.
	DefaultDiscoveryPrefix = "/service/token-dispenser"
)

var clientIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,32}$`)

// TokenRequest defines a public type used by tdsclient APIs.
//
// TokenRequest instances are constructed fresh per call, validated fully before
// any remote interaction, and treated as immutable afterwards.
type TokenRequest struct {
	ClientID         string
	MinimumAliveSecs int
	DiscoveryKey     string
}

// NewTokenRequest describes the newtokenrequest operation and its observable behavior.
//
// NewTokenRequest builds a request carrying DefaultMinimumAliveSecs unless
// overridden through options, applies the options, and validates the result.
// It performs no I/O.
func NewTokenRequest(clientID string, opts ...TokenOption) (TokenRequest, error) {
	req := TokenRequest{
		ClientID:         clientID,
		MinimumAliveSecs: DefaultMinimumAliveSecs,
	}
	for _, opt := range opts {
		opt(&req)
	}
	if err := req.Validate(); err != nil {
		return TokenRequest{}, err
	}
	return req, nil
}

// Validate describes the validate operation and its observable behavior.
//
// Validate is pure and idempotent: re-validating an already-valid request is a
// no-op and mutates nothing.
func (r TokenRequest) Validate() error {
	if !clientIDPattern.MatchString(r.ClientID) {
		return fmt.Errorf("%w: got %q", ErrInvalidClientID, r.ClientID)
	}
	if r.MinimumAliveSecs < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, r.MinimumAliveSecs)
	}
	return nil
}
