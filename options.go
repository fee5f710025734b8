package tdsclient

// TokenOption defines a public type used by tdsclient APIs.
//
// TokenOption values adjust a single TokenRequest before validation; they are
// applied in order and never perform I/O.
type TokenOption func(*TokenRequest)

// WithMinimumAlive sets the minimum remaining validity, in seconds, the caller
// requires before the backend must mint a fresh token instead of reusing a
// cached one. Zero is valid and means any unexpired token is acceptable.
// Unset, the request carries DefaultMinimumAliveSecs.
func WithMinimumAlive(secs int) TokenOption {
	return func(r *TokenRequest) {
		r.MinimumAliveSecs = secs
	}
}

// WithDiscoveryKey sets an explicit directory path naming a single backend,
// bypassing the default-prefix search. Use this when more than one token
// dispenser deployment shares the directory namespace.
func WithDiscoveryKey(key string) TokenOption {
	return func(r *TokenRequest) {
		r.DiscoveryKey = key
	}
}
