package discovery

import (
	"context"
	"errors"
)

// FailureKind classifies resolution failures for host-level error mapping.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureNotFound
	FailureAmbiguous
	FailureFault
)

// Entry is one directory record under a searched prefix.
type Entry struct {
	Path  string
	Value string
}

// Directory is the read-only lookup surface the resolver depends on. It is
// declared here so the host package can adapt its own collaborator without an
// import cycle.
type Directory interface {
	GetValue(ctx context.Context, path string) (string, error)
	ListUnder(ctx context.Context, prefix string) ([]Entry, error)
}

// Deps captures the resolver's collaborators and error translation hooks.
type Deps struct {
	Directory     Directory
	DefaultPrefix string
	// NotFound is the directory's missing-entry sentinel, matched with
	// errors.Is so the host controls error identity.
	NotFound error
}

// Result carries either the resolved identifier or a classified failure with
// the searched prefix, so the host can report what to disambiguate.
type Result struct {
	Failure    FailureKind
	Identifier string
	Prefix     string
	Err        error
}

// Resolve selects exactly one backend identifier. An explicit key is trusted
// as a direct pointer and fetched as-is; without one, the default prefix is
// searched and anything other than a single candidate is a failure. The
// resolver never picks among multiple candidates.
func Resolve(ctx context.Context, key string, deps Deps) Result {
	if key != "" {
		value, err := deps.Directory.GetValue(ctx, key)
		if err != nil {
			if deps.NotFound != nil && errors.Is(err, deps.NotFound) {
				return Result{Failure: FailureNotFound, Prefix: key, Err: err}
			}
			return Result{Failure: FailureFault, Prefix: key, Err: err}
		}
		return Result{Identifier: value, Prefix: key}
	}

	entries, err := deps.Directory.ListUnder(ctx, deps.DefaultPrefix)
	if err != nil {
		return Result{Failure: FailureFault, Prefix: deps.DefaultPrefix, Err: err}
	}

	switch len(entries) {
	case 0:
		return Result{Failure: FailureNotFound, Prefix: deps.DefaultPrefix}
	case 1:
		return Result{Identifier: entries[0].Value, Prefix: deps.DefaultPrefix}
	default:
		return Result{Failure: FailureAmbiguous, Prefix: deps.DefaultPrefix}
	}
}
