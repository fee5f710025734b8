package ssmdir

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"

	"github.com/orbitaldata/tdsclient"
)

// listLimit caps prefix searches. Two entries already violate the
// one-candidate rule; there is nothing to learn from a third.
const listLimit = 2

// Config defines a public type used by ssmdir APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// WithDecryption asks Parameter Store to decrypt SecureString values on
	// explicit-key lookups.
	WithDecryption bool
}

// Directory defines a public type used by ssmdir APIs.
//
// Directory instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Directory struct {
	SSM ssmiface.SSMAPI
	cfg Config
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(api ssmiface.SSMAPI, cfg Config) *Directory {
	return &Directory{
		SSM: api,
		cfg: cfg,
	}
}

// GetValue describes the getvalue operation and its observable behavior.
//
// GetValue may return an error when input validation, dependency calls, or security checks fail.
// GetValue does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (d *Directory) GetValue(ctx context.Context, path string) (string, error) {
	out, err := d.SSM.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(path),
		WithDecryption: aws.Bool(d.cfg.WithDecryption),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == ssm.ErrCodeParameterNotFound {
			return "", fmt.Errorf("%w: %s", tdsclient.ErrDirectoryNotFound, path)
		}
		return "", err
	}

	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("%w: %s", tdsclient.ErrDirectoryNotFound, path)
	}
	return aws.StringValue(out.Parameter.Value), nil
}

// ListUnder describes the listunder operation and its observable behavior.
//
// ListUnder may return an error when input validation, dependency calls, or security checks fail.
// ListUnder does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (d *Directory) ListUnder(ctx context.Context, prefix string) ([]tdsclient.DirectoryEntry, error) {
	out, err := d.SSM.GetParametersByPathWithContext(ctx, &ssm.GetParametersByPathInput{
		Path:       aws.String(prefix),
		Recursive:  aws.Bool(true),
		MaxResults: aws.Int64(listLimit),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]tdsclient.DirectoryEntry, 0, len(out.Parameters))
	for _, p := range out.Parameters {
		entries = append(entries, tdsclient.DirectoryEntry{
			Path:  aws.StringValue(p.Name),
			Value: aws.StringValue(p.Value),
		})
	}
	return entries, nil
}
