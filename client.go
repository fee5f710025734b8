package tdsclient

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/orbitaldata/tdsclient/internal/discovery"
	"github.com/orbitaldata/tdsclient/internal/gateway"
)

// Client defines a public type used by tdsclient APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Client struct {
	config    Config
	directory Directory
	transport Transport
	cache     *tokenCache
	audit     *auditDispatcher
	metrics   *Metrics
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.audit != nil {
		c.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	if c == nil || c.audit == nil {
		return 0
	}
	return c.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// GetToken describes the gettoken operation and its observable behavior.
//
// GetToken may return an error when input validation, dependency calls, or security checks fail.
// GetToken does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The call proceeds validate → resolve → invoke, each stage at most once, and
// aborts before any remote interaction on a validation failure. On success the
// backend's body is returned verbatim; the client never interprets token
// internals. Failure modes: ErrInvalidClientID / ErrInvalidTTL / ErrTTLRange
// (validation), DiscoveryError (zero or many backend candidates),
// BackendError (backend reported a non-success status), TransportError
// (the invocation itself failed).
func (c *Client) GetToken(ctx context.Context, clientID string, opts ...TokenOption) (string, error) {
	if c == nil || c.directory == nil || c.transport == nil {
		return "", ErrClientNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	req, err := NewTokenRequest(clientID, opts...)
	if err == nil {
		if ceiling := c.config.Validation.MaxMinimumAlive; ceiling > 0 && req.MinimumAliveSecs > ceiling {
			err = fmt.Errorf("%w: got %d, ceiling %d", ErrTTLRange, req.MinimumAliveSecs, ceiling)
		}
	}
	if err != nil {
		c.metricInc(MetricValidationFailed)
		c.auditEvent(ctx, AuditRequestRejected, requestID, TokenRequest{ClientID: clientID}, err, nil)
		return "", err
	}

	if c.cache != nil {
		if token, ok := c.cache.get(ctx, req); ok {
			c.metricInc(MetricCacheHit)
			c.auditEvent(ctx, AuditTokenCacheHit, requestID, req, nil, nil)
			return token, nil
		}
		c.metricInc(MetricCacheMiss)
	}

	resolved := discovery.Resolve(ctx, req.DiscoveryKey, discovery.Deps{
		Directory:     directoryAdapter{c.directory},
		DefaultPrefix: c.config.Discovery.DefaultPrefix,
		NotFound:      ErrDirectoryNotFound,
	})
	if resolved.Failure != discovery.FailureNone {
		derr := c.mapDiscoveryFailure(resolved)
		c.auditEvent(ctx, AuditDiscoveryFailed, requestID, req, derr, map[string]string{
			"prefix": resolved.Prefix,
		})
		return "", derr
	}

	invoked := gateway.Invoke(ctx, transportAdapter{c.transport}, resolved.Identifier, gateway.Request{
		ClientID:         req.ClientID,
		MinimumAliveSecs: req.MinimumAliveSecs,
	})
	switch invoked.Failure {
	case gateway.FailureBackend:
		c.metricInc(MetricBackendRejected)
		berr := &BackendError{Status: invoked.Status, Body: invoked.Body}
		c.auditEvent(ctx, AuditBackendRejected, requestID, req, berr, map[string]string{
			"status": fmt.Sprintf("%d", invoked.Status),
		})
		return "", berr

	case gateway.FailureTransport:
		c.metricInc(MetricTransportFault)
		terr := &TransportError{cause: invoked.Err}
		c.auditEvent(ctx, AuditTransportFault, requestID, req, terr, nil)
		return "", terr
	}

	if storeErr := c.cache.store(ctx, req, invoked.Body); storeErr != nil {
		c.metricInc(MetricCacheStoreFailed)
		log.Print("tdsclient: token cache store failed")
	}

	c.metricInc(MetricTokenIssued)
	c.metricObserve(MetricAcquireLatency, time.Since(start))
	c.auditEvent(ctx, AuditTokenIssued, requestID, req, nil, nil)

	return invoked.Body, nil
}

func (c *Client) mapDiscoveryFailure(res discovery.Result) error {
	switch res.Failure {
	case discovery.FailureNotFound:
		c.metricInc(MetricDiscoveryNotFound)
		return &DiscoveryError{Kind: ErrDiscoveryNotFound, Prefix: res.Prefix, cause: res.Err}
	case discovery.FailureAmbiguous:
		c.metricInc(MetricDiscoveryAmbiguous)
		return &DiscoveryError{Kind: ErrDiscoveryAmbiguous, Prefix: res.Prefix}
	default:
		c.metricInc(MetricDiscoveryFault)
		if res.Err != nil {
			return fmt.Errorf("directory lookup at %s failed: %w", res.Prefix, res.Err)
		}
		return fmt.Errorf("directory lookup at %s failed", res.Prefix)
	}
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) metricObserve(id MetricID, d time.Duration) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Observe(id, d)
}

func (c *Client) auditEvent(ctx context.Context, eventType, requestID string, req TokenRequest, failure error, metadata map[string]string) {
	if c == nil || c.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp:    time.Now(),
		EventType:    eventType,
		RequestID:    requestID,
		ClientID:     req.ClientID,
		DiscoveryKey: req.DiscoveryKey,
		Success:      failure == nil,
		Metadata:     metadata,
	}
	if failure != nil {
		event.Error = failure.Error()
	}

	c.audit.Emit(ctx, event)
}

// directoryAdapter bridges the public Directory collaborator to the internal
// resolver's interface without an import cycle.
type directoryAdapter struct {
	dir Directory
}

func (a directoryAdapter) GetValue(ctx context.Context, path string) (string, error) {
	return a.dir.GetValue(ctx, path)
}

func (a directoryAdapter) ListUnder(ctx context.Context, prefix string) ([]discovery.Entry, error) {
	entries, err := a.dir.ListUnder(ctx, prefix)
	if err != nil {
		return nil, err
	}

	out := make([]discovery.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, discovery.Entry{Path: e.Path, Value: e.Value})
	}
	return out, nil
}

type transportAdapter struct {
	t Transport
}

func (a transportAdapter) Call(ctx context.Context, identifier string, payload []byte) (gateway.Response, error) {
	resp, err := a.t.Call(ctx, identifier, payload)
	if err != nil {
		return gateway.Response{}, err
	}
	return gateway.Response{Status: resp.Status, Body: resp.Body}, nil
}
