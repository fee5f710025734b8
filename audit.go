package tdsclient

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

const (
	// AuditTokenIssued is an exported constant or variable used by the token dispenser client.
	AuditTokenIssued = "token.issued"
	// AuditTokenCacheHit is an exported constant or variable used by the token dispenser client.
	AuditTokenCacheHit = "token.cache_hit"
	// AuditRequestRejected is an exported constant or variable used by the token dispenser client.
	AuditRequestRejected = "request.rejected"
	// AuditDiscoveryFailed is an exported constant or variable used by the token dispenser client.
	AuditDiscoveryFailed = "discovery.failed"
	// AuditBackendRejected is an exported constant or variable used by the token dispenser client.
	AuditBackendRejected = "backend.rejected"
	// AuditTransportFault is an exported constant or variable used by the token dispenser client.
	AuditTransportFault = "transport.fault"
)

type AuditEvent struct {
	Timestamp    time.Time         `json:"timestamp"`
	EventType    string            `json:"event_type"`
	RequestID    string            `json:"request_id,omitempty"`
	ClientID     string            `json:"client_id,omitempty"`
	DiscoveryKey string            `json:"discovery_key,omitempty"`
	Success      bool              `json:"success"`
	Error        string            `json:"error,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

type NoOpSink struct{}

func (NoOpSink) Emit(context.Context, AuditEvent) {}

type ChannelSink struct {
	events chan AuditEvent
}

func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{writer: w}
}

func (s *JSONWriterSink) Emit(_ context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}

	line, err := json.Marshal(event)
	if err != nil {
		return
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.writer.Write(line)
}
