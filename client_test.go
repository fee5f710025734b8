package tdsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

type fakeDirectory struct {
	values  map[string]string
	entries []DirectoryEntry
	getErr  error
	listErr error

	gotPath   string
	gotPrefix string
}

func (f *fakeDirectory) GetValue(_ context.Context, path string) (string, error) {
	f.gotPath = path
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrDirectoryNotFound, path)
	}
	return v, nil
}

func (f *fakeDirectory) ListUnder(_ context.Context, prefix string) ([]DirectoryEntry, error) {
	f.gotPrefix = prefix
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries, nil
}

type fakeTransport struct {
	status int
	body   string
	err    error

	gotIdentifier string
	gotPayload    []byte
	calls         int
}

func (f *fakeTransport) Call(_ context.Context, identifier string, payload []byte) (TransportResponse, error) {
	f.calls++
	f.gotIdentifier = identifier
	f.gotPayload = payload
	if f.err != nil {
		return TransportResponse{}, f.err
	}
	return TransportResponse{Status: f.status, Body: f.body}, nil
}

func newTestClient(t *testing.T, dir Directory, tr Transport, mutate func(*Builder)) *Client {
	t.Helper()

	b := New().WithDirectory(dir).WithTransport(tr)
	if mutate != nil {
		mutate(b)
	}

	client, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(client.Close)

	return client
}

func TestGetTokenSuccessPassthrough(t *testing.T) {
	dir := &fakeDirectory{
		entries: []DirectoryEntry{{Path: "/service/token-dispenser/prod", Value: "arn:aws:lambda:us-west-2:111122223333:function:tds"}},
	}
	tr := &fakeTransport{status: 200, body: `{"token":"abc","created_at":1700000000,"expired_at":1700003600}`}
	client := newTestClient(t, dir, tr, nil)

	token, err := client.GetToken(context.Background(), "client123")
	if err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if token != tr.body {
		t.Fatalf("token = %q, want backend body unmodified", token)
	}
	if tr.gotIdentifier != "arn:aws:lambda:us-west-2:111122223333:function:tds" {
		t.Fatalf("invoked identifier = %q", tr.gotIdentifier)
	}
	if dir.gotPrefix != DefaultDiscoveryPrefix {
		t.Fatalf("searched prefix = %q, want %q", dir.gotPrefix, DefaultDiscoveryPrefix)
	}
	if got := client.MetricsSnapshot().Counters[MetricTokenIssued]; got != 1 {
		t.Fatalf("MetricTokenIssued = %d, want 1", got)
	}
}

func TestGetTokenPayloadCarriesDefaults(t *testing.T) {
	dir := &fakeDirectory{entries: []DirectoryEntry{{Path: "/service/token-dispenser/a", Value: "backend-a"}}}
	tr := &fakeTransport{status: 200, body: "ok"}
	client := newTestClient(t, dir, tr, nil)

	if _, err := client.GetToken(context.Background(), "client123"); err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}

	var payload struct {
		ClientID         string `json:"client_id"`
		MinimumAliveSecs int    `json:"minimum_alive_secs"`
	}
	if err := json.Unmarshal(tr.gotPayload, &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.ClientID != "client123" {
		t.Fatalf("payload client_id = %q", payload.ClientID)
	}
	if payload.MinimumAliveSecs != DefaultMinimumAliveSecs {
		t.Fatalf("payload minimum_alive_secs = %d, want %d", payload.MinimumAliveSecs, DefaultMinimumAliveSecs)
	}
}

func TestGetTokenExplicitDiscoveryKey(t *testing.T) {
	dir := &fakeDirectory{values: map[string]string{"/service/token-dispenser/prod": "backend-prod"}}
	tr := &fakeTransport{status: 200, body: "ok"}
	client := newTestClient(t, dir, tr, nil)

	if _, err := client.GetToken(context.Background(), "client123", WithDiscoveryKey("/service/token-dispenser/prod")); err != nil {
		t.Fatalf("GetToken failed: %v", err)
	}
	if dir.gotPath != "/service/token-dispenser/prod" {
		t.Fatalf("fetched path = %q", dir.gotPath)
	}
	if tr.gotIdentifier != "backend-prod" {
		t.Fatalf("invoked identifier = %q", tr.gotIdentifier)
	}
}

func TestGetTokenExplicitKeyMissing(t *testing.T) {
	dir := &fakeDirectory{values: map[string]string{}}
	tr := &fakeTransport{status: 200, body: "ok"}
	client := newTestClient(t, dir, tr, nil)

	_, err := client.GetToken(context.Background(), "client123", WithDiscoveryKey("/service/token-dispenser/missing"))
	if !errors.Is(err, ErrDiscoveryNotFound) {
		t.Fatalf("error = %v, want %v", err, ErrDiscoveryNotFound)
	}
	if !strings.Contains(err.Error(), "/service/token-dispenser/missing") {
		t.Fatalf("error message %q does not name the searched path", err.Error())
	}
	if tr.calls != 0 {
		t.Fatal("transport must not be invoked after a discovery failure")
	}
}

func TestGetTokenDiscoveryCardinality(t *testing.T) {
	tests := []struct {
		name       string
		entries    []DirectoryEntry
		wantErr    error
		wantMetric MetricID
	}{
		{
			name:       "zero entries",
			entries:    nil,
			wantErr:    ErrDiscoveryNotFound,
			wantMetric: MetricDiscoveryNotFound,
		},
		{
			name: "two entries",
			entries: []DirectoryEntry{
				{Path: "/service/token-dispenser/a", Value: "backend-a"},
				{Path: "/service/token-dispenser/b", Value: "backend-b"},
			},
			wantErr:    ErrDiscoveryAmbiguous,
			wantMetric: MetricDiscoveryAmbiguous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := &fakeDirectory{entries: tt.entries}
			tr := &fakeTransport{status: 200, body: "ok"}
			client := newTestClient(t, dir, tr, nil)

			_, err := client.GetToken(context.Background(), "client123")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), DefaultDiscoveryPrefix) {
				t.Fatalf("error message %q does not contain searched prefix %q", err.Error(), DefaultDiscoveryPrefix)
			}
			if tr.calls != 0 {
				t.Fatal("transport must not be invoked after a discovery failure")
			}
			if got := client.MetricsSnapshot().Counters[tt.wantMetric]; got != 1 {
				t.Fatalf("metric %d = %d, want 1", tt.wantMetric, got)
			}
		})
	}
}

func TestGetTokenBackendRejection(t *testing.T) {
	dir := &fakeDirectory{entries: []DirectoryEntry{{Path: "/service/token-dispenser/a", Value: "backend-a"}}}
	body := `{"statusCode": 422, "body": "Found more than one tds arn for: /service/token-dispenser"}`
	tr := &fakeTransport{status: 422, body: body}
	client := newTestClient(t, dir, tr, nil)

	_, err := client.GetToken(context.Background(), "client123")
	if !errors.Is(err, ErrBackendRejected) {
		t.Fatalf("error = %v, want %v", err, ErrBackendRejected)
	}

	var berr *BackendError
	if !errors.As(err, &berr) {
		t.Fatalf("error %T does not expose BackendError", err)
	}
	if berr.Status != 422 {
		t.Fatalf("Status = %d, want 422", berr.Status)
	}
	if berr.Body != body {
		t.Fatalf("Body = %q, want backend body", berr.Body)
	}
	if !strings.Contains(err.Error(), "422") || !strings.Contains(err.Error(), body) {
		t.Fatalf("error message %q must include status and body", err.Error())
	}
}

func TestGetTokenTransportFault(t *testing.T) {
	dir := &fakeDirectory{entries: []DirectoryEntry{{Path: "/service/token-dispenser/a", Value: "backend-a"}}}
	cause := errors.New("connection reset")
	tr := &fakeTransport{err: cause}
	client := newTestClient(t, dir, tr, nil)

	_, err := client.GetToken(context.Background(), "client123")
	if !errors.Is(err, ErrTransportFault) {
		t.Fatalf("error = %v, want %v", err, ErrTransportFault)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("error %v does not wrap the transport cause", err)
	}
	if got := client.MetricsSnapshot().Counters[MetricTransportFault]; got != 1 {
		t.Fatalf("MetricTransportFault = %d, want 1", got)
	}
}

func TestGetTokenValidationNeverReachesNetwork(t *testing.T) {
	dir := &fakeDirectory{entries: []DirectoryEntry{{Path: "/service/token-dispenser/a", Value: "backend-a"}}}
	tr := &fakeTransport{status: 200, body: "ok"}
	client := newTestClient(t, dir, tr, nil)

	_, err := client.GetToken(context.Background(), "bad id!")
	if !errors.Is(err, ErrInvalidClientID) {
		t.Fatalf("error = %v, want %v", err, ErrInvalidClientID)
	}
	if dir.gotPrefix != "" || dir.gotPath != "" {
		t.Fatal("directory must not be consulted for an invalid request")
	}
	if tr.calls != 0 {
		t.Fatal("transport must not be invoked for an invalid request")
	}
}

func TestGetTokenTTLCeiling(t *testing.T) {
	dir := &fakeDirectory{entries: []DirectoryEntry{{Path: "/service/token-dispenser/a", Value: "backend-a"}}}
	tr := &fakeTransport{status: 200, body: "ok"}
	client := newTestClient(t, dir, tr, func(b *Builder) {
		cfg := defaultConfig()
		cfg.Validation.MaxMinimumAlive = 3300
		b.WithConfig(cfg)
	})

	if _, err := client.GetToken(context.Background(), "client123", WithMinimumAlive(3300)); err != nil {
		t.Fatalf("ceiling value rejected: %v", err)
	}

	_, err := client.GetToken(context.Background(), "client123", WithMinimumAlive(3301))
	if !errors.Is(err, ErrTTLRange) {
		t.Fatalf("error = %v, want %v", err, ErrTTLRange)
	}
}

func TestGetTokenNilClient(t *testing.T) {
	var client *Client
	_, err := client.GetToken(context.Background(), "client123")
	if !errors.Is(err, ErrClientNotReady) {
		t.Fatalf("error = %v, want %v", err, ErrClientNotReady)
	}
}

func TestBuilderRequirements(t *testing.T) {
	dir := &fakeDirectory{}
	tr := &fakeTransport{}

	if _, err := New().WithTransport(tr).Build(); err == nil {
		t.Fatal("Build without directory must fail")
	}
	if _, err := New().WithDirectory(dir).Build(); err == nil {
		t.Fatal("Build without transport must fail")
	}

	cfg := defaultConfig()
	cfg.Cache.Enabled = true
	if _, err := New().WithConfig(cfg).WithDirectory(dir).WithTransport(tr).Build(); err == nil {
		t.Fatal("Build with cache enabled and no redis must fail")
	}

	b := New().WithDirectory(dir).WithTransport(tr)
	if _, err := b.Build(); err != nil {
		t.Fatalf("first Build failed: %v", err)
	}
	if _, err := b.Build(); err == nil {
		t.Fatal("second Build on the same builder must fail")
	}
}
