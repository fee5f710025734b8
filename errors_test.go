package tdsclient

import (
	"errors"
	"strings"
	"testing"
)

func TestDiscoveryErrorMessages(t *testing.T) {
	ambiguous := &DiscoveryError{Kind: ErrDiscoveryAmbiguous, Prefix: "/service/token-dispenser"}
	if !strings.Contains(ambiguous.Error(), "/service/token-dispenser") {
		t.Fatalf("ambiguous message %q does not carry the prefix", ambiguous.Error())
	}
	if !errors.Is(ambiguous, ErrDiscoveryAmbiguous) {
		t.Fatal("ambiguous error must match ErrDiscoveryAmbiguous")
	}

	missing := &DiscoveryError{Kind: ErrDiscoveryNotFound, Prefix: "/svc/x", cause: ErrDirectoryNotFound}
	if !errors.Is(missing, ErrDiscoveryNotFound) {
		t.Fatal("missing error must match ErrDiscoveryNotFound")
	}
	if !errors.Is(missing, ErrDirectoryNotFound) {
		t.Fatal("missing error must expose the directory cause")
	}
}

func TestBackendErrorCarriesStatusAndBody(t *testing.T) {
	err := &BackendError{Status: 422, Body: `{"statusCode": 422, "body": "Found more than one tds arn for: /service/token-dispenser"}`}

	if !errors.Is(err, ErrBackendRejected) {
		t.Fatal("BackendError must match ErrBackendRejected")
	}
	msg := err.Error()
	if !strings.Contains(msg, "422") {
		t.Fatalf("message %q does not carry the status", msg)
	}
	if !strings.Contains(msg, "Found more than one tds arn") {
		t.Fatalf("message %q does not carry the body", msg)
	}
}

func TestTransportErrorWrapsCause(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := &TransportError{cause: cause}

	if !errors.Is(err, ErrTransportFault) {
		t.Fatal("TransportError must match ErrTransportFault")
	}
	if !errors.Is(err, cause) {
		t.Fatal("TransportError must expose the transport cause")
	}
}
