package lambdatransport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/lambda"
	"github.com/aws/aws-sdk-go/service/lambda/lambdaiface"

	"github.com/orbitaldata/tdsclient"
)

// Transport defines a public type used by lambdatransport APIs.
//
// Transport instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Transport struct {
	Lambda lambdaiface.LambdaAPI
}

// New describes the new operation and its observable behavior.
//
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New(api lambdaiface.LambdaAPI) *Transport {
	return &Transport{
		Lambda: api,
	}
}

// statusEnvelope is the API-Gateway-shaped reply the dispenser lambda emits on
// rejection. StatusCode is a pointer so absence is distinguishable from zero.
type statusEnvelope struct {
	StatusCode *int `json:"statusCode"`
}

// Call describes the call operation and its observable behavior.
//
// Call may return an error when input validation, dependency calls, or security checks fail.
// Call does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
//
// The invocation is synchronous (RequestResponse) and blocks until the
// lambda replies or the SDK's own timeout elapses. The payload is returned
// verbatim as the response body; it is never interpreted beyond the status
// envelope probe.
func (t *Transport) Call(ctx context.Context, identifier string, payload []byte) (tdsclient.TransportResponse, error) {
	out, err := t.Lambda.InvokeWithContext(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(identifier),
		InvocationType: aws.String(lambda.InvocationTypeRequestResponse),
		Payload:        payload,
	})
	if err != nil {
		return tdsclient.TransportResponse{}, err
	}

	body := string(out.Payload)

	if out.FunctionError != nil {
		return tdsclient.TransportResponse{}, fmt.Errorf("lambda function error %s: %s", aws.StringValue(out.FunctionError), body)
	}

	status := int(aws.Int64Value(out.StatusCode))
	if status == 0 {
		status = http.StatusOK
	}

	var env statusEnvelope
	if json.Unmarshal(out.Payload, &env) == nil && env.StatusCode != nil {
		status = *env.StatusCode
	}

	return tdsclient.TransportResponse{
		Status: status,
		Body:   body,
	}, nil
}
