package lambdatransport

import (
	"context"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/lambda"
	"github.com/aws/aws-sdk-go/service/lambda/lambdaiface"
)

type mockLambda struct {
	lambdaiface.LambdaAPI

	out *lambda.InvokeOutput
	err error

	gotInput *lambda.InvokeInput
}

func (m *mockLambda) InvokeWithContext(_ aws.Context, in *lambda.InvokeInput, _ ...request.Option) (*lambda.InvokeOutput, error) {
	m.gotInput = in
	return m.out, m.err
}

func TestCallSynchronousInvoke(t *testing.T) {
	api := &mockLambda{out: &lambda.InvokeOutput{
		StatusCode: aws.Int64(200),
		Payload:    []byte(`{"token":"abc"}`),
	}}
	tr := New(api)

	resp, err := tr.Call(context.Background(), "arn:aws:lambda:us-west-2:111122223333:function:tds", []byte(`{"client_id":"client123"}`))
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("Status = %d", resp.Status)
	}
	if resp.Body != `{"token":"abc"}` {
		t.Fatalf("Body = %q", resp.Body)
	}

	if got := aws.StringValue(api.gotInput.FunctionName); got != "arn:aws:lambda:us-west-2:111122223333:function:tds" {
		t.Fatalf("FunctionName = %q", got)
	}
	if got := aws.StringValue(api.gotInput.InvocationType); got != lambda.InvocationTypeRequestResponse {
		t.Fatalf("InvocationType = %q, want synchronous", got)
	}
	if string(api.gotInput.Payload) != `{"client_id":"client123"}` {
		t.Fatalf("Payload = %q", api.gotInput.Payload)
	}
}

func TestCallStatusEnvelope(t *testing.T) {
	body := `{"statusCode": 422, "body": "Found more than one tds arn for: /service/token-dispenser"}`
	api := &mockLambda{out: &lambda.InvokeOutput{
		StatusCode: aws.Int64(200),
		Payload:    []byte(body),
	}}
	tr := New(api)

	resp, err := tr.Call(context.Background(), "arn:tds", nil)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if resp.Status != 422 {
		t.Fatalf("Status = %d, want envelope status", resp.Status)
	}
	if resp.Body != body {
		t.Fatalf("Body = %q, want full payload preserved", resp.Body)
	}
}

func TestCallNonEnvelopePayloadKeepsInvokeStatus(t *testing.T) {
	api := &mockLambda{out: &lambda.InvokeOutput{
		StatusCode: aws.Int64(200),
		Payload:    []byte(`{"token":"abc","created_at":1700000000}`),
	}}
	tr := New(api)

	resp, err := tr.Call(context.Background(), "arn:tds", nil)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if resp.Status != 200 {
		t.Fatalf("Status = %d", resp.Status)
	}
}

func TestCallFunctionErrorIsFault(t *testing.T) {
	api := &mockLambda{out: &lambda.InvokeOutput{
		StatusCode:    aws.Int64(200),
		FunctionError: aws.String("Unhandled"),
		Payload:       []byte(`{"errorMessage":"boom"}`),
	}}
	tr := New(api)

	_, err := tr.Call(context.Background(), "arn:tds", nil)
	if err == nil {
		t.Fatal("function error must surface as a fault")
	}
	if !strings.Contains(err.Error(), "Unhandled") || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error %q must carry the function error and payload", err.Error())
	}
}

func TestCallSDKErrorPropagates(t *testing.T) {
	api := &mockLambda{err: awserr.New("TooManyRequestsException", "rate exceeded", nil)}
	tr := New(api)

	_, err := tr.Call(context.Background(), "arn:tds", nil)
	if err == nil {
		t.Fatal("SDK error must propagate")
	}
}
