// Package lambdatransport implements the tdsclient Transport over synchronous
// AWS Lambda invocation. A FunctionError on the invoke output is a transport
// fault; an API-Gateway-style {"statusCode": N, ...} envelope in the payload
// supplies the backend status, otherwise the invoke status code is used.
package lambdatransport
