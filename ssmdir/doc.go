// Package ssmdir implements the tdsclient Directory over AWS Systems Manager
// Parameter Store. Explicit discovery keys map to GetParameter; prefix
// searches map to GetParametersByPath with Recursive set, capped at two
// results because a second result is already proof of ambiguity.
package ssmdir
