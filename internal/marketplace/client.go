// Package marketplace translates simplified proxy requests into the
// marketplace's REST API shape and normalizes the responses, abstracted
// behind an interface for testability.
package marketplace

import (
	"context"
)

// Param is a single outbound query-string parameter. Parameters are carried
// as an ordered slice because the query string must preserve the caller's
// insertion order.
type Param struct {
	Key   string
	Value string
}

// RequestOptions describes one outbound marketplace call.
type RequestOptions struct {
	Method    string // defaults to GET
	APIKey    string
	APISecret string
	SellerID  string
	Params    []Param
	Body      any // JSON-serialized when non-nil
}

// Forwarder issues a translated request against the marketplace API and
// returns the decoded JSON payload.
type Forwarder interface {
	Forward(ctx context.Context, endpoint string, opts RequestOptions) (any, error)
}
