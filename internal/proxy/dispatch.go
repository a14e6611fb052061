package proxy

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sellerbridge/marketplace-proxy/internal/marketplace"
)

// Params carries the inbound request parameters of one operation: query
// values for GET operations, the decoded JSON body for POST/PUT.
type Params map[string]any

// Str returns the parameter as a string. JSON numbers are formatted without
// an exponent so numeric seller and order ids interpolate cleanly.
func (p Params) Str(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// StrDefault returns the parameter as a string, or def when absent or empty.
func (p Params) StrDefault(key, def string) string {
	if s := p.Str(key); s != "" {
		return s
	}
	return def
}

// Dispatcher executes operations from the table against a Forwarder. It is
// stateless and shared by both deployment variants.
type Dispatcher struct {
	forwarder marketplace.Forwarder
}

// NewDispatcher creates a Dispatcher backed by the given forwarder.
func NewDispatcher(f marketplace.Forwarder) *Dispatcher {
	return &Dispatcher{forwarder: f}
}

// Execute validates the parameters against the operation's contract,
// forwards the translated request, and wraps the payload in the success
// envelope. Validation failures never reach the forwarder.
func (d *Dispatcher) Execute(
	ctx context.Context,
	op *Operation,
	params Params,
) (map[string]any, error) {
	if missing := op.missingFields(params); len(missing) > 0 {
		return nil, &marketplace.ValidationError{Fields: missing}
	}

	var query []marketplace.Param
	if op.Paged {
		query = append(query,
			marketplace.Param{Key: "page", Value: params.StrDefault("page", DefaultPage)},
			marketplace.Param{Key: "size", Value: params.StrDefault("size", DefaultSize)},
		)
	}
	for _, key := range op.QueryKeys {
		if v := params.Str(key); v != "" {
			query = append(query, marketplace.Param{Key: key, Value: v})
		}
	}

	var body any
	if op.Body != nil {
		body = op.Body(params)
	}

	payload, err := d.forwarder.Forward(ctx, op.resolveEndpoint(params), marketplace.RequestOptions{
		Method:    op.Outbound,
		APIKey:    params.Str("apiKey"),
		APISecret: params.Str("apiSecret"),
		SellerID:  params.Str("sellerId"),
		Params:    query,
		Body:      body,
	})
	if err != nil {
		return nil, err
	}

	if op.Transform != nil {
		payload = op.Transform(payload)
	}

	return map[string]any{"success": true, op.ResultField: payload}, nil
}

// missingFields reports required fields that are absent. Credentials must be
// non-empty strings; other fields only need to be present and non-empty.
func (op *Operation) missingFields(params Params) []string {
	var missing []string
	for _, field := range op.Required {
		if fieldMissing(field, params) {
			missing = append(missing, field)
		}
	}
	return missing
}

func fieldMissing(field string, params Params) bool {
	v, ok := params[field]
	if !ok || v == nil {
		return true
	}

	switch field {
	case "apiKey", "apiSecret":
		// Credentials must be strings; anything else is rejected up front.
		s, ok := v.(string)
		return !ok || strings.TrimSpace(s) == ""
	default:
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s) == ""
		}
		return false
	}
}

// StatusFor maps an operation error to the HTTP status returned to the
// caller. Upstream failures intentionally map to 500: the marketplace status
// code is carried in the message, not the response status.
func StatusFor(err error) int {
	var validationErr *marketplace.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}

	var encodingErr *marketplace.EncodingError
	if errors.As(err, &encodingErr) {
		return http.StatusInternalServerError
	}

	var upstreamErr *marketplace.UpstreamError
	if errors.As(err, &upstreamErr) {
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// Unexpected reports whether err falls outside the declared error kinds.
// Unexpected errors may carry extra detail in development environments.
func Unexpected(err error) bool {
	var validationErr *marketplace.ValidationError
	var encodingErr *marketplace.EncodingError
	var upstreamErr *marketplace.UpstreamError
	return !errors.As(err, &validationErr) &&
		!errors.As(err, &encodingErr) &&
		!errors.As(err, &upstreamErr)
}

// HealthPayload is the response of the local health operation. It performs
// no outbound call and succeeds regardless of credentials.
func HealthPayload() map[string]any {
	return map[string]any{
		"success":   true,
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
}
