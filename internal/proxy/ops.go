// Package proxy maps inbound proxy operations onto marketplace endpoint
// shapes through a declarative operation table and one generic dispatcher.
package proxy

import (
	"net/http"
	"net/url"
	"strings"
)

// Paging defaults applied to paged operations when the caller does not
// specify them. They appear verbatim in the outbound query string.
const (
	DefaultPage = "0"
	DefaultSize = "50"
)

// Operation declares one supported proxy operation: the inbound contract
// (method, required fields), the marketplace endpoint template it maps to,
// and how the upstream payload is named in the success envelope.
type Operation struct {
	Name     string
	Method   string // inbound HTTP method
	Outbound string // outbound HTTP method against the marketplace
	Required []string
	Endpoint string // template with {sellerId} and {orderId} placeholders

	// ResultField names the payload in the success envelope. Field names
	// are part of the public contract; do not rename.
	ResultField string

	Paged     bool
	QueryKeys []string // params forwarded on the query string when present

	Body      func(p Params) any  // builds the outbound body; nil sends none
	Transform func(payload any) any // reshapes the upstream payload
}

// Operations is the full operation table. The health operation is not listed
// here: it performs no outbound call and is handled by each deployment
// variant directly.
var Operations = []Operation{
	{
		Name:        "test-connection",
		Method:      http.MethodPost,
		Outbound:    http.MethodGet,
		Required:    []string{"apiKey", "apiSecret"},
		Endpoint:    "/suppliers",
		ResultField: "sellerInfo",
		Transform:   firstElement,
	},
	{
		Name:        "seller-info",
		Method:      http.MethodGet,
		Outbound:    http.MethodGet,
		Required:    []string{"apiKey", "apiSecret"},
		Endpoint:    "/suppliers",
		ResultField: "sellerInfo",
	},
	{
		Name:        "products",
		Method:      http.MethodGet,
		Outbound:    http.MethodGet,
		Required:    []string{"apiKey", "apiSecret", "sellerId"},
		Endpoint:    "/suppliers/{sellerId}/products",
		ResultField: "products",
		Paged:       true,
	},
	{
		Name:        "orders",
		Method:      http.MethodGet,
		Outbound:    http.MethodGet,
		Required:    []string{"apiKey", "apiSecret", "sellerId"},
		Endpoint:    "/suppliers/{sellerId}/orders",
		ResultField: "orders",
		Paged:       true,
		QueryKeys:   []string{"status"},
	},
	{
		Name:        "update-stock",
		Method:      http.MethodPost,
		Outbound:    http.MethodPost,
		Required:    []string{"apiKey", "apiSecret", "sellerId", "items"},
		Endpoint:    "/suppliers/{sellerId}/products/stock-updates",
		ResultField: "result",
		Body:        itemsBody,
	},
	{
		Name:        "update-price",
		Method:      http.MethodPost,
		Outbound:    http.MethodPost,
		Required:    []string{"apiKey", "apiSecret", "sellerId", "items"},
		Endpoint:    "/suppliers/{sellerId}/products/price-updates",
		ResultField: "result",
		Body:        itemsBody,
	},
	{
		Name:        "categories",
		Method:      http.MethodGet,
		Outbound:    http.MethodGet,
		Required:    []string{"apiKey", "apiSecret"},
		Endpoint:    "/product-categories",
		ResultField: "categories",
	},
	{
		Name:        "shipment-providers",
		Method:      http.MethodGet,
		Outbound:    http.MethodGet,
		Required:    []string{"apiKey", "apiSecret", "sellerId"},
		Endpoint:    "/suppliers/{sellerId}/shipment-providers",
		ResultField: "providers",
	},
	{
		Name:        "update-order-status",
		Method:      http.MethodPut,
		Outbound:    http.MethodPut,
		Required:    []string{"apiKey", "apiSecret", "sellerId", "orderId", "status"},
		Endpoint:    "/suppliers/{sellerId}/orders/{orderId}/status",
		ResultField: "result",
		Body: func(p Params) any {
			return map[string]any{"status": p["status"]}
		},
	},
	{
		Name:        "create-shipment",
		Method:      http.MethodPost,
		Outbound:    http.MethodPost,
		Required:    []string{"apiKey", "apiSecret", "sellerId", "orderId", "shipmentData"},
		Endpoint:    "/suppliers/{sellerId}/orders/{orderId}/shipment",
		ResultField: "result",
		Body: func(p Params) any {
			return p["shipmentData"]
		},
	},
	{
		Name:        "create-product",
		Method:      http.MethodPost,
		Outbound:    http.MethodPost,
		Required:    []string{"apiKey", "apiSecret", "sellerId", "products"},
		Endpoint:    "/suppliers/{sellerId}/v2/products",
		ResultField: "batchId",
		Body: func(p Params) any {
			return map[string]any{"items": p["products"]}
		},
		Transform: batchID,
	},
	{
		Name:        "check-batch-status",
		Method:      http.MethodGet,
		Outbound:    http.MethodGet,
		Required:    []string{"apiKey", "apiSecret", "sellerId", "batchId"},
		Endpoint:    "/suppliers/{sellerId}/check-status",
		ResultField: "result",
		QueryKeys:   []string{"batchId"},
	},
}

// Find returns the operation with the given name.
func Find(name string) (*Operation, bool) {
	for i := range Operations {
		if Operations[i].Name == name {
			return &Operations[i], true
		}
	}
	return nil, false
}

// resolveEndpoint interpolates path placeholders with escaped values.
func (op *Operation) resolveEndpoint(p Params) string {
	endpoint := op.Endpoint
	endpoint = strings.ReplaceAll(
		endpoint, "{sellerId}", url.PathEscape(p.Str("sellerId")),
	)
	endpoint = strings.ReplaceAll(
		endpoint, "{orderId}", url.PathEscape(p.Str("orderId")),
	)
	return endpoint
}

func itemsBody(p Params) any {
	return map[string]any{"items": p["items"]}
}

// firstElement unwraps single-supplier listings: the marketplace returns the
// seller record inside a one-element array.
func firstElement(payload any) any {
	if arr, ok := payload.([]any); ok && len(arr) > 0 {
		return arr[0]
	}
	return payload
}

// batchID extracts the asynchronous batch identifier when the marketplace
// returns one, falling back to the whole payload.
func batchID(payload any) any {
	if m, ok := payload.(map[string]any); ok {
		if id, ok := m["batchRequestId"]; ok {
			return id
		}
	}
	return payload
}
