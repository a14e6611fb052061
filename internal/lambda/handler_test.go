package lambda_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerbridge/marketplace-proxy/internal/config"
	"github.com/sellerbridge/marketplace-proxy/internal/lambda"
	"github.com/sellerbridge/marketplace-proxy/internal/marketplace"
)

type fakeForwarder struct {
	endpoint string
	opts     marketplace.RequestOptions
	calls    int

	payload any
	err     error
}

func (f *fakeForwarder) Forward(
	_ context.Context, endpoint string, opts marketplace.RequestOptions,
) (any, error) {
	f.calls++
	f.endpoint = endpoint
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func decodeResponse(t *testing.T, resp events.APIGatewayProxyResponse) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	return body
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	h := lambda.New(&fakeForwarder{}, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/health",
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "OK", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandler_HealthWrongMethod(t *testing.T) {
	t.Parallel()

	h := lambda.New(&fakeForwarder{}, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/health",
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandler_PathLayouts(t *testing.T) {
	t.Parallel()

	// Both bare and API-prefixed paths resolve to the same operation.
	for _, path := range []string{"/seller-info", "/api/seller-info"} {
		forwarder := &fakeForwarder{payload: []any{map[string]any{"id": float64(1)}}}
		h := lambda.New(forwarder, config.EnvProduction)

		resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
			HTTPMethod:            http.MethodGet,
			Path:                  path,
			QueryStringParameters: map[string]string{"apiKey": "k", "apiSecret": "s"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "/suppliers", forwarder.endpoint, path)
	}
}

func TestHandler_UnknownOperation(t *testing.T) {
	t.Parallel()

	h := lambda.New(&fakeForwarder{}, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/nonexistent",
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "unknown operation")
	assert.Contains(t, body["error"], "/api/nonexistent")
}

func TestHandler_MethodMismatch(t *testing.T) {
	t.Parallel()

	h := lambda.New(&fakeForwarder{}, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/api/update-stock",
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestHandler_Preflight(t *testing.T) {
	t.Parallel()

	h := lambda.New(&fakeForwarder{}, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodOptions,
		Path:       "/api/update-stock",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "GET, POST, PUT, OPTIONS", resp.Headers["Access-Control-Allow-Methods"])
}

func TestHandler_PostOperation(t *testing.T) {
	t.Parallel()

	forwarder := &fakeForwarder{payload: map[string]any{"batchRequestId": "batch-1"}}
	h := lambda.New(forwarder, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/update-price",
		Body: `{
			"apiKey": "k",
			"apiSecret": "s",
			"sellerId": "12345",
			"items": [{"barcode": "abc", "salePrice": 99.9}]
		}`,
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"batchRequestId": "batch-1"}, body["result"])

	assert.Equal(t, "/suppliers/12345/products/price-updates", forwarder.endpoint)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
}

func TestHandler_MalformedBody(t *testing.T) {
	t.Parallel()

	forwarder := &fakeForwarder{}
	h := lambda.New(forwarder, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/update-stock",
		Body:       "{not json",
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, "Geçersiz istek gövdesi", body["error"])
	assert.Zero(t, forwarder.calls)
}

func TestHandler_ValidationError(t *testing.T) {
	t.Parallel()

	forwarder := &fakeForwarder{}
	h := lambda.New(forwarder, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/api/update-stock",
		Body:       `{"apiKey": "k", "apiSecret": "s"}`,
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, "Eksik parametreler: sellerId, items", body["error"])
	assert.Zero(t, forwarder.calls)
}

func TestHandler_UpstreamError(t *testing.T) {
	t.Parallel()

	forwarder := &fakeForwarder{err: &marketplace.UpstreamError{
		StatusCode: 401,
		Status:     "Unauthorized",
		Detail:     "invalid credentials",
	}}
	h := lambda.New(forwarder, config.EnvProduction)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:            http.MethodGet,
		Path:                  "/api/seller-info",
		QueryStringParameters: map[string]string{"apiKey": "k", "apiSecret": "bad"},
	})
	require.NoError(t, err)

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeResponse(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "401")
	assert.Contains(t, body["error"], "invalid credentials")
}
