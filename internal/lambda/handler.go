// Package lambda adapts the proxy dispatch core to API Gateway events for
// the single-invocation deployment variant.
package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/sellerbridge/marketplace-proxy/internal/config"
	"github.com/sellerbridge/marketplace-proxy/internal/marketplace"
	"github.com/sellerbridge/marketplace-proxy/internal/proxy"
)

// Handler resolves API Gateway requests to proxy operations. Unlike the
// long-running server, any origin may call this variant, so CORS is
// permissive.
type Handler struct {
	dispatcher  *proxy.Dispatcher
	environment string
}

// New creates a Handler backed by the given forwarder.
func New(forwarder marketplace.Forwarder, environment string) *Handler {
	return &Handler{
		dispatcher:  proxy.NewDispatcher(forwarder),
		environment: environment,
	}
}

// Handle processes one API Gateway proxy event.
func (h *Handler) Handle(
	ctx context.Context,
	req events.APIGatewayProxyRequest,
) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod == http.MethodOptions {
		return preflightResponse(), nil
	}

	name := operationName(req.Path)

	if name == "health" {
		if req.HTTPMethod != http.MethodGet {
			return envelopeResponse(
				http.StatusMethodNotAllowed,
				proxy.NewErrorEnvelope("method not allowed", ""),
			), nil
		}
		return payloadResponse(http.StatusOK, proxy.HealthPayload()), nil
	}

	op, ok := proxy.Find(name)
	if !ok {
		return envelopeResponse(
			http.StatusNotFound,
			proxy.NewErrorEnvelope(fmt.Sprintf("unknown operation: %s", req.Path), ""),
		), nil
	}

	if req.HTTPMethod != op.Method {
		return envelopeResponse(
			http.StatusMethodNotAllowed,
			proxy.NewErrorEnvelope("method not allowed", ""),
		), nil
	}

	params, err := requestParams(req, op)
	if err != nil {
		return envelopeResponse(
			http.StatusBadRequest,
			proxy.NewErrorEnvelope("Geçersiz istek gövdesi", ""),
		), nil
	}

	result, err := h.dispatcher.Execute(ctx, op, params)
	if err != nil {
		return h.errorResponse(err), nil
	}

	return payloadResponse(http.StatusOK, result), nil
}

// operationName maps an event path to a table entry name. Both bare
// ("/products") and API-prefixed ("/api/products") layouts are accepted.
func operationName(path string) string {
	name := strings.Trim(path, "/")
	name = strings.TrimPrefix(name, "api/")
	return name
}

func requestParams(
	req events.APIGatewayProxyRequest,
	op *proxy.Operation,
) (proxy.Params, error) {
	if op.Method == http.MethodGet {
		params := proxy.Params{}
		for key, value := range req.QueryStringParameters {
			params[key] = value
		}
		return params, nil
	}

	params := proxy.Params{}
	if strings.TrimSpace(req.Body) == "" {
		return params, nil
	}
	if err := json.Unmarshal([]byte(req.Body), &params); err != nil {
		return nil, fmt.Errorf("decoding request body: %w", err)
	}
	return params, nil
}

func (h *Handler) errorResponse(err error) events.APIGatewayProxyResponse {
	details := ""
	if proxy.Unexpected(err) && h.environment == config.EnvDevelopment {
		details = fmt.Sprintf("%+v", err)
	}

	return envelopeResponse(
		proxy.StatusFor(err),
		proxy.NewErrorEnvelope(err.Error(), details),
	)
}

func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, POST, PUT, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
}

func preflightResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    corsHeaders(),
		Body:       "",
	}
}

func payloadResponse(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		return envelopeResponse(
			http.StatusInternalServerError,
			proxy.NewErrorEnvelope("encoding response failed", ""),
		)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       string(body),
	}
}

func envelopeResponse(status int, env proxy.ErrorEnvelope) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(env)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       string(body),
	}
}
