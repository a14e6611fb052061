package marketplace

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sellerbridge/marketplace-proxy/internal/metrics"
)

const (
	// integrationTag is the client identifier suffix the marketplace
	// requires on every self-integration call.
	integrationTag = "SelfIntegration"

	defaultTimeout = 30 * time.Second
)

// Client implements Forwarder over HTTPS with the marketplace's required
// header set. The underlying transport accepts TLS 1.2 and 1.3 only and is
// built once; it is safe for concurrent use and never mutated after New.
type Client struct {
	baseURL string
	client  *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// New creates a marketplace client targeting the given base URL. The base
// URL is resolved once at startup (staging vs. production) and passed in;
// the client never consults process-wide state.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
					MaxVersion: tls.VersionTLS13,
				},
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Forward issues one marketplace call and returns the decoded JSON payload.
// Credential checks happen before any network I/O. A 2xx response with an
// unparseable body is tolerated and returned as {"rawResponse": <text>}.
func (c *Client) Forward(
	ctx context.Context,
	endpoint string,
	opts RequestOptions,
) (any, error) {
	if missing := missingCredentials(opts); len(missing) > 0 {
		return nil, &ValidationError{Fields: missing}
	}

	if !utf8.ValidString(opts.APIKey) || !utf8.ValidString(opts.APISecret) {
		return nil, &EncodingError{Reason: "credentials are not valid UTF-8"}
	}

	u := c.baseURL + endpoint
	if len(opts.Params) > 0 {
		u += "?" + encodeParams(opts.Params)
	}

	var bodyReader io.Reader
	if opts.Body != nil {
		data, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating marketplace request: %w", err)
	}

	creds := base64.StdEncoding.EncodeToString(
		[]byte(opts.APIKey + ":" + opts.APISecret),
	)
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("User-Agent", clientIdentifier(opts.SellerID))
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	metrics.MarketplaceAPICallsTotal.Inc()

	resp, err := c.client.Do(req)
	if err != nil {
		metrics.MarketplaceAPIErrorsTotal.Inc()
		return nil, fmt.Errorf("executing marketplace request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.MarketplaceAPIErrorsTotal.Inc()
		return nil, fmt.Errorf("reading marketplace response: %w", err)
	}

	metrics.MarketplaceRequestDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode < http.StatusOK ||
		resp.StatusCode >= http.StatusMultipleChoices {
		metrics.MarketplaceAPIErrorsTotal.Inc()
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Detail:     upstreamDetail(body),
		}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		// A 2xx with a non-JSON body is not a failure.
		return map[string]any{"rawResponse": string(body)}, nil
	}

	return payload, nil
}

func missingCredentials(opts RequestOptions) []string {
	var missing []string
	if strings.TrimSpace(opts.APIKey) == "" {
		missing = append(missing, "apiKey")
	}
	if strings.TrimSpace(opts.APISecret) == "" {
		missing = append(missing, "apiSecret")
	}
	return missing
}

// encodeParams builds the query string by hand: url.Values sorts keys on
// Encode, which would break the insertion-order guarantee.
func encodeParams(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

func clientIdentifier(sellerID string) string {
	if sellerID == "" {
		return integrationTag
	}
	return sellerID + " - " + integrationTag
}

// upstreamDetail extracts the most useful description from an error body.
// Fallback order: JSON "message", JSON "error", the re-marshaled JSON, the
// raw text, then a final placeholder.
func upstreamDetail(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err == nil {
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := parsed["error"].(string); ok && msg != "" {
			return msg
		}
		if data, err := json.Marshal(parsed); err == nil {
			return string(data)
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}

	return "response could not be parsed"
}
