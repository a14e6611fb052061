package client

import (
	"context"
	"net/url"
	"strconv"
)

// Health calls the local health operation.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	return c.get(ctx, "/api/health", nil)
}

// TestConnection verifies the credential pair against the marketplace.
func (c *Client) TestConnection(ctx context.Context, creds Credentials) (any, error) {
	envelope, err := c.post(ctx, "/api/test-connection", map[string]any{
		"apiKey":    creds.APIKey,
		"apiSecret": creds.APISecret,
	})
	if err != nil {
		return nil, err
	}
	return envelope["sellerInfo"], nil
}

// SellerInfo fetches the seller record for the credential pair.
func (c *Client) SellerInfo(ctx context.Context, creds Credentials) (any, error) {
	envelope, err := c.get(ctx, "/api/seller-info", creds.query())
	if err != nil {
		return nil, err
	}
	return envelope["sellerInfo"], nil
}

// Products lists one page of the seller's products.
func (c *Client) Products(
	ctx context.Context,
	creds Credentials,
	page, size int,
) (any, error) {
	q := creds.query()
	paginate(q, page, size)

	envelope, err := c.get(ctx, "/api/products", q)
	if err != nil {
		return nil, err
	}
	return envelope["products"], nil
}

// Orders lists one page of the seller's orders, optionally filtered by
// order status.
func (c *Client) Orders(
	ctx context.Context,
	creds Credentials,
	page, size int,
	status string,
) (any, error) {
	q := creds.query()
	paginate(q, page, size)
	if status != "" {
		q.Set("status", status)
	}

	envelope, err := c.get(ctx, "/api/orders", q)
	if err != nil {
		return nil, err
	}
	return envelope["orders"], nil
}

func paginate(q url.Values, page, size int) {
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
}
