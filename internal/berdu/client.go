// Package berdu implements an authenticated read-only client for the Berdu
// product API.
package berdu

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/auth"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/internal/normalize"
	"github.com/zzhomeyofficial-web/syncstokzzhomey/pkg/httpclient"
)

// snippetLimit bounds how much of a non-JSON body ends up in error messages.
const snippetLimit = 400

// HTTPDoer is the transport the client issues requests through. Both
// httpclient.Client and httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client issues authenticated GET requests against the Berdu API and decodes
// the loosely-typed JSON responses.
type Client struct {
	baseURL   string
	appID     string
	appSecret string
	http      HTTPDoer
}

var _ HTTPDoer = (*httpclient.Client)(nil)
var _ HTTPDoer = (*httpclient.CircuitBreakerClient)(nil)

// NewClient creates a Berdu API client on top of the given transport.
func NewClient(baseURL, appID, appSecret string, doer HTTPDoer) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		appID:     appID,
		appSecret: appSecret,
		http:      doer,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) endpointURL(endpoint string, params url.Values) string {
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	u := c.baseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// Request issues an authenticated GET against the endpoint and decodes the
// body as JSON. Numbers decode as json.Number so integer ids survive intact.
// A non-JSON body yields *InvalidResponseError; a status >= 400, a truthy
// "error" field or a list-valued "errors" field yields *APIError even when
// the HTTP status is 200.
func (c *Client) Request(ctx context.Context, endpoint string, params url.Values) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(endpoint, params), http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", auth.CredentialNow(c.appID, c.appSecret))

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, &InvalidResponseError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Snippet:  snippet(body),
		}
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Detail: snippet(body)}
	}

	if m, ok := payload.(map[string]any); ok {
		if truthy(m["error"]) {
			return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Detail: snippet(body)}
		}
		if _, ok := m["errors"].([]any); ok {
			return nil, &APIError{Endpoint: endpoint, Status: resp.StatusCode, Detail: snippet(body)}
		}
	}

	return payload, nil
}

// ListProducts pages through /product/list following the opaque cursor until
// it is absent or empty, concatenating items in page order.
func (c *Client) ListProducts(ctx context.Context, userID string) ([]map[string]any, error) {
	var all []map[string]any
	cursor := ""

	for {
		params := url.Values{"user_id": {userID}}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		payload, err := c.Request(ctx, "/product/list", params)
		if err != nil {
			return nil, err
		}

		all = append(all, normalize.MappingList(payload, "list", "data", "items", "products")...)

		cursor = ""
		if m, ok := payload.(map[string]any); ok {
			cursor = scalarCursor(m["cursor"])
		}
		if cursor == "" {
			return all, nil
		}
	}
}

// GetProductStocks fetches the stock rows of a product. When the extracted
// list is empty but the bare payload itself looks like a single stock record
// (a non-nil "stock" field), the payload is treated as a one-element list.
func (c *Client) GetProductStocks(ctx context.Context, userID, productID string) ([]map[string]any, error) {
	payload, err := c.Request(ctx, "/product/stocks", url.Values{
		"user_id":    {userID},
		"product_id": {productID},
	})
	if err != nil {
		return nil, err
	}

	items := normalize.MappingList(payload, "list", "stocks", "data", "items")
	if len(items) > 0 {
		return items, nil
	}
	if m, ok := payload.(map[string]any); ok && m["stock"] != nil {
		return []map[string]any{m}, nil
	}
	return nil, nil
}

// GetProductDetail fetches a product's detail record. Non-mapping payloads
// yield an empty map.
func (c *Client) GetProductDetail(ctx context.Context, userID, productID string) (map[string]any, error) {
	payload, err := c.Request(ctx, "/product/detail", url.Values{
		"user_id":    {userID},
		"product_id": {productID},
	})
	if err != nil {
		return nil, err
	}
	if m, ok := payload.(map[string]any); ok {
		return m, nil
	}
	return map[string]any{}, nil
}

// GetProductVariations fetches a product's variation definitions.
func (c *Client) GetProductVariations(ctx context.Context, userID, productID string) ([]map[string]any, error) {
	payload, err := c.Request(ctx, "/product/variations", url.Values{
		"user_id":    {userID},
		"product_id": {productID},
	})
	if err != nil {
		return nil, err
	}
	return normalize.MappingList(payload, "list", "variations", "data", "items"), nil
}

func snippet(body []byte) string {
	if len(body) > snippetLimit {
		body = body[:snippetLimit]
	}
	return string(body)
}

// truthy mirrors loose truthiness for the API's "error" field: any non-nil,
// non-false, non-empty, non-zero value counts.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}

func scalarCursor(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
