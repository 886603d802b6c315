package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// HTTPConfig configures the HTTP API client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a running dashboard instance over its JSON endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient builds a client against a live dashboard API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("apiclient: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchSession implements SessionClient via the session endpoint.
func (c *HTTPClient) FetchSession(ctx context.Context) (commerce.Snapshot, error) {
	var snapshot commerce.Snapshot
	if err := c.get(ctx, "/api/session", nil, &snapshot); err != nil {
		return commerce.Snapshot{}, err
	}
	return snapshot, nil
}

// FetchOrders implements OrdersClient via the orders endpoint. The server
// applies its own stored filters; the query carries only page and sort.
func (c *HTTPClient) FetchOrders(ctx context.Context, query OrdersQuery) (commerce.OrderPage, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.SortField != "" {
		params.Set("sort", string(query.SortField))
	}
	if query.SortDirection != "" {
		params.Set("dir", string(query.SortDirection))
	}
	var page commerce.OrderPage
	if err := c.get(ctx, "/api/orders", params, &page); err != nil {
		return commerce.OrderPage{}, err
	}
	return page, nil
}

// FetchCustomers implements CustomersClient via the customers endpoint.
func (c *HTTPClient) FetchCustomers(ctx context.Context, query CustomersQuery) (commerce.CustomerPage, error) {
	params := url.Values{}
	if query.Search != "" {
		params.Set("q", query.Search)
	}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	var page commerce.CustomerPage
	if err := c.get(ctx, "/api/customers", params, &page); err != nil {
		return commerce.CustomerPage{}, err
	}
	return page, nil
}

// FetchAnalytics implements AnalyticsClient via the analytics endpoint.
func (c *HTTPClient) FetchAnalytics(ctx context.Context) (commerce.AnalyticsSummary, error) {
	var summary commerce.AnalyticsSummary
	if err := c.get(ctx, "/api/analytics", nil, &summary); err != nil {
		return commerce.AnalyticsSummary{}, err
	}
	return summary, nil
}

// FetchSales implements SalesClient via the sales endpoint.
func (c *HTTPClient) FetchSales(ctx context.Context, granularity Granularity) ([]commerce.SalesPoint, error) {
	params := url.Values{}
	if granularity != "" {
		params.Set("granularity", string(granularity))
	}
	var points []commerce.SalesPoint
	if err := c.get(ctx, "/api/sales", params, &points); err != nil {
		return nil, err
	}
	return points, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, target any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("apiclient: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}
