package apiclient

import (
	"context"
	"sync"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// MockData seeds deterministic API responses for tests or local demos.
type MockData struct {
	Session   commerce.Snapshot
	Orders    commerce.OrderPage
	Customers commerce.CustomerPage
	Analytics commerce.AnalyticsSummary
	Sales     map[Granularity][]commerce.SalesPoint
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock API client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchSession returns the configured snapshot.
func (c *MockClient) FetchSession(context.Context) (commerce.Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Session, nil
}

// FetchOrders returns the configured order page ignoring the query.
func (c *MockClient) FetchOrders(context.Context, OrdersQuery) (commerce.OrderPage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneOrders(c.data.Orders), nil
}

// FetchCustomers returns the configured customer page ignoring the query.
func (c *MockClient) FetchCustomers(context.Context, CustomersQuery) (commerce.CustomerPage, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCustomers(c.data.Customers), nil
}

// FetchAnalytics returns the configured KPI summary.
func (c *MockClient) FetchAnalytics(context.Context) (commerce.AnalyticsSummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Analytics, nil
}

// FetchSales returns the fixture series for the requested granularity. An
// empty granularity maps to daily, matching the live endpoint.
func (c *MockClient) FetchSales(_ context.Context, granularity Granularity) ([]commerce.SalesPoint, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if granularity == "" {
		granularity = GranularityDaily
	}
	return append([]commerce.SalesPoint(nil), c.data.Sales[granularity]...), nil
}

func cloneOrders(page commerce.OrderPage) commerce.OrderPage {
	out := page
	out.Rows = append([]commerce.Order(nil), page.Rows...)
	return out
}

func cloneCustomers(page commerce.CustomerPage) commerce.CustomerPage {
	out := page
	out.Rows = append([]commerce.Customer(nil), page.Rows...)
	return out
}
