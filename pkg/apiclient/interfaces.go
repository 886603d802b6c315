package apiclient

import (
	"context"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// SessionClient reads the current session snapshot.
type SessionClient interface {
	FetchSession(ctx context.Context) (commerce.Snapshot, error)
}

// OrdersClient fetches paged order views with the caller's sort state.
type OrdersClient interface {
	FetchOrders(ctx context.Context, query OrdersQuery) (commerce.OrderPage, error)
}

// CustomersClient fetches paged customer views filtered by free text.
type CustomersClient interface {
	FetchCustomers(ctx context.Context, query CustomersQuery) (commerce.CustomerPage, error)
}

// AnalyticsClient fetches the KPI summary.
type AnalyticsClient interface {
	FetchAnalytics(ctx context.Context) (commerce.AnalyticsSummary, error)
}

// SalesClient fetches one sales series at the requested granularity.
type SalesClient interface {
	FetchSales(ctx context.Context, granularity Granularity) ([]commerce.SalesPoint, error)
}

// Client is a convenience union for callers that consume the whole API.
type Client interface {
	SessionClient
	OrdersClient
	CustomersClient
	AnalyticsClient
	SalesClient
}

// Granularity selects a sales series bucket size.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// OrdersQuery mirrors the orders endpoint query parameters. Zero values fall
// back to the server defaults (first page, default sort).
type OrdersQuery struct {
	Page          int
	SortField     commerce.SortField
	SortDirection commerce.SortDirection
}

// CustomersQuery mirrors the customers endpoint query parameters.
type CustomersQuery struct {
	Search string
	Page   int
}
