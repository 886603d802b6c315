package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// OrdersPageInput runs the order pipeline with explicit view state. When
// UseStoreFilters is set the store's current filters are used and Filters is
// ignored.
type OrdersPageInput struct {
	Filters         commerce.Filters
	UseStoreFilters bool
	Sort            commerce.Sort
	Page            int
}

// OrdersPageQuery filters, sorts and paginates the order collection.
type OrdersPageQuery struct {
	store *commerce.Store
}

// NewOrdersPageQuery builds the query.
func NewOrdersPageQuery(store *commerce.Store) *OrdersPageQuery {
	return &OrdersPageQuery{store: store}
}

var _ gocommand.Querier[OrdersPageInput, commerce.OrderPage] = (*OrdersPageQuery)(nil)

// Query recomputes the visible order page from scratch.
func (q *OrdersPageQuery) Query(_ context.Context, input OrdersPageInput) (commerce.OrderPage, error) {
	filters := input.Filters
	if input.UseStoreFilters {
		filters = q.store.Filters()
	}
	if err := filters.Validate(); err != nil {
		return commerce.OrderPage{}, err
	}
	return commerce.ViewOrders(q.store.Orders(), filters, input.Sort, input.Page), nil
}

// CustomersPageInput runs the customer search with explicit view state.
type CustomersPageInput struct {
	Search string
	Page   int
}

// CustomersPageQuery searches and paginates the customer collection.
type CustomersPageQuery struct {
	store *commerce.Store
}

// NewCustomersPageQuery builds the query.
func NewCustomersPageQuery(store *commerce.Store) *CustomersPageQuery {
	return &CustomersPageQuery{store: store}
}

var _ gocommand.Querier[CustomersPageInput, commerce.CustomerPage] = (*CustomersPageQuery)(nil)

// Query recomputes the visible customer page.
func (q *CustomersPageQuery) Query(_ context.Context, input CustomersPageInput) (commerce.CustomerPage, error) {
	return commerce.ViewCustomers(q.store.Customers(), input.Search, input.Page), nil
}

// AnalyticsInput requests the KPI summary. It carries no parameters; the
// summary always spans the full generated collections.
type AnalyticsInput struct{}

// AnalyticsQuery computes the KPI summary.
type AnalyticsQuery struct {
	store *commerce.Store
}

// NewAnalyticsQuery builds the query.
func NewAnalyticsQuery(store *commerce.Store) *AnalyticsQuery {
	return &AnalyticsQuery{store: store}
}

var _ gocommand.Querier[AnalyticsInput, commerce.AnalyticsSummary] = (*AnalyticsQuery)(nil)

// Query derives the summary from the current collections.
func (q *AnalyticsQuery) Query(_ context.Context, _ AnalyticsInput) (commerce.AnalyticsSummary, error) {
	return commerce.ComputeAnalytics(q.store.Orders(), q.store.Customers()), nil
}

// SalesInput selects one sales series granularity.
type SalesInput struct {
	Granularity string
}

// SalesQuery returns one granularity of the sales series.
type SalesQuery struct {
	store *commerce.Store
}

// NewSalesQuery builds the query.
func NewSalesQuery(store *commerce.Store) *SalesQuery {
	return &SalesQuery{store: store}
}

var _ gocommand.Querier[SalesInput, []commerce.SalesPoint] = (*SalesQuery)(nil)

// Query returns the requested buckets.
func (q *SalesQuery) Query(_ context.Context, input SalesInput) ([]commerce.SalesPoint, error) {
	sales := q.store.Sales()
	switch input.Granularity {
	case "", "daily":
		return sales.Daily, nil
	case "weekly":
		return sales.Weekly, nil
	case "monthly":
		return sales.Monthly, nil
	}
	return nil, &UnknownGranularityError{Granularity: input.Granularity}
}

// UnknownGranularityError reports an unsupported sales granularity.
type UnknownGranularityError struct {
	Granularity string
}

// Error implements error.
func (e *UnknownGranularityError) Error() string {
	return "queries: unknown sales granularity " + e.Granularity
}
