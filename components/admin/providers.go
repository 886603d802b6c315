package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

// Widget definition codes registered by the default storefront set.
const (
	WidgetKPICards        = "admin.widget.kpi_cards"
	WidgetSalesChart      = "admin.widget.sales_chart"
	WidgetCategoryRevenue = "admin.widget.category_revenue"
	WidgetRecentOrders    = "admin.widget.recent_orders"
	WidgetOrderStatusRow  = "admin.widget.order_status_row"
	WidgetOrdersTable     = "admin.widget.orders_table"
	WidgetOrdersByMonth   = "admin.widget.orders_by_month"
	WidgetFunnel          = "admin.widget.conversion_funnel"
	WidgetCustomerStats   = "admin.widget.customer_stats"
	WidgetCustomersTable  = "admin.widget.customers_table"
)

func defaultProviders(store *commerce.Store) map[string]Provider {
	charts := newChartRenderer(sharedChartCache, "")
	return map[string]Provider{
		WidgetKPICards:        NewKPICardsProvider(store),
		WidgetSalesChart:      NewSalesChartProvider(store, charts),
		WidgetCategoryRevenue: NewCategoryRevenueProvider(charts),
		WidgetRecentOrders:    NewRecentOrdersProvider(store),
		WidgetOrderStatusRow:  NewOrderStatusProvider(store),
		WidgetOrdersTable:     NewOrdersTableProvider(store),
		WidgetOrdersByMonth:   NewOrdersByMonthProvider(store, charts),
		WidgetFunnel:          NewFunnelProvider(charts),
		WidgetCustomerStats:   NewCustomerStatsProvider(store),
		WidgetCustomersTable:  NewCustomersTableProvider(store),
	}
}

// NewKPICardsProvider surfaces the headline metrics with previous-period
// deltas for the stat cards.
func NewKPICardsProvider(store *commerce.Store) Provider {
	return ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		summary := commerce.ComputeAnalytics(store.Orders(), store.Customers())
		return WidgetData{
			"summary": summary,
			"cards": []map[string]any{
				kpiCard("Total Revenue", "currency", summary.TotalRevenue, summary.PreviousTotalRevenue),
				kpiCard("Total Orders", "count", float64(summary.TotalOrders), float64(summary.PreviousTotalOrders)),
				kpiCard("Average Order Value", "currency", summary.AverageOrderValue, summary.PreviousAverageOrderValue),
				kpiCard("Conversion Rate", "percent", summary.ConversionRate, summary.PreviousConversionRate),
			},
		}, nil
	})
}

func kpiCard(label, format string, current, previous float64) map[string]any {
	var delta float64
	if previous != 0 {
		delta = (current - previous) / previous * 100
	}
	return map[string]any{
		"label":    label,
		"format":   format,
		"value":    current,
		"previous": previous,
		"delta":    delta,
		"up":       delta >= 0,
	}
}

// NewSalesChartProvider renders the revenue trend line. Configuration keys:
// granularity (daily|weekly|monthly) and compare (include previous period).
func NewSalesChartProvider(store *commerce.Store, charts *chartRenderer) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		cfg := meta.Instance.Configuration
		granularity := stringValue(cfg["granularity"], "daily")
		compare := boolValue(cfg["compare"])

		points, err := salesBuckets(store.Sales(), granularity)
		if err != nil {
			return nil, err
		}

		xAxis := make([]string, len(points))
		current := make([]ChartPoint, len(points))
		previous := make([]ChartPoint, len(points))
		for i, p := range points {
			xAxis[i] = p.Label
			current[i] = ChartPoint{Label: p.Label, Value: p.Revenue}
			previous[i] = ChartPoint{Label: p.Label, Value: p.PreviousRevenue}
		}

		series := []ChartSeries{{Name: "Revenue", Points: current}}
		if compare {
			series = append(series, ChartSeries{Name: "Previous Period", Points: previous})
		}

		theme := ChartTheme(meta.Viewer.Theme)
		key := fmt.Sprintf("%s:%s:%s:%t:%s", meta.Instance.ID, theme, granularity, compare, configHash(cfg))
		html, err := charts.Line(key, "Sales Overview", granularityLabel(granularity), theme, xAxis, series)
		if err != nil {
			return nil, err
		}
		return WidgetData{
			"chart_html":  html,
			"chart_type":  "line",
			"granularity": granularity,
			"compare":     compare,
		}, nil
	})
}

func granularityLabel(granularity string) string {
	switch granularity {
	case "weekly":
		return "Weekly"
	case "monthly":
		return "Monthly"
	default:
		return "Daily"
	}
}

func salesBuckets(sales commerce.SalesSeries, granularity string) ([]commerce.SalesPoint, error) {
	switch granularity {
	case "daily":
		return sales.Daily, nil
	case "weekly":
		return sales.Weekly, nil
	case "monthly":
		return sales.Monthly, nil
	default:
		return nil, fmt.Errorf("admin: unknown sales granularity %q", granularity)
	}
}

// NewCategoryRevenueProvider renders the revenue-by-category donut.
func NewCategoryRevenueProvider(charts *chartRenderer) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		summaries := commerce.CategorySummaries()
		points := make([]ChartPoint, len(summaries))
		for i, c := range summaries {
			points[i] = ChartPoint{Label: c.Name, Value: c.Revenue}
		}
		theme := ChartTheme(meta.Viewer.Theme)
		key := fmt.Sprintf("%s:%s:category-revenue", meta.Instance.ID, theme)
		html, err := charts.Pie(key, "Revenue by Category", "", theme, ChartSeries{Name: "Revenue", Points: points})
		if err != nil {
			return nil, err
		}
		return WidgetData{
			"chart_html": html,
			"chart_type": "pie",
			"categories": summaries,
		}, nil
	})
}

// NewRecentOrdersProvider lists the latest orders for the dashboard card.
// Configuration key limit caps the row count (default 5).
func NewRecentOrdersProvider(store *commerce.Store) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		limit := intValue(meta.Instance.Configuration["limit"], 5)
		orders := store.Orders()
		if limit > 0 && len(orders) > limit {
			orders = orders[:limit]
		}
		return WidgetData{"orders": orders}, nil
	})
}

// NewOrderStatusProvider tallies orders per fulfillment status.
func NewOrderStatusProvider(store *commerce.Store) Provider {
	return ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{"counts": commerce.CountOrderStatuses(store.Orders())}, nil
	})
}

// NewOrdersTableProvider runs the full filter/sort/paginate pipeline against
// the store's current filters. Configuration keys page, sort_field and
// sort_direction override the request-scoped view state.
func NewOrdersTableProvider(store *commerce.Store) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		cfg := meta.Instance.Configuration
		page := intValue(cfg["page"], 1)

		sortState := commerce.DefaultSort()
		if field := stringValue(cfg["sort_field"], ""); field != "" {
			sortState.Field = commerce.SortField(field)
			if !sortState.Field.Valid() {
				return nil, fmt.Errorf("admin: unknown sort field %q", field)
			}
		}
		if dir := stringValue(cfg["sort_direction"], ""); dir != "" {
			sortState.Direction = commerce.SortDirection(dir)
		}

		filters := store.Filters()
		result := commerce.ViewOrders(store.Orders(), filters, sortState, page)
		return WidgetData{
			"result":       result,
			"filters":      filters,
			"sort":         sortState,
			"sort_dirs":    headerSortDirections(sortState),
			"custom_start": dateInputValue(filters.CustomStart),
			"custom_end":   dateInputValue(filters.CustomEnd),
			"categories":   commerce.CategoryNames(),
			"statuses":     commerce.OrderStatuses(),
			"payments":     commerce.PaymentStatuses(),
		}, nil
	})
}

// NewOrdersByMonthProvider renders the monthly order volume bars.
func NewOrdersByMonthProvider(store *commerce.Store, charts *chartRenderer) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		monthly := store.Sales().Monthly
		xAxis := make([]string, len(monthly))
		points := make([]ChartPoint, len(monthly))
		for i, p := range monthly {
			xAxis[i] = p.Label
			points[i] = ChartPoint{Label: p.Label, Value: float64(p.Orders)}
		}
		theme := ChartTheme(meta.Viewer.Theme)
		key := fmt.Sprintf("%s:%s:orders-by-month", meta.Instance.ID, theme)
		html, err := charts.Bar(key, "Orders by Month", "", theme, xAxis, []ChartSeries{
			{Name: "Orders", Points: points},
		})
		if err != nil {
			return nil, err
		}
		return WidgetData{
			"chart_html": html,
			"chart_type": "bar",
		}, nil
	})
}

// NewFunnelProvider renders the visitor-to-purchase conversion funnel.
func NewFunnelProvider(charts *chartRenderer) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		stages := commerce.ConversionFunnel()
		points := make([]ChartPoint, len(stages))
		for i, s := range stages {
			points[i] = ChartPoint{Label: s.Stage, Value: s.Value}
		}
		theme := ChartTheme(meta.Viewer.Theme)
		key := fmt.Sprintf("%s:%s:funnel", meta.Instance.ID, theme)
		html, err := charts.Funnel(key, "Conversion Funnel", "", theme, ChartSeries{Name: "Conversion", Points: points})
		if err != nil {
			return nil, err
		}
		return WidgetData{
			"chart_html": html,
			"chart_type": "funnel",
			"stages":     stages,
		}, nil
	})
}

// NewCustomerStatsProvider aggregates the customer page stat cards.
func NewCustomerStatsProvider(store *commerce.Store) Provider {
	return ProviderFunc(func(_ context.Context, _ WidgetContext) (WidgetData, error) {
		return WidgetData{"stats": commerce.ComputeCustomerStats(store.Customers())}, nil
	})
}

// NewCustomersTableProvider searches and paginates the customer collection.
// Configuration keys search and page come from the request-scoped view state.
func NewCustomersTableProvider(store *commerce.Store) Provider {
	return ProviderFunc(func(_ context.Context, meta WidgetContext) (WidgetData, error) {
		cfg := meta.Instance.Configuration
		search := stringValue(cfg["search"], "")
		page := intValue(cfg["page"], 1)
		result := commerce.ViewCustomers(store.Customers(), search, page)
		return WidgetData{
			"result": result,
			"search": search,
		}, nil
	})
}

// headerSortDirections maps each sortable column to the direction its header
// link should request: clicking the active column reverses order, any other
// column starts descending.
func headerSortDirections(current commerce.Sort) map[string]string {
	dirs := make(map[string]string, 3)
	for _, field := range []commerce.SortField{
		commerce.SortByOrderDate,
		commerce.SortByAmount,
		commerce.SortByCustomerName,
	} {
		dirs[string(field)] = string(current.Toggle(field).Direction)
	}
	return dirs
}

func dateInputValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func stringValue(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func intValue(v any, fallback int) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func boolValue(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return strings.EqualFold(val, "true")
	case int:
		return val != 0
	default:
		return false
	}
}
