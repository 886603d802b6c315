package admin

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-storefront-admin/components/commerce"
)

func newProviderStore(t *testing.T) *commerce.Store {
	t.Helper()
	gen := commerce.NewGenerator(commerce.WithRandSource(rand.NewSource(7)))
	sales := gen.Sales()
	return commerce.NewStore(commerce.StoreOptions{
		Orders:    gen.Orders(),
		Customers: gen.Customers(),
		Sales:     &sales,
	})
}

func fetch(t *testing.T, provider Provider, instance WidgetInstance) WidgetData {
	t.Helper()
	data, err := provider.Fetch(context.Background(), WidgetContext{Instance: instance})
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	return data
}

func TestKPICardsProvider(t *testing.T) {
	store := newProviderStore(t)
	data := fetch(t, NewKPICardsProvider(store), WidgetInstance{ID: "kpis"})
	cards, ok := data["cards"].([]map[string]any)
	if !ok || len(cards) != 4 {
		t.Fatalf("expected four kpi cards, got %#v", data["cards"])
	}
	for _, card := range cards {
		if card["label"] == "" {
			t.Fatalf("expected card label, got %#v", card)
		}
		if _, ok := card["delta"].(float64); !ok {
			t.Fatalf("expected delta computed, got %#v", card)
		}
	}
}

func TestSalesChartProviderRendersLine(t *testing.T) {
	store := newProviderStore(t)
	charts := newChartRenderer(NewChartCache(time.Minute), "")
	provider := NewSalesChartProvider(store, charts)

	data := fetch(t, provider, WidgetInstance{
		ID:            "sales",
		Configuration: map[string]any{"granularity": "monthly", "compare": true},
	})
	html, _ := data["chart_html"].(string)
	if !strings.Contains(html, "<div") {
		t.Fatalf("expected rendered chart markup, got %q", html)
	}
	if data["granularity"] != "monthly" || data["compare"] != true {
		t.Fatalf("expected config echoed, got %#v", data)
	}
}

func TestSalesChartProviderRejectsUnknownGranularity(t *testing.T) {
	store := newProviderStore(t)
	provider := NewSalesChartProvider(store, newChartRenderer(NewChartCache(time.Minute), ""))
	_, err := provider.Fetch(context.Background(), WidgetContext{Instance: WidgetInstance{
		ID:            "sales",
		Configuration: map[string]any{"granularity": "hourly"},
	}})
	if err == nil {
		t.Fatalf("expected granularity error")
	}
}

func TestRecentOrdersProviderAppliesLimit(t *testing.T) {
	store := newProviderStore(t)
	data := fetch(t, NewRecentOrdersProvider(store), WidgetInstance{
		ID:            "recent",
		Configuration: map[string]any{"limit": 3},
	})
	orders, ok := data["orders"].([]commerce.Order)
	if !ok || len(orders) != 3 {
		t.Fatalf("expected three orders, got %#v", data["orders"])
	}
}

func TestOrderStatusProviderCounts(t *testing.T) {
	store := newProviderStore(t)
	data := fetch(t, NewOrderStatusProvider(store), WidgetInstance{ID: "status"})
	counts, ok := data["counts"].(commerce.OrderStatusCounts)
	if !ok {
		t.Fatalf("expected status counts, got %#v", data["counts"])
	}
	if counts.Total != len(store.Orders()) {
		t.Fatalf("expected total %d, got %d", len(store.Orders()), counts.Total)
	}
}

func TestOrdersTableProviderPaginates(t *testing.T) {
	store := newProviderStore(t)
	provider := NewOrdersTableProvider(store)
	data := fetch(t, provider, WidgetInstance{
		ID:            "orders-table",
		Configuration: map[string]any{"page": 2, "sort_field": "amount", "sort_direction": "asc"},
	})
	result, ok := data["result"].(commerce.OrderPage)
	if !ok {
		t.Fatalf("expected order page, got %#v", data["result"])
	}
	if result.Page != 2 {
		t.Fatalf("expected page 2, got %d", result.Page)
	}
	if len(result.Rows) == 0 || len(result.Rows) > commerce.PageSize {
		t.Fatalf("unexpected row count %d", len(result.Rows))
	}
}

func TestOrdersTableProviderExposesHeaderSortDirections(t *testing.T) {
	store := newProviderStore(t)
	provider := NewOrdersTableProvider(store)
	data := fetch(t, provider, WidgetInstance{
		ID:            "orders-table",
		Configuration: map[string]any{"sort_field": "orderDate", "sort_direction": "desc"},
	})
	dirs, ok := data["sort_dirs"].(map[string]string)
	if !ok {
		t.Fatalf("expected sort directions, got %#v", data["sort_dirs"])
	}
	if dirs["orderDate"] != "asc" {
		t.Fatalf("expected active column link to reverse order, got %q", dirs["orderDate"])
	}
	if dirs["amount"] != "desc" || dirs["customerName"] != "desc" {
		t.Fatalf("expected inactive columns to start descending, got %#v", dirs)
	}
}

func TestOrdersTableProviderExposesCustomBounds(t *testing.T) {
	store := newProviderStore(t)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	store.SetCustomDateRange(start, time.Time{})

	data := fetch(t, NewOrdersTableProvider(store), WidgetInstance{ID: "orders-table"})
	if data["custom_start"] != "2025-03-01" {
		t.Fatalf("expected formatted start bound, got %#v", data["custom_start"])
	}
	if data["custom_end"] != "" {
		t.Fatalf("expected empty end bound, got %#v", data["custom_end"])
	}
}

func TestOrdersTableProviderRejectsUnknownSortField(t *testing.T) {
	store := newProviderStore(t)
	provider := NewOrdersTableProvider(store)
	_, err := provider.Fetch(context.Background(), WidgetContext{Instance: WidgetInstance{
		ID:            "orders-table",
		Configuration: map[string]any{"sort_field": "profit"},
	}})
	if err == nil {
		t.Fatalf("expected sort field error")
	}
}

func TestCustomersTableProviderSearches(t *testing.T) {
	store := newProviderStore(t)
	target := store.Customers()[0]
	data := fetch(t, NewCustomersTableProvider(store), WidgetInstance{
		ID:            "customers-table",
		Configuration: map[string]any{"search": target.Email},
	})
	result, ok := data["result"].(commerce.CustomerPage)
	if !ok {
		t.Fatalf("expected customer page, got %#v", data["result"])
	}
	if result.TotalCount == 0 {
		t.Fatalf("expected at least one match for %q", target.Email)
	}
	for _, row := range result.Rows {
		if !strings.Contains(strings.ToLower(row.Email), strings.ToLower(target.Email)) {
			t.Fatalf("row %q does not match search %q", row.Email, target.Email)
		}
	}
}

func TestFunnelProviderRenders(t *testing.T) {
	data := fetch(t, NewFunnelProvider(newChartRenderer(NewChartCache(time.Minute), "")), WidgetInstance{ID: "funnel"})
	html, _ := data["chart_html"].(string)
	if !strings.Contains(html, "<div") {
		t.Fatalf("expected funnel markup, got %q", html)
	}
	stages, ok := data["stages"].([]commerce.FunnelStage)
	if !ok || len(stages) == 0 {
		t.Fatalf("expected funnel stages, got %#v", data["stages"])
	}
}

func TestCategoryRevenueProviderRenders(t *testing.T) {
	data := fetch(t, NewCategoryRevenueProvider(newChartRenderer(NewChartCache(time.Minute), "")), WidgetInstance{ID: "categories"})
	if html, _ := data["chart_html"].(string); !strings.Contains(html, "<div") {
		t.Fatalf("expected pie markup, got %q", html)
	}
}

func TestOrdersByMonthProviderRenders(t *testing.T) {
	store := newProviderStore(t)
	data := fetch(t, NewOrdersByMonthProvider(store, newChartRenderer(NewChartCache(time.Minute), "")), WidgetInstance{ID: "volume"})
	if html, _ := data["chart_html"].(string); !strings.Contains(html, "<div") {
		t.Fatalf("expected bar markup, got %q", html)
	}
}
