package commerce

import (
	"math"
	"testing"
	"time"
)

func TestComputeAnalyticsTotals(t *testing.T) {
	day := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	orders := []Order{
		testOrder("ORD-A", day, 100.50, "Emma Wilson"),
		testOrder("ORD-B", day, 49.50, "James Chen"),
	}
	customers := []Customer{
		{ID: "CUS-0001", TotalOrders: 3, IsReturning: true},
		{ID: "CUS-0002", TotalOrders: 1, IsReturning: false},
		{ID: "CUS-0003", TotalOrders: 5, IsReturning: true},
		{ID: "CUS-0004", TotalOrders: 1, IsReturning: false},
	}

	summary := ComputeAnalytics(orders, customers)
	if summary.TotalRevenue != 150 {
		t.Fatalf("expected revenue 150, got %v", summary.TotalRevenue)
	}
	if summary.TotalOrders != 2 {
		t.Fatalf("expected 2 orders, got %d", summary.TotalOrders)
	}
	if summary.AverageOrderValue != 75 {
		t.Fatalf("expected AOV 75, got %v", summary.AverageOrderValue)
	}
	if summary.ReturningCustomersPercent != 50 {
		t.Fatalf("expected 50%% returning, got %v", summary.ReturningCustomersPercent)
	}
	if summary.PreviousTotalRevenue != round2(150*previousRevenueRatio) {
		t.Fatalf("unexpected previous revenue %v", summary.PreviousTotalRevenue)
	}
	if summary.PreviousTotalOrders != 1 {
		t.Fatalf("expected floor(2*0.89)=1, got %d", summary.PreviousTotalOrders)
	}
}

func TestComputeAnalyticsEmptyCollectionsStayFinite(t *testing.T) {
	summary := ComputeAnalytics(nil, nil)
	for name, v := range map[string]float64{
		"averageOrderValue":         summary.AverageOrderValue,
		"totalRevenue":              summary.TotalRevenue,
		"returningCustomersPercent": summary.ReturningCustomersPercent,
		"previousAverageOrderValue": summary.PreviousAverageOrderValue,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("%s must stay finite for empty input, got %v", name, v)
		}
	}
	if summary.AverageOrderValue != 0 {
		t.Fatalf("expected AOV 0 for empty collection, got %v", summary.AverageOrderValue)
	}
}

func TestConversionFunnelMonotonicallyDecreases(t *testing.T) {
	stages := ConversionFunnel()
	if len(stages) != 4 {
		t.Fatalf("expected 4 funnel stages, got %d", len(stages))
	}
	for i := 1; i < len(stages); i++ {
		if stages[i].Value > stages[i-1].Value {
			t.Fatalf("funnel must not increase: %s %v > %s %v",
				stages[i].Stage, stages[i].Value, stages[i-1].Stage, stages[i-1].Value)
		}
	}
}

func TestCountOrderStatuses(t *testing.T) {
	day := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	orders := []Order{
		testOrder("ORD-A", day, 10, "Emma Wilson"),
		testOrder("ORD-B", day, 10, "James Chen"),
		testOrder("ORD-C", day, 10, "Noah Davis"),
	}
	orders[1].OrderStatus = OrderShipped
	orders[2].OrderStatus = OrderCancelled

	counts := CountOrderStatuses(orders)
	if counts.Total != 3 || counts.Delivered != 1 || counts.Shipped != 1 ||
		counts.Cancelled != 1 || counts.Processing != 0 {
		t.Fatalf("unexpected counts %+v", counts)
	}
}

func TestComputeCustomerStats(t *testing.T) {
	customers := []Customer{
		{TotalOrders: 4, TotalSpent: 100, IsReturning: true},
		{TotalOrders: 1, TotalSpent: 50, IsReturning: false},
	}
	stats := ComputeCustomerStats(customers)
	if stats.Total != 2 || stats.Returning != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.TotalRevenue != 150 || stats.AverageOrders != 2.5 {
		t.Fatalf("unexpected aggregates %+v", stats)
	}

	empty := ComputeCustomerStats(nil)
	if empty.AverageOrders != 0 {
		t.Fatalf("expected 0 average for empty customers, got %v", empty.AverageOrders)
	}
}
