package commerce

import "math"

// Simulated metrics standing in for figures no in-process data source can
// provide. Previous-period multipliers are placeholders for comparison cards,
// not a statistical model; do not treat them as historical data.
const (
	simulatedConversionRate         = 3.42
	simulatedPreviousConversionRate = 2.98

	previousRevenueRatio   = 0.87
	previousOrdersRatio    = 0.89
	previousAOVRatio       = 0.95
	previousReturningRatio = 0.92
)

// AnalyticsSummary carries the KPI figures rendered by the dashboard cards.
type AnalyticsSummary struct {
	TotalRevenue              float64 `json:"totalRevenue"`
	TotalOrders               int     `json:"totalOrders"`
	AverageOrderValue         float64 `json:"averageOrderValue"`
	ConversionRate            float64 `json:"conversionRate"`
	ReturningCustomersPercent float64 `json:"returningCustomersPercent"`

	PreviousTotalRevenue              float64 `json:"previousTotalRevenue"`
	PreviousTotalOrders               int     `json:"previousTotalOrders"`
	PreviousAverageOrderValue         float64 `json:"previousAverageOrderValue"`
	PreviousConversionRate            float64 `json:"previousConversionRate"`
	PreviousReturningCustomersPercent float64 `json:"previousReturningCustomersPercent"`
}

// FunnelStage is one step of the conversion funnel fixture.
type FunnelStage struct {
	Stage string  `json:"stage"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// ConversionFunnel returns the fixed funnel dataset. Counts are monotonically
// non-increasing by construction.
func ConversionFunnel() []FunnelStage {
	return []FunnelStage{
		{Stage: "Visits", Value: 45000, Color: "chart-1"},
		{Stage: "Add to Cart", Value: 12500, Color: "chart-2"},
		{Stage: "Checkout", Value: 4200, Color: "chart-3"},
		{Stage: "Purchase", Value: 1540, Color: "chart-4"},
	}
}

// ComputeAnalytics derives KPI figures from the generated collections. It is
// a pure function: no side effects, no retained references.
//
// Average order value is defined as 0 for an empty order collection so the
// result is always finite. Conversion rate is simulated; returning-customer
// percentage is real (returning / total, one decimal).
func ComputeAnalytics(orders []Order, customers []Customer) AnalyticsSummary {
	var totalRevenue float64
	for _, o := range orders {
		totalRevenue += o.Amount
	}
	totalOrders := len(orders)

	averageOrderValue := 0.0
	if totalOrders > 0 {
		averageOrderValue = totalRevenue / float64(totalOrders)
	}

	returningPct := 0.0
	if len(customers) > 0 {
		returning := 0
		for _, c := range customers {
			if c.IsReturning {
				returning++
			}
		}
		returningPct = float64(returning) / float64(len(customers)) * 100
	}

	return AnalyticsSummary{
		TotalRevenue:              round2(totalRevenue),
		TotalOrders:               totalOrders,
		AverageOrderValue:         round2(averageOrderValue),
		ConversionRate:            simulatedConversionRate,
		ReturningCustomersPercent: round1(returningPct),

		PreviousTotalRevenue:              round2(totalRevenue * previousRevenueRatio),
		PreviousTotalOrders:               int(math.Floor(float64(totalOrders) * previousOrdersRatio)),
		PreviousAverageOrderValue:         round2(averageOrderValue * previousAOVRatio),
		PreviousConversionRate:            simulatedPreviousConversionRate,
		PreviousReturningCustomersPercent: round1(returningPct * previousReturningRatio),
	}
}

// OrderStatusCounts tallies orders per fulfillment state for the stat row on
// the orders page.
type OrderStatusCounts struct {
	Total      int `json:"total"`
	Delivered  int `json:"delivered"`
	Shipped    int `json:"shipped"`
	Processing int `json:"processing"`
	Cancelled  int `json:"cancelled"`
}

// CountOrderStatuses computes the per-status tally over the full collection.
func CountOrderStatuses(orders []Order) OrderStatusCounts {
	counts := OrderStatusCounts{Total: len(orders)}
	for _, o := range orders {
		switch o.OrderStatus {
		case OrderDelivered:
			counts.Delivered++
		case OrderShipped:
			counts.Shipped++
		case OrderProcessing:
			counts.Processing++
		case OrderCancelled:
			counts.Cancelled++
		}
	}
	return counts
}

// CustomerStats aggregates the customer page stat cards.
type CustomerStats struct {
	Total         int     `json:"total"`
	Returning     int     `json:"returning"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AverageOrders float64 `json:"averageOrders"`
}

// ComputeCustomerStats aggregates over the full customer collection.
func ComputeCustomerStats(customers []Customer) CustomerStats {
	stats := CustomerStats{Total: len(customers)}
	var orderSum int
	for _, c := range customers {
		if c.IsReturning {
			stats.Returning++
		}
		stats.TotalRevenue += c.TotalSpent
		orderSum += c.TotalOrders
	}
	stats.TotalRevenue = round2(stats.TotalRevenue)
	if stats.Total > 0 {
		stats.AverageOrders = round1(float64(orderSum) / float64(stats.Total))
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
