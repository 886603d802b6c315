package admin

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code:        WidgetKPICards,
		Name:        "KPI Cards",
		Description: "Headline revenue and order metrics with period deltas.",
		Category:    "stats",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetSalesChart,
		Name:        "Sales Overview",
		Description: "Revenue trend at daily, weekly or monthly granularity.",
		Category:    "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"granularity": map[string]any{
					"type":    "string",
					"enum":    []string{"daily", "weekly", "monthly"},
					"default": "daily",
				},
				"compare": map[string]any{
					"type":    "boolean",
					"default": false,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetCategoryRevenue,
		Name:        "Revenue by Category",
		Description: "Revenue share across product categories.",
		Category:    "charts",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetRecentOrders,
		Name:        "Recent Orders",
		Description: "Latest orders across all statuses.",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 25,
					"default": 5,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetOrderStatusRow,
		Name:        "Order Status Summary",
		Description: "Counts per fulfillment status.",
		Category:    "stats",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetOrdersTable,
		Name:        "Orders Table",
		Description: "Filterable, sortable, paginated order listing.",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"default": 1,
				},
				"sort_field": map[string]any{
					"type": "string",
					"enum": []string{"orderDate", "amount", "customerName"},
				},
				"sort_direction": map[string]any{
					"type": "string",
					"enum": []string{"asc", "desc"},
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetOrdersByMonth,
		Name:        "Orders by Month",
		Description: "Monthly order volume bars.",
		Category:    "charts",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetFunnel,
		Name:        "Conversion Funnel",
		Description: "Visitor to purchase drop-off stages.",
		Category:    "charts",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetCustomerStats,
		Name:        "Customer Statistics",
		Description: "Customer totals and returning share.",
		Category:    "stats",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code:        WidgetCustomersTable,
		Name:        "Customers Table",
		Description: "Searchable, paginated customer listing.",
		Category:    "tables",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"search": map[string]any{
					"type": "string",
				},
				"page": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"default": 1,
				},
			},
			"additionalProperties": false,
		},
	},
}

var defaultPageLayouts = []PageLayout{
	{
		Page: PageDashboard,
		Widgets: []WidgetInstance{
			{ID: "dashboard-kpis", DefinitionID: WidgetKPICards, Page: PageDashboard},
			{ID: "dashboard-sales", DefinitionID: WidgetSalesChart, Page: PageDashboard,
				Configuration: map[string]any{"granularity": "daily", "compare": true}},
			{ID: "dashboard-categories", DefinitionID: WidgetCategoryRevenue, Page: PageDashboard},
			{ID: "dashboard-recent", DefinitionID: WidgetRecentOrders, Page: PageDashboard,
				Configuration: map[string]any{"limit": 5}},
		},
	},
	{
		Page: PageOrders,
		Widgets: []WidgetInstance{
			{ID: "orders-status", DefinitionID: WidgetOrderStatusRow, Page: PageOrders},
			{ID: "orders-table", DefinitionID: WidgetOrdersTable, Page: PageOrders},
		},
	},
	{
		Page: PageAnalytics,
		Widgets: []WidgetInstance{
			{ID: "analytics-kpis", DefinitionID: WidgetKPICards, Page: PageAnalytics},
			{ID: "analytics-sales", DefinitionID: WidgetSalesChart, Page: PageAnalytics,
				Configuration: map[string]any{"granularity": "monthly", "compare": true}},
			{ID: "analytics-volume", DefinitionID: WidgetOrdersByMonth, Page: PageAnalytics},
			{ID: "analytics-funnel", DefinitionID: WidgetFunnel, Page: PageAnalytics},
			{ID: "analytics-categories", DefinitionID: WidgetCategoryRevenue, Page: PageAnalytics},
		},
	},
	{
		Page: PageCustomers,
		Widgets: []WidgetInstance{
			{ID: "customers-stats", DefinitionID: WidgetCustomerStats, Page: PageCustomers},
			{ID: "customers-table", DefinitionID: WidgetCustomersTable, Page: PageCustomers},
		},
	},
}

// DefaultWidgetDefinitions returns copies of the built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

// DefaultPageLayouts returns copies of the built-in page layouts.
func DefaultPageLayouts() []PageLayout {
	out := make([]PageLayout, len(defaultPageLayouts))
	for i, layout := range defaultPageLayouts {
		widgets := make([]WidgetInstance, len(layout.Widgets))
		copy(widgets, layout.Widgets)
		out[i] = PageLayout{Page: layout.Page, Widgets: widgets}
	}
	return out
}
