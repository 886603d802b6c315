package commerce

// CategorySummary is the fixture backing the revenue-by-category pie chart.
// Counts and revenue are demo figures, not aggregates over the generated
// order collection.
type CategorySummary struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
	Color   string  `json:"color"`
}

var categorySummaries = []CategorySummary{
	{Name: "Electronics", Orders: 1247, Revenue: 289450, Color: "chart-1"},
	{Name: "Clothing", Orders: 892, Revenue: 156780, Color: "chart-2"},
	{Name: "Home & Garden", Orders: 654, Revenue: 98230, Color: "chart-3"},
	{Name: "Sports", Orders: 423, Revenue: 67890, Color: "chart-4"},
	{Name: "Books", Orders: 312, Revenue: 24560, Color: "chart-5"},
}

// CategorySummaries returns the category fixture set.
func CategorySummaries() []CategorySummary {
	out := make([]CategorySummary, len(categorySummaries))
	copy(out, categorySummaries)
	return out
}

// CategoryNames returns the closed category set used by generators and the
// category filter.
func CategoryNames() []string {
	names := make([]string, len(categorySummaries))
	for i, c := range categorySummaries {
		names[i] = c.Name
	}
	return names
}

// KnownCategory reports whether name belongs to the fixed category set.
func KnownCategory(name string) bool {
	for _, c := range categorySummaries {
		if c.Name == name {
			return true
		}
	}
	return false
}
