package commerce

import (
	"fmt"
	"testing"
	"time"
)

var queryNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func testOrder(id string, day time.Time, amount float64, name string) Order {
	return Order{
		ID:            id,
		CustomerID:    "CUS-0001",
		CustomerName:  name,
		CustomerEmail: emailFor(name),
		Category:      "Electronics",
		OrderDate:     day,
		Amount:        amount,
		PaymentStatus: PaymentPaid,
		OrderStatus:   OrderDelivered,
	}
}

func daysAgo(n int) time.Time {
	return queryNow.AddDate(0, 0, -n).Truncate(24 * time.Hour)
}

func TestViewOrdersFilterSoundness(t *testing.T) {
	orders := []Order{
		testOrder("ORD-AAA", daysAgo(1), 100, "Emma Wilson"),
		testOrder("ORD-BBB", daysAgo(5), 200, "James Chen"),
		testOrder("ORD-CCC", daysAgo(40), 300, "Sofia Rodriguez"),
	}
	orders[1].Category = "Books"
	orders[1].OrderStatus = OrderCancelled
	orders[1].PaymentStatus = PaymentRefunded

	filters := DefaultFilters()
	filters.Category = "Electronics"
	filters.OrderStatus = string(OrderDelivered)

	page := ViewOrdersAt(orders, filters, DefaultSort(), 1, queryNow)
	if page.TotalCount != 1 {
		t.Fatalf("expected single match, got %d", page.TotalCount)
	}
	row := page.Rows[0]
	if row.ID != "ORD-AAA" {
		t.Fatalf("expected ORD-AAA, got %s", row.ID)
	}
	// Every returned row must individually satisfy all predicates.
	start, end := filters.Window(queryNow)
	for _, o := range page.Rows {
		if !filters.matches(o, start, end) {
			t.Fatalf("row %s fails its own filter", o.ID)
		}
	}
}

func TestViewOrdersDateWindowExcludesOldRows(t *testing.T) {
	orders := []Order{
		testOrder("ORD-NEW", daysAgo(2), 100, "Emma Wilson"),
		testOrder("ORD-OLD", daysAgo(40), 100, "Emma Wilson"),
	}
	page := ViewOrdersAt(orders, DefaultFilters(), DefaultSort(), 1, queryNow)
	if page.TotalCount != 1 || page.Rows[0].ID != "ORD-NEW" {
		t.Fatalf("expected last30days to drop old row, got %+v", page.Rows)
	}

	filters := DefaultFilters()
	filters.Range = RangeToday
	page = ViewOrdersAt(orders, filters, DefaultSort(), 1, queryNow)
	if page.TotalCount != 0 {
		t.Fatalf("expected today window to match nothing, got %d", page.TotalCount)
	}
}

func TestViewOrdersSearchMatchesIDAndName(t *testing.T) {
	orders := []Order{
		testOrder("ORD-XYZ", daysAgo(1), 100, "Emma Wilson"),
		testOrder("ORD-ABC", daysAgo(1), 100, "James Chen"),
	}
	filters := DefaultFilters()
	filters.Search = "emma"
	page := ViewOrdersAt(orders, filters, DefaultSort(), 1, queryNow)
	if page.TotalCount != 1 || page.Rows[0].CustomerName != "Emma Wilson" {
		t.Fatalf("expected case-insensitive name match, got %+v", page.Rows)
	}

	filters.Search = "ord-abc"
	page = ViewOrdersAt(orders, filters, DefaultSort(), 1, queryNow)
	if page.TotalCount != 1 || page.Rows[0].ID != "ORD-ABC" {
		t.Fatalf("expected case-insensitive id match, got %+v", page.Rows)
	}
}

func TestViewOrdersCustomRangeFallbackBounds(t *testing.T) {
	orders := []Order{
		testOrder("ORD-ANCIENT", time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC), 10, "Emma Wilson"),
		testOrder("ORD-RECENT", daysAgo(1), 10, "James Chen"),
	}
	// Custom with neither bound resolves to the widest window, not an empty
	// one.
	filters := DefaultFilters()
	filters.Range = RangeCustom
	page := ViewOrdersAt(orders, filters, DefaultSort(), 1, queryNow)
	if page.TotalCount != 2 {
		t.Fatalf("expected open custom range to match everything, got %d", page.TotalCount)
	}

	end := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	filters.CustomEnd = &end
	page = ViewOrdersAt(orders, filters, DefaultSort(), 1, queryNow)
	if page.TotalCount != 1 || page.Rows[0].ID != "ORD-ANCIENT" {
		t.Fatalf("expected end-bounded custom range, got %+v", page.Rows)
	}
}

func TestViewOrdersPaginationInvariant(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 25, 30} {
		orders := make([]Order, total)
		for i := range orders {
			orders[i] = testOrder(fmt.Sprintf("ORD-%03d", i), daysAgo(1), float64(i), "Emma Wilson")
		}
		page := ViewOrdersAt(orders, DefaultFilters(), DefaultSort(), 1, queryNow)

		wantPages := (total + PageSize - 1) / PageSize
		if wantPages < 1 {
			wantPages = 1
		}
		if page.TotalPages != wantPages {
			t.Fatalf("total=%d: expected %d pages, got %d", total, wantPages, page.TotalPages)
		}

		for p := 1; p <= page.TotalPages; p++ {
			got := ViewOrdersAt(orders, DefaultFilters(), DefaultSort(), p, queryNow)
			wantLen := PageSize
			if p == page.TotalPages {
				if rem := total % PageSize; rem != 0 {
					wantLen = rem
				} else if total == 0 {
					wantLen = 0
				}
			}
			if len(got.Rows) != wantLen {
				t.Fatalf("total=%d page=%d: expected %d rows, got %d", total, p, wantLen, len(got.Rows))
			}
		}
	}
}

func TestViewOrdersPageClampsAtBoundaries(t *testing.T) {
	orders := []Order{testOrder("ORD-ONE", daysAgo(1), 10, "Emma Wilson")}
	page := ViewOrdersAt(orders, DefaultFilters(), DefaultSort(), 99, queryNow)
	if page.Page != 1 || len(page.Rows) != 1 {
		t.Fatalf("expected clamp to last page, got page=%d rows=%d", page.Page, len(page.Rows))
	}
	page = ViewOrdersAt(orders, DefaultFilters(), DefaultSort(), -3, queryNow)
	if page.Page != 1 {
		t.Fatalf("expected clamp to first page, got %d", page.Page)
	}
}

func TestViewOrdersEmptyResultEnvelope(t *testing.T) {
	orders := []Order{testOrder("ORD-ONE", daysAgo(1), 10, "Emma Wilson")}
	filters := DefaultFilters()
	filters.Search = "no-such-order"
	page := ViewOrdersAt(orders, filters, DefaultSort(), 1, queryNow)
	if len(page.Rows) != 0 || page.TotalCount != 0 || page.TotalPages != 1 {
		t.Fatalf("expected valid empty page, got %+v", page)
	}
}

func TestSortToggleReversesRows(t *testing.T) {
	orders := []Order{
		testOrder("ORD-A", daysAgo(3), 50, "Ava Martinez"),
		testOrder("ORD-B", daysAgo(1), 30, "Noah Davis"),
		testOrder("ORD-C", daysAgo(2), 70, "Emma Wilson"),
	}
	sortState := Sort{Field: SortByAmount, Direction: SortDesc}
	desc := ViewOrdersAt(orders, DefaultFilters(), sortState, 1, queryNow)
	asc := ViewOrdersAt(orders, DefaultFilters(), sortState.Toggle(SortByAmount), 1, queryNow)

	if len(desc.Rows) != len(asc.Rows) {
		t.Fatalf("row counts differ: %d vs %d", len(desc.Rows), len(asc.Rows))
	}
	for i := range desc.Rows {
		if desc.Rows[i].ID != asc.Rows[len(asc.Rows)-1-i].ID {
			t.Fatalf("toggle did not exactly reverse rows: %v vs %v", desc.Rows, asc.Rows)
		}
	}
}

func TestSortByCustomerNameCollatesAccentsAndCase(t *testing.T) {
	orders := []Order{
		testOrder("ORD-A", daysAgo(1), 10, "baker"),
		testOrder("ORD-B", daysAgo(2), 20, "Ávila"),
		testOrder("ORD-C", daysAgo(3), 30, "Cruz"),
	}
	page := ViewOrdersAt(orders, DefaultFilters(),
		Sort{Field: SortByCustomerName, Direction: SortAsc}, 1, queryNow)

	want := []string{"Ávila", "baker", "Cruz"}
	for i, name := range want {
		if page.Rows[i].CustomerName != name {
			t.Fatalf("expected %q at position %d, got %q", name, i, page.Rows[i].CustomerName)
		}
	}
}

func TestSortToggleNewFieldResetsToDescending(t *testing.T) {
	s := Sort{Field: SortByAmount, Direction: SortAsc}
	next := s.Toggle(SortByCustomerName)
	if next.Field != SortByCustomerName || next.Direction != SortDesc {
		t.Fatalf("expected new field descending, got %+v", next)
	}
}

func TestSortStabilityAmongTies(t *testing.T) {
	day := daysAgo(1)
	orders := []Order{
		testOrder("ORD-FIRST", day, 100, "Emma Wilson"),
		testOrder("ORD-SECOND", day, 100, "Emma Wilson"),
		testOrder("ORD-THIRD", day, 100, "Emma Wilson"),
	}
	page := ViewOrdersAt(orders, DefaultFilters(), Sort{Field: SortByAmount, Direction: SortAsc}, 1, queryNow)
	for i, want := range []string{"ORD-FIRST", "ORD-SECOND", "ORD-THIRD"} {
		if page.Rows[i].ID != want {
			t.Fatalf("expected stable order among ties, got %+v", page.Rows)
		}
	}
}

func TestFiltersValidateRejectsUnknownVariants(t *testing.T) {
	filters := DefaultFilters()
	if err := filters.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	filters.OrderStatus = "Teleported"
	if err := filters.Validate(); err == nil {
		t.Fatalf("expected unknown order status to be rejected")
	}
	filters = DefaultFilters()
	filters.Range = "yesterday"
	if err := filters.Validate(); err == nil {
		t.Fatalf("expected unknown date range to be rejected")
	}
}

func TestViewCustomersSearchAndPagination(t *testing.T) {
	customers := make([]Customer, 25)
	for i := range customers {
		customers[i] = Customer{
			ID:    customerID(i + 1),
			Name:  fmt.Sprintf("Customer %02d", i),
			Email: fmt.Sprintf("customer%02d@email.com", i),
		}
	}
	customers[3].Name = "Emma Wilson"
	customers[3].Email = "emma.wilson@email.com"

	page := ViewCustomers(customers, "", 3)
	if page.TotalPages != 3 || len(page.Rows) != 5 {
		t.Fatalf("expected 3 pages with 5 trailing rows, got pages=%d rows=%d", page.TotalPages, len(page.Rows))
	}

	page = ViewCustomers(customers, "EMMA", 1)
	if page.TotalCount != 1 || page.Rows[0].Name != "Emma Wilson" {
		t.Fatalf("expected case-insensitive customer match, got %+v", page.Rows)
	}

	page = ViewCustomers(customers, "nobody-here", 1)
	if len(page.Rows) != 0 || page.TotalPages != 1 {
		t.Fatalf("expected valid empty customer page, got %+v", page)
	}
}
