package commerce

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is the fixed number of rows per table page.
const PageSize = 10

// FilterAll is the sentinel meaning "do not filter on this dimension".
const FilterAll = "all"

// DateRange selects the order date window.
type DateRange string

const (
	RangeToday      DateRange = "today"
	RangeLast7Days  DateRange = "last7days"
	RangeLast30Days DateRange = "last30days"
	RangeCustom     DateRange = "custom"
)

// Valid reports whether the selector is a member of the closed set.
func (r DateRange) Valid() bool {
	switch r {
	case RangeToday, RangeLast7Days, RangeLast30Days, RangeCustom:
		return true
	}
	return false
}

// ParseDateRange maps user input onto the closed selector set.
func ParseDateRange(value string) (DateRange, error) {
	r := DateRange(value)
	if !r.Valid() {
		return "", fmt.Errorf("commerce: unknown date range %q", value)
	}
	return r, nil
}

// SortField is the column the orders table sorts on.
type SortField string

const (
	SortByOrderDate    SortField = "orderDate"
	SortByAmount       SortField = "amount"
	SortByCustomerName SortField = "customerName"
)

// Valid reports whether the field is sortable.
func (f SortField) Valid() bool {
	switch f {
	case SortByOrderDate, SortByAmount, SortByCustomerName:
		return true
	}
	return false
}

// SortDirection orders rows ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort captures the active sort column and direction.
type Sort struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort matches the initial table state: newest orders first.
func DefaultSort() Sort {
	return Sort{Field: SortByOrderDate, Direction: SortDesc}
}

// Toggle applies the header-click rule: selecting the active field flips
// direction, selecting a new field resets direction to descending.
func (s Sort) Toggle(field SortField) Sort {
	if !field.Valid() {
		return s
	}
	if s.Field == field {
		if s.Direction == SortAsc {
			s.Direction = SortDesc
		} else {
			s.Direction = SortAsc
		}
		return s
	}
	return Sort{Field: field, Direction: SortDesc}
}

// Filters is the full filter state evaluated by the order pipeline.
//
// Custom bounds are only consulted when Range is RangeCustom; presets leave
// previously stored bounds in place but ignore them.
type Filters struct {
	Range         DateRange  `json:"dateRange"`
	CustomStart   *time.Time `json:"customDateStart"`
	CustomEnd     *time.Time `json:"customDateEnd"`
	Category      string     `json:"categoryFilter"`
	OrderStatus   string     `json:"orderStatusFilter"`
	PaymentStatus string     `json:"paymentStatusFilter"`
	Search        string     `json:"searchQuery"`
}

// DefaultFilters returns the startup filter state.
func DefaultFilters() Filters {
	return Filters{
		Range:         RangeLast30Days,
		Category:      FilterAll,
		OrderStatus:   FilterAll,
		PaymentStatus: FilterAll,
	}
}

// Validate rejects filter values outside the closed variant sets so an
// unrecognized value fails loudly instead of silently matching nothing.
func (f Filters) Validate() error {
	if !f.Range.Valid() {
		return fmt.Errorf("commerce: unknown date range %q", f.Range)
	}
	if f.OrderStatus != FilterAll && !OrderStatus(f.OrderStatus).Valid() {
		return fmt.Errorf("commerce: unknown order status filter %q", f.OrderStatus)
	}
	if f.PaymentStatus != FilterAll && !PaymentStatus(f.PaymentStatus).Valid() {
		return fmt.Errorf("commerce: unknown payment status filter %q", f.PaymentStatus)
	}
	return nil
}

// Window resolves the date range into concrete inclusive bounds, anchored to
// the supplied clock. Absent custom bounds widen to epoch start / end of
// today instead of excluding every row.
func (f Filters) Window(now time.Time) (start, end time.Time) {
	end = endOfDay(now)
	switch f.Range {
	case RangeToday:
		return startOfDay(now), end
	case RangeLast7Days:
		return end.AddDate(0, 0, -7), end
	case RangeCustom:
		start = time.Time{}
		if f.CustomStart != nil {
			start = startOfDay(*f.CustomStart)
		}
		if f.CustomEnd != nil {
			end = endOfDay(*f.CustomEnd)
		}
		return start, end
	default:
		// last30days doubles as the fallback window.
		return end.AddDate(0, 0, -30), end
	}
}

func (f Filters) matches(o Order, start, end time.Time) bool {
	if o.OrderDate.Before(start) || o.OrderDate.After(end) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(o.ID), q) &&
			!strings.Contains(strings.ToLower(o.CustomerName), q) {
			return false
		}
	}
	if f.Category != FilterAll && o.Category != f.Category {
		return false
	}
	if f.OrderStatus != FilterAll && string(o.OrderStatus) != f.OrderStatus {
		return false
	}
	if f.PaymentStatus != FilterAll && string(o.PaymentStatus) != f.PaymentStatus {
		return false
	}
	return true
}

// OrderPage is the paged view consumed by the orders table.
type OrderPage struct {
	Rows       []Order `json:"rows"`
	TotalCount int     `json:"totalCount"`
	TotalPages int     `json:"totalPages"`
	Page       int     `json:"page"`
}

// ViewOrders filters, sorts, and paginates the order collection against the
// current wall clock. See ViewOrdersAt for the clock-injected variant.
func ViewOrders(orders []Order, filters Filters, sortState Sort, page int) OrderPage {
	return ViewOrdersAt(orders, filters, sortState, page, time.Now())
}

// ViewOrdersAt recomputes the visible page from scratch. An order passes the
// filter iff it satisfies the date window, the free-text search (order id or
// customer name, case-insensitive), and the three categorical filters. The
// sort is stable so ties keep their generated relative order. Page indexes
// are 1-based and clamp at the boundaries; an empty result is a valid page
// with TotalPages 1.
func ViewOrdersAt(orders []Order, filters Filters, sortState Sort, page int, now time.Time) OrderPage {
	start, end := filters.Window(now)

	filtered := make([]Order, 0, len(orders))
	for _, o := range orders {
		if filters.matches(o, start, end) {
			filtered = append(filtered, o)
		}
	}

	sortOrders(filtered, sortState)

	totalCount := len(filtered)
	totalPages := pageCount(totalCount)
	page = clampPage(page, totalPages)

	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if lo > totalCount {
		lo = totalCount
	}
	if hi > totalCount {
		hi = totalCount
	}

	return OrderPage{
		Rows:       filtered[lo:hi],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
	}
}

func sortOrders(orders []Order, s Sort) {
	if !s.Field.Valid() {
		s = DefaultSort()
	}
	asc := s.Direction == SortAsc
	// Collators carry internal buffers, so each sort gets its own.
	names := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(orders, func(i, j int) bool {
		var less bool
		switch s.Field {
		case SortByAmount:
			if orders[i].Amount == orders[j].Amount {
				return false
			}
			less = orders[i].Amount < orders[j].Amount
		case SortByCustomerName:
			cmp := names.CompareString(orders[i].CustomerName, orders[j].CustomerName)
			if cmp == 0 {
				return false
			}
			less = cmp < 0
		default:
			if orders[i].OrderDate.Equal(orders[j].OrderDate) {
				return false
			}
			less = orders[i].OrderDate.Before(orders[j].OrderDate)
		}
		if asc {
			return less
		}
		return !less
	})
}

// CustomerPage is the paged view consumed by the customer list.
type CustomerPage struct {
	Rows       []Customer `json:"rows"`
	TotalCount int        `json:"totalCount"`
	TotalPages int        `json:"totalPages"`
	Page       int        `json:"page"`
}

// ViewCustomers applies the free-text predicate (name or email contains the
// query, case-insensitive) then paginates. No sort control is exposed.
func ViewCustomers(customers []Customer, query string, page int) CustomerPage {
	q := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			filtered = append(filtered, c)
		}
	}

	totalCount := len(filtered)
	totalPages := pageCount(totalCount)
	page = clampPage(page, totalPages)

	lo := (page - 1) * PageSize
	hi := lo + PageSize
	if lo > totalCount {
		lo = totalCount
	}
	if hi > totalCount {
		hi = totalCount
	}

	return CustomerPage{
		Rows:       filtered[lo:hi],
		TotalCount: totalCount,
		TotalPages: totalPages,
		Page:       page,
	}
}

func pageCount(totalCount int) int {
	pages := (totalCount + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
