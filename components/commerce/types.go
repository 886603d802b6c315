package commerce

import (
	"fmt"
	"time"
)

// PaymentStatus is the closed set of payment outcomes an order can carry.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "Paid"
	PaymentPending  PaymentStatus = "Pending"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// PaymentStatuses lists every payment status in display order.
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentPaid, PaymentPending, PaymentFailed, PaymentRefunded}
}

// Valid reports whether the value is a member of the closed set.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// ParsePaymentStatus maps user input onto the closed variant set.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	s := PaymentStatus(value)
	if !s.Valid() {
		return "", fmt.Errorf("commerce: unknown payment status %q", value)
	}
	return s, nil
}

// OrderStatus is the closed set of fulfillment states.
type OrderStatus string

const (
	OrderDelivered  OrderStatus = "Delivered"
	OrderShipped    OrderStatus = "Shipped"
	OrderProcessing OrderStatus = "Processing"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every order status in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderDelivered, OrderShipped, OrderProcessing, OrderCancelled}
}

// Valid reports whether the value is a member of the closed set.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderDelivered, OrderShipped, OrderProcessing, OrderCancelled:
		return true
	}
	return false
}

// ParseOrderStatus maps user input onto the closed variant set.
func ParseOrderStatus(value string) (OrderStatus, error) {
	s := OrderStatus(value)
	if !s.Valid() {
		return "", fmt.Errorf("commerce: unknown order status %q", value)
	}
	return s, nil
}

// Role restricts dashboard users to the two supported roles.
type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleManager Role = "Manager"
)

// Valid reports whether the role is supported.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

// ParseRole maps user input onto the closed role set.
func ParseRole(value string) (Role, error) {
	r := Role(value)
	if !r.Valid() {
		return "", fmt.Errorf("commerce: unknown role %q", value)
	}
	return r, nil
}

// Theme selects the visual mode of the dashboard shell.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether the theme is supported.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// User identifies the signed-in operator. There is no identity provider
// behind it; any syntactically valid user is accepted by Login.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Order is a single generated order. Orders are created once at startup and
// never mutated; the pipeline treats them as read-only rows.
//
// The generator couples payment and order status (Paid orders ship, Failed and
// Refunded payments cancel, Pending payments stay in Processing) but the query
// pipeline tolerates any combination.
type Order struct {
	ID            string        `json:"id"`
	CustomerID    string        `json:"customerId"`
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	Category      string        `json:"category"`
	OrderDate     time.Time     `json:"orderDate"`
	Amount        float64       `json:"amount"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	OrderStatus   OrderStatus   `json:"orderStatus"`
}

// Customer is a generated customer profile, immutable after generation.
type Customer struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	TotalOrders int       `json:"totalOrders"`
	TotalSpent  float64   `json:"totalSpent"`
	IsReturning bool      `json:"isReturning"`
	JoinedDate  time.Time `json:"joinedDate"`
}

// SalesPoint is one bucket of the sales time series. Previous-period values
// are synthesized by the generator for comparison charts; they are fixtures,
// not historical data.
type SalesPoint struct {
	Label           string  `json:"date"`
	Revenue         float64 `json:"revenue"`
	Orders          int     `json:"orders"`
	PreviousRevenue float64 `json:"previousRevenue"`
	PreviousOrders  int     `json:"previousOrders"`
}

// SalesSeries bundles the three fixed-granularity series produced at startup.
type SalesSeries struct {
	Daily   []SalesPoint
	Weekly  []SalesPoint
	Monthly []SalesPoint
}
