package commerce

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

const (
	orderCount    = 150
	customerCount = 50
	dailyPoints   = 30
	weeklyPoints  = 12
	monthlyPoints = 12
)

var customerNames = []string{
	"Emma Wilson", "James Chen", "Sofia Rodriguez", "Marcus Johnson", "Olivia Brown",
	"Liam Williams", "Ava Martinez", "Noah Davis", "Isabella Garcia", "Ethan Miller",
	"Mia Anderson", "Lucas Taylor", "Charlotte Thomas", "Mason Jackson", "Amelia White",
	"Oliver Harris", "Harper Martin", "Elijah Thompson", "Evelyn Lee", "William Clark",
}

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// Generator produces the synthetic order/customer/sales collections that
// stand in for a real data source. Cardinalities are fixed; values are
// randomized per run unless a seeded source is supplied.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// GeneratorOption customizes generator behavior.
type GeneratorOption func(*Generator)

// WithRandSource injects a seeded source so tests get reproducible values.
func WithRandSource(src rand.Source) GeneratorOption {
	return func(g *Generator) {
		g.rng = rand.New(src)
	}
}

// WithClock overrides the clock the generator anchors date ranges to.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator builds a generator with safe defaults.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Orders generates 150 orders sorted descending by order date. Payment status
// constrains order status at generation time only.
func (g *Generator) Orders() []Order {
	categories := CategoryNames()
	payments := PaymentStatuses()
	start := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	end := g.now().UTC()
	if !end.After(start) {
		end = start.Add(24 * time.Hour)
	}

	orders := make([]Order, orderCount)
	for i := range orders {
		name := customerNames[i%len(customerNames)]
		payment := payments[g.rng.Intn(len(payments))]
		orders[i] = Order{
			ID:            g.orderID(),
			CustomerID:    customerID(i + 1),
			CustomerName:  name,
			CustomerEmail: emailFor(name),
			Category:      categories[g.rng.Intn(len(categories))],
			OrderDate:     g.dateBetween(start, end),
			Amount:        round2(g.rng.Float64()*500 + 20),
			PaymentStatus: payment,
			OrderStatus:   g.orderStatusFor(payment),
		}
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderDate.After(orders[j].OrderDate)
	})
	return orders
}

func (g *Generator) orderStatusFor(payment PaymentStatus) OrderStatus {
	switch payment {
	case PaymentPaid:
		fulfilled := []OrderStatus{OrderDelivered, OrderShipped, OrderProcessing}
		return fulfilled[g.rng.Intn(len(fulfilled))]
	case PaymentFailed, PaymentRefunded:
		return OrderCancelled
	default:
		return OrderProcessing
	}
}

// Customers generates 50 customer profiles. IsReturning is derived from the
// order count, never stored independently.
func (g *Generator) Customers() []Customer {
	customers := make([]Customer, customerCount)
	for i := range customers {
		first := firstName(customerNames[i%len(customerNames)])
		last := lastName(customerNames[(i/len(customerNames)+i)%len(customerNames)])
		name := first + " " + last
		totalOrders := g.rng.Intn(15) + 1
		customers[i] = Customer{
			ID:          customerID(i + 1),
			Name:        name,
			Email:       emailFor(name),
			TotalOrders: totalOrders,
			TotalSpent:  round2((g.rng.Float64()*2000 + 50) * float64(totalOrders)),
			IsReturning: totalOrders > 1,
			JoinedDate: time.Date(2023, time.Month(g.rng.Intn(12)+1), g.rng.Intn(28)+1,
				0, 0, 0, 0, time.UTC),
		}
	}
	return customers
}

// Sales generates the three fixed-granularity series: 30 daily points with a
// weekend dip, 12 weekly buckets, and 12 monthly buckets with a mild upward
// trend. Previous-period values are synthesized comparison fixtures.
func (g *Generator) Sales() SalesSeries {
	return SalesSeries{
		Daily:   g.dailySales(),
		Weekly:  g.weeklySales(),
		Monthly: g.monthlySales(),
	}
}

func (g *Generator) dailySales() []SalesPoint {
	today := g.now().UTC()
	points := make([]SalesPoint, 0, dailyPoints)
	for i := dailyPoints - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		baseRevenue := 8000 + g.rng.Float64()*4000
		baseOrders := 40 + g.rng.Intn(30)

		weekendFactor := 1.0
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendFactor = 0.8
		}

		points = append(points, SalesPoint{
			Label:           day.Format("2006-01-02"),
			Revenue:         float64(int(baseRevenue * weekendFactor)),
			Orders:          int(float64(baseOrders) * weekendFactor),
			PreviousRevenue: float64(int((baseRevenue*0.85 + g.rng.Float64()*1000) * weekendFactor)),
			PreviousOrders:  int((float64(baseOrders)*0.85 + g.rng.Float64()*10) * weekendFactor),
		})
	}
	return points
}

func (g *Generator) weeklySales() []SalesPoint {
	points := make([]SalesPoint, 0, weeklyPoints)
	for i := weeklyPoints - 1; i >= 0; i-- {
		revenue := 50000 + g.rng.Float64()*20000
		orders := 280 + g.rng.Intn(100)
		points = append(points, SalesPoint{
			Label:           fmt.Sprintf("Week %d", weeklyPoints-i),
			Revenue:         float64(int(revenue)),
			Orders:          orders,
			PreviousRevenue: float64(int(revenue * 0.88)),
			PreviousOrders:  int(float64(orders) * 0.88),
		})
	}
	return points
}

func (g *Generator) monthlySales() []SalesPoint {
	points := make([]SalesPoint, 0, monthlyPoints)
	for i, label := range monthLabels {
		revenue := 180000 + g.rng.Float64()*80000 + float64(i*5000)
		orders := 1000 + g.rng.Intn(400) + i*50
		points = append(points, SalesPoint{
			Label:           label,
			Revenue:         float64(int(revenue)),
			Orders:          orders,
			PreviousRevenue: float64(int(revenue * 0.82)),
			PreviousOrders:  int(float64(orders) * 0.82),
		})
	}
	return points
}

// orderID draws the suffix from the generator's own source so a seeded
// generator emits the same IDs on every run.
func (g *Generator) orderID() string {
	return fmt.Sprintf("ORD-%09X", g.rng.Int63n(1<<36))
}

func (g *Generator) dateBetween(start, end time.Time) time.Time {
	span := end.Unix() - start.Unix()
	at := time.Unix(start.Unix()+g.rng.Int63n(span), 0).UTC()
	return at.Truncate(24 * time.Hour)
}

func customerID(n int) string {
	return fmt.Sprintf("CUS-%04d", n)
}

func emailFor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@email.com"
}

func firstName(full string) string {
	if idx := strings.IndexByte(full, ' '); idx > 0 {
		return full[:idx]
	}
	return full
}

func lastName(full string) string {
	if idx := strings.LastIndexByte(full, ' '); idx >= 0 {
		return full[idx+1:]
	}
	return full
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
