package order

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MonthlyRevenue aggregates the orders created in one calendar month.
type MonthlyRevenue struct {
	Month   string // YYYY-MM
	Revenue decimal.Decimal
	Orders  int
}

// StatusTotal aggregates the orders currently in one status.
type StatusTotal struct {
	Status  Status
	Revenue decimal.Decimal
	Orders  int
}

// Statistics is the admin dashboard summary.
type Statistics struct {
	TotalOrders    int
	TotalRevenue   decimal.Decimal
	OrdersByStatus map[Status]int
	MonthlyRevenue []MonthlyRevenue
}

// Summarize builds the dashboard from per-status and per-month aggregates.
// Revenue is the sum of every order total regardless of status. Every
// known status is present, zero when no order has it; months are listed
// most recent first.
func Summarize(byStatus []StatusTotal, months []MonthlyRevenue) *Statistics {
	stats := &Statistics{
		TotalRevenue:   decimal.Zero,
		OrdersByStatus: make(map[Status]int, len(Statuses)),
		MonthlyRevenue: make([]MonthlyRevenue, len(months)),
	}
	for _, s := range Statuses {
		stats.OrdersByStatus[s] = 0
	}
	for _, t := range byStatus {
		stats.OrdersByStatus[t.Status] += t.Orders
		stats.TotalOrders += t.Orders
		stats.TotalRevenue = stats.TotalRevenue.Add(t.Revenue)
	}

	copy(stats.MonthlyRevenue, months)
	sort.Slice(stats.MonthlyRevenue, func(i, j int) bool {
		return stats.MonthlyRevenue[i].Month > stats.MonthlyRevenue[j].Month
	})
	return stats
}
