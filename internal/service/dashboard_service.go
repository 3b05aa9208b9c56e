package service

import (
	"context"
	"time"

	"sabor-express/internal/domain"
)

type DashboardSummary struct {
	TotalOrders    int     `json:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCustomers int     `json:"total_customers"`
	TotalProducts  int     `json:"total_products"`
}

type DayStat struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type DashboardOverview struct {
	Summary            DashboardSummary `json:"summary"`
	OrdersByDay        []DayStat        `json:"orders_by_day"`
	StatusDistribution []StatusCount    `json:"status_distribution"`
}

// DashboardService derives display aggregates from the current order and
// product collections. It keeps no state of its own.
type DashboardService struct {
	orders   OrderRepository
	products ProductRepository
}

func NewDashboardService(orders OrderRepository, products ProductRepository) *DashboardService {
	return &DashboardService{orders: orders, products: products}
}

func (s *DashboardService) Overview(ctx context.Context) (*DashboardOverview, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.List(ctx, true)
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		Summary:            Summarize(orders, products),
		OrdersByDay:        OrdersByDay(orders, time.Now()),
		StatusDistribution: StatusDistribution(orders),
	}, nil
}

// Summarize computes the headline numbers. Revenue sums every order including
// cancelled ones; customer count is distinct customer names, an approximation
// since names are not a stable identity.
func Summarize(orders []domain.Order, products []domain.Product) DashboardSummary {
	var revenue float64
	customers := make(map[string]bool)
	for _, order := range orders {
		revenue += order.Total
		customers[order.CustomerName] = true
	}

	var available int
	for _, product := range products {
		if product.Available {
			available++
		}
	}

	return DashboardSummary{
		TotalOrders:    len(orders),
		TotalRevenue:   revenue,
		TotalCustomers: len(customers),
		TotalProducts:  available,
	}
}

// OrdersByDay buckets orders over the last 7 calendar days inclusive of now,
// oldest day first, each labeled with its short weekday name.
func OrdersByDay(orders []domain.Order, now time.Time) []DayStat {
	stats := make([]DayStat, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		stat := DayStat{Name: day.Weekday().String()[:3]}
		for _, order := range orders {
			created := order.CreatedAt
			if created.Year() == day.Year() && created.Month() == day.Month() && created.Day() == day.Day() {
				stat.Orders++
				stat.Revenue += order.Total
			}
		}
		stats = append(stats, stat)
	}
	return stats
}

// StatusDistribution counts orders per lifecycle status. Every status appears
// in the result, zero counts included, so the values always sum to the order
// count.
func StatusDistribution(orders []domain.Order) []StatusCount {
	counts := make(map[domain.OrderStatus]int, len(domain.OrderStatuses))
	for _, order := range orders {
		counts[order.Status]++
	}

	distribution := make([]StatusCount, 0, len(domain.OrderStatuses))
	for _, status := range domain.OrderStatuses {
		distribution = append(distribution, StatusCount{
			Name:  string(status),
			Value: counts[status],
		})
	}
	return distribution
}

var _ DashboardServiceInterface = (*DashboardService)(nil)
