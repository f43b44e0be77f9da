// Package dashboard aggregates the admin overview numbers.
package dashboard

import (
	"context"

	"shopfront/internal/logger"
	"shopfront/internal/order"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Counter interface {
	Count(ctx context.Context) (int, error)
}

type OrderStats interface {
	Stats(ctx context.Context) (order.Stats, error)
}

type Stats struct {
	TotalProducts   int
	TotalCategories int
	TotalOrders     int
	TotalRevenue    decimal.Decimal
	TotalCustomers  int
	OrdersByStatus  map[order.Status]int
}

type Service struct {
	products   Counter
	categories Counter
	orders     OrderStats
}

func NewService(products, categories Counter, orders OrderStats) *Service {
	return &Service{products: products, categories: categories, orders: orders}
}

// Load runs the three aggregate queries concurrently. Any failure fails the
// whole load.
func (s *Service) Load(ctx context.Context) (Stats, error) {
	var (
		stats      Stats
		orderStats order.Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.products.Count(gctx)
		stats.TotalProducts = n
		return err
	})
	g.Go(func() error {
		n, err := s.categories.Count(gctx)
		stats.TotalCategories = n
		return err
	})
	g.Go(func() error {
		var err error
		orderStats, err = s.orders.Stats(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		logger.FromCtx(ctx).Error("failed to load dashboard",
			zap.String("layer", "dashboard"),
			zap.Error(err),
		)
		return Stats{}, err
	}

	stats.TotalOrders = orderStats.TotalOrders
	stats.TotalRevenue = orderStats.TotalRevenue
	stats.TotalCustomers = orderStats.TotalCustomers
	stats.OrdersByStatus = make(map[order.Status]int, len(order.Statuses()))
	for _, st := range order.Statuses() {
		stats.OrdersByStatus[st] = orderStats.ByStatus[st]
	}
	return stats, nil
}

// AverageOrderValue is revenue divided by orders, zero when there are none.
func (s Stats) AverageOrderValue() decimal.Decimal {
	if s.TotalOrders == 0 {
		return decimal.Zero
	}
	return s.TotalRevenue.Div(decimal.NewFromInt(int64(s.TotalOrders))).Round(2)
}
