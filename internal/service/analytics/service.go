package analytics

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	analyticsrepo "storefront/internal/repository/analytics"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	topCategories = 5
	recentOrders  = 5
)

type Service struct {
	repo analyticsrepo.Repository
}

func New(repo analyticsrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Snapshot gathers the store-wide dashboard figures concurrently.
func (s *Service) Snapshot(ctx context.Context) (*domain.Analytics, error) {
	var (
		totals   analyticsrepo.Totals
		cats     []domain.CategorySales
		recent   []domain.RecentOrder
		statuses []domain.StatusCount
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = s.repo.Totals(ctx)
		return wrap("totals", err)
	})
	g.Go(func() (err error) {
		cats, err = s.repo.TopCategories(ctx, topCategories)
		return wrap("categories", err)
	})
	g.Go(func() (err error) {
		recent, err = s.repo.RecentOrders(ctx, recentOrders)
		return wrap("recent orders", err)
	})
	g.Go(func() (err error) {
		statuses, err = s.repo.StatusCounts(ctx)
		return wrap("status counts", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Analytics{
		Overview: domain.AnalyticsOverview{
			TotalOrders:       totals.Orders,
			TotalRevenue:      totals.Revenue,
			TotalUsers:        totals.Users,
			TotalProducts:     totals.Products,
			AverageOrderValue: AverageOrderValue(totals.Revenue, totals.Orders),
		},
		Categories:   cats,
		RecentOrders: recent,
		OrderStatus:  statuses,
	}, nil
}

// AverageOrderValue is revenue per order rounded to cents; zero without orders.
func AverageOrderValue(revenue decimal.Decimal, orders int) decimal.Decimal {
	if orders <= 0 {
		return decimal.Zero
	}
	return revenue.Div(decimal.NewFromInt(int64(orders))).Round(2)
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("analytics %s: %w", what, err)
}
