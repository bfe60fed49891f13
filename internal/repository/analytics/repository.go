package analytics

import (
	"context"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

// Totals are the raw store-wide counters behind the overview.
type Totals struct {
	Orders   int
	Revenue  decimal.Decimal
	Users    int
	Products int
}

type Repository interface {
	Totals(ctx context.Context) (Totals, error)
	TopCategories(ctx context.Context, limit int) ([]domain.CategorySales, error)
	RecentOrders(ctx context.Context, limit int) ([]domain.RecentOrder, error)
	StatusCounts(ctx context.Context) ([]domain.StatusCount, error)
}
