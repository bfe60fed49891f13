package product

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the catalog store.
type Repository interface {
	// List returns one page of active products matching filter and the total
	// number of matches.
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
}
