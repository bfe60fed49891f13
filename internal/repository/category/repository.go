package category

import (
	"context"

	"storefront/internal/domain"
)

type Repository interface {
	ListActive(ctx context.Context) ([]domain.CatalogCategory, error)
	Upsert(ctx context.Context, c domain.CatalogCategory) (*domain.CatalogCategory, error)
}
