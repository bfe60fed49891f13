package category

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository/category"
)

type Service struct {
	repo category.Repository
}

func New(repo category.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.CatalogCategory, error) {
	return s.repo.ListActive(ctx)
}

func (s *Service) Upsert(ctx context.Context, c domain.CatalogCategory) (*domain.CatalogCategory, error) {
	if !c.Name.Valid() {
		return nil, domain.Invalid("Category is invalid", string(c.Name))
	}
	return s.repo.Upsert(ctx, c)
}
