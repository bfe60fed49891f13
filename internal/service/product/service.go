package product

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/domain"
	productrepo "storefront/internal/repository/product"
)

const (
	DefaultLimit = 12
	MaxLimit     = 100
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Normalize applies paging defaults and the sort allow-list.
func Normalize(f domain.ProductFilter) domain.ProductFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	switch {
	case f.Limit < 1:
		f.Limit = DefaultLimit
	case f.Limit > MaxLimit:
		f.Limit = MaxLimit
	}
	switch f.Sort {
	case domain.SortCreatedAt, domain.SortPrice, domain.SortRating, domain.SortName:
	default:
		f.Sort = domain.SortCreatedAt
	}
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// List returns one page of active products.
func (s *Service) List(ctx context.Context, filter domain.ProductFilter) (*domain.ProductPage, error) {
	filter = Normalize(filter)
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domain.Invalid("minPrice cannot exceed maxPrice")
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &domain.ProductPage{
		Products:   products,
		Pagination: domain.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

// Get returns an active product; inactive products are reported as not found.
func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product")
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, domain.NotFound("Product")
	}
	return p, nil
}

// Upsert validates and stores a product keyed by SKU.
func (s *Service) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, p)
}

func (s *Service) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	return s.repo.AdjustStock(ctx, id, delta)
}

// Validate checks the fields every stored product must carry.
func Validate(p domain.Product) error {
	var fields []string
	if strings.TrimSpace(p.Name) == "" {
		fields = append(fields, "Product name is required")
	} else if len([]rune(p.Name)) > 200 {
		fields = append(fields, "Product name cannot be more than 200 characters")
	}
	if strings.TrimSpace(p.SKU) == "" {
		fields = append(fields, "SKU is required")
	}
	if p.Price.IsNegative() {
		fields = append(fields, "Price cannot be negative")
	}
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		fields = append(fields, "Original price cannot be negative")
	}
	if !p.Category.Valid() {
		fields = append(fields, "Category is invalid")
	}
	if p.Stock < 0 {
		fields = append(fields, "Stock cannot be negative")
	}
	if p.Rating < 0 || p.Rating > 5 {
		fields = append(fields, "Rating must be between 0 and 5")
	}
	if len(fields) > 0 {
		return domain.Invalid("Validation failed", fields...)
	}
	return nil
}
