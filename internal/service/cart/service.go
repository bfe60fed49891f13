package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"storefront/internal/domain"
	"storefront/internal/pricing"
)

type Service struct {
	repo        cartRepo
	productRepo productRepo
	locks       sync.Map
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartRepo, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// Summary is the checkout preview for the current cart.
type Summary struct {
	TotalItems int `json:"totalItems"`
	pricing.Breakdown
}

// lock serializes mutations of one user's cart inside this process.
func (s *Service) lock(userID string) func() {
	v, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Cart")
		}
		return nil, err
	}
	return cart, nil
}

// AddItem adds qty units of productID, creating the cart on first use.
func (s *Service) AddItem(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("Product ID is required")
	}
	if qty < 1 {
		return nil, domain.Invalid("Quantity must be at least 1")
	}
	product, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}

	defer s.lock(userID)()

	cart, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		cart = domain.NewCart(userID)
	}
	if err := cart.AddItem(*product, qty); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity overwrites the quantity of a line already in the cart.
// Zero removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, qty int) (*domain.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("Product ID and quantity are required")
	}
	if qty < 0 {
		return nil, domain.Invalid("Quantity cannot be negative")
	}

	defer s.lock(userID)()

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !cart.Contains(productID) {
		return nil, domain.NotFound("Item in cart")
	}

	target := domain.Product{ID: productID}
	if qty > 0 {
		p, err := s.product(ctx, productID)
		if err != nil {
			return nil, err
		}
		target = *p
	}
	if err := cart.SetQuantity(target, qty); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a line; removing a product that is not in the cart is a no-op.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, domain.Invalid("Product ID is required")
	}

	defer s.lock(userID)()

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *Service) Clear(ctx context.Context, userID string) (*domain.Cart, error) {
	defer s.lock(userID)()

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Clear()
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Summary prices the current cart with the same policy order placement uses.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Summary{TotalItems: cart.TotalItems, Breakdown: pricing.Quote(cart.TotalPrice)}, nil
}

func (s *Service) product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Product")
		}
		return nil, err
	}
	return p, nil
}
