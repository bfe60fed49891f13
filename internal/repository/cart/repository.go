package cart

import (
	"context"

	"storefront/internal/domain"
)

// Repository persists one cart document per user. Reads attach a product
// summary to every line.
type Repository interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// Save writes the cart and its lines as a whole, replacing what was stored.
	Save(ctx context.Context, cart *domain.Cart) error
	DeleteByUser(ctx context.Context, userID string) error
}
