package address

import (
	"context"

	"storefront/internal/domain"
)

// Repository stores the address book. Every operation is scoped to the owner;
// an address owned by someone else is reported as ErrNotFound.
type Repository interface {
	List(ctx context.Context, userID string) ([]domain.Address, error)
	Get(ctx context.Context, userID, id string) (*domain.Address, error)
	// Create and Update clear IsDefault on the owner's other addresses in the
	// same transaction when the written address is the default.
	Create(ctx context.Context, a domain.Address) (*domain.Address, error)
	Update(ctx context.Context, a domain.Address) (*domain.Address, error)
	Delete(ctx context.Context, userID, id string) error
}
