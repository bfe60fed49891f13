package order

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

// ErrDuplicateNumber reports an order number collision. It matches
// domain.ErrAlreadyExists.
var ErrDuplicateNumber = fmt.Errorf("order number taken: %w", domain.ErrAlreadyExists)

// ErrDuplicatePaymentIntent reports a second order for the same payment
// intent. It matches domain.ErrAlreadyExists.
var ErrDuplicatePaymentIntent = fmt.Errorf("payment intent already used: %w", domain.ErrAlreadyExists)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	// Place inserts the order and deletes the owner's cart in one transaction.
	Place(ctx context.Context, o domain.Order) (*domain.Order, error)
	// List returns the user's orders newest first; limit <= 0 means no limit.
	List(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	Get(ctx context.Context, userID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, orderStatus domain.OrderStatus, paymentStatus domain.PaymentStatus) (*domain.Order, error)
}
