package order

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/pricing"
	orderrepo "storefront/internal/repository/order"

	"github.com/google/uuid"
)

type orderRepo interface {
	Count(ctx context.Context) (int64, error)
	Place(ctx context.Context, o domain.Order) (*domain.Order, error)
	List(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	Get(ctx context.Context, userID, id string) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, orderStatus domain.OrderStatus, paymentStatus domain.PaymentStatus) (*domain.Order, error)
}

type cartRepo interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
}

type addressRepo interface {
	Get(ctx context.Context, userID, id string) (*domain.Address, error)
}

type Service struct {
	orders    orderRepo
	carts     cartRepo
	addresses addressRepo
	logger    *log.Logger
	now       func() time.Time
	code      func() string
}

func New(orders orderRepo, carts cartRepo, addresses addressRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:    orders,
		carts:     carts,
		addresses: addresses,
		logger:    logger,
		now:       time.Now,
		code:      randomCode,
	}
}

type PlaceInput struct {
	AddressID       string `json:"addressId"`
	PaymentMethod   string `json:"paymentMethod"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// Place converts the user's cart into an order. Lines, prices and the
// shipping address are copied into the order; the cart is deleted in the
// same transaction as the insert. Stock is not re-checked here.
func (s *Service) Place(ctx context.Context, userID string, in PlaceInput) (*domain.Order, error) {
	addressID := strings.TrimSpace(in.AddressID)
	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(in.PaymentMethod)))
	intentID := strings.TrimSpace(in.PaymentIntentID)
	if addressID == "" || method == "" {
		return nil, domain.Invalid("Address ID and payment method are required")
	}
	if !method.Valid() {
		return nil, domain.Invalid("Validation failed", "Payment method must be card or cod")
	}
	if method == domain.PaymentCard && intentID == "" {
		return nil, domain.Invalid("Validation failed", "Payment intent ID is required for card payments")
	}

	cart, err := s.carts.GetByUser(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.InvalidBecause(domain.ErrEmptyCart)
	}

	addr, err := s.addresses.Get(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Address")
		}
		return nil, err
	}

	quote := pricing.Quote(cart.TotalPrice)
	o := domain.Order{
		UserID:          userID,
		Items:           domain.SnapshotItems(*cart),
		ShippingAddress: addr.Snapshot(),
		PaymentMethod:   method,
		PaymentStatus:   domain.InitialPaymentStatus(method),
		OrderStatus:     domain.OrderPending,
		Subtotal:        quote.Subtotal,
		ShippingFee:     quote.ShippingFee,
		Tax:             quote.Tax,
		Total:           quote.Total,
	}
	if method == domain.PaymentCard {
		o.PaymentIntentID = &intentID
	}

	o.OrderNumber = s.nextNumber(ctx)
	placed, err := s.orders.Place(ctx, o)
	if errors.Is(err, orderrepo.ErrDuplicateNumber) {
		o.OrderNumber = domain.FallbackOrderNumber(s.now(), s.code())
		s.logger.Printf("order service: number collision user_id=%s retry=%s", userID, o.OrderNumber)
		placed, err = s.orders.Place(ctx, o)
	}
	if err != nil {
		if errors.Is(err, orderrepo.ErrDuplicatePaymentIntent) {
			return nil, domain.Invalid("An order already exists for this payment")
		}
		return nil, err
	}
	s.logger.Printf("order service: placed order_number=%s user_id=%s items=%d total=%s", placed.OrderNumber, userID, len(placed.Items), placed.Total)
	return placed, nil
}

// nextNumber derives the order number from the running order count and falls
// back to a random suffix when the count is unavailable.
func (s *Service) nextNumber(ctx context.Context) string {
	now := s.now()
	count, err := s.orders.Count(ctx)
	if err != nil {
		s.logger.Printf("order service: count failed, using fallback number error=%v", err)
		return domain.FallbackOrderNumber(now, s.code())
	}
	return domain.OrderNumber(now, count+1)
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.List(ctx, userID, 0)
}

// Recent returns at most n of the user's latest orders.
func (s *Service) Recent(ctx context.Context, userID string, n int) ([]domain.Order, error) {
	return s.orders.List(ctx, userID, n)
}

func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Order, error) {
	o, err := s.orders.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Order")
		}
		return nil, err
	}
	return o, nil
}

// UpdateStatus records a fulfillment or payment transition.
func (s *Service) UpdateStatus(ctx context.Context, id string, orderStatus domain.OrderStatus, paymentStatus domain.PaymentStatus) (*domain.Order, error) {
	var fields []string
	if !orderStatus.Valid() {
		fields = append(fields, "Order status is invalid")
	}
	if !paymentStatus.Valid() {
		fields = append(fields, "Payment status is invalid")
	}
	if len(fields) > 0 {
		return nil, domain.Invalid("Validation failed", fields...)
	}
	o, err := s.orders.UpdateStatus(ctx, id, orderStatus, paymentStatus)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound("Order")
		}
		return nil, err
	}
	return o, nil
}

func randomCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
}
