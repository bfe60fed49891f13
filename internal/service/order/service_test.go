package order

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"storefront/internal/domain"
	orderrepo "storefront/internal/repository/order"

	"github.com/shopspring/decimal"
)

type stubOrderRepo struct {
	count      int64
	countErr   error
	placeErrs  []error
	placed     []domain.Order
	placeCalls int
}

func (s *stubOrderRepo) Count(_ context.Context) (int64, error) {
	return s.count, s.countErr
}

func (s *stubOrderRepo) Place(_ context.Context, o domain.Order) (*domain.Order, error) {
	idx := s.placeCalls
	s.placeCalls++
	if idx < len(s.placeErrs) && s.placeErrs[idx] != nil {
		return nil, s.placeErrs[idx]
	}
	o.ID = "o1"
	s.placed = append(s.placed, o)
	return &o, nil
}

func (s *stubOrderRepo) List(_ context.Context, _ string, _ int) ([]domain.Order, error) {
	return s.placed, nil
}

func (s *stubOrderRepo) Get(_ context.Context, _, id string) (*domain.Order, error) {
	for _, o := range s.placed {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, os domain.OrderStatus, ps domain.PaymentStatus) (*domain.Order, error) {
	return &domain.Order{ID: id, OrderStatus: os, PaymentStatus: ps}, nil
}

type stubCartRepo struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartRepo) GetByUser(_ context.Context, _ string) (*domain.Cart, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.cart == nil {
		return nil, domain.ErrNotFound
	}
	return s.cart, nil
}

type stubAddressRepo struct {
	addr    *domain.Address
	lastID  string
	lastUID string
}

func (s *stubAddressRepo) Get(_ context.Context, userID, id string) (*domain.Address, error) {
	s.lastUID = userID
	s.lastID = id
	if s.addr == nil || s.addr.ID != id || s.addr.UserID != userID {
		return nil, domain.ErrNotFound
	}
	clone := *s.addr
	return &clone, nil
}

func sampleCart() *domain.Cart {
	cart := domain.NewCart("u1")
	_ = cart.AddItem(domain.Product{ID: "p1", Name: "Mug", Price: decimal.NewFromInt(10), Stock: 10, IsActive: true, Images: []string{"/mug.jpg"}}, 2)
	_ = cart.AddItem(domain.Product{ID: "p2", Name: "Pen", Price: decimal.NewFromInt(5), Stock: 10, IsActive: true}, 1)
	return cart
}

func sampleAddress() *domain.Address {
	return &domain.Address{ID: "a1", UserID: "u1", FullName: "Jane", City: "Lahore", Label: domain.LabelHome}
}

func newService(orders *stubOrderRepo, carts *stubCartRepo, addrs *stubAddressRepo) *Service {
	svc := New(orders, carts, addrs, nil)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	svc.code = func() string { return "AB12" }
	return svc
}

func TestPlaceCashOnDelivery(t *testing.T) {
	orders := &stubOrderRepo{count: 41}
	svc := newService(orders, &stubCartRepo{cart: sampleCart()}, &stubAddressRepo{addr: sampleAddress()})

	o, err := svc.Place(context.Background(), "u1", PlaceInput{AddressID: "a1", PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.OrderNumber != "ORD-1700000000000-0042" {
		t.Fatalf("unexpected order number %q", o.OrderNumber)
	}
	if !o.Subtotal.Equal(decimal.NewFromInt(25)) || !o.ShippingFee.Equal(decimal.NewFromInt(5)) ||
		!o.Tax.Equal(decimal.RequireFromString("2.5")) || !o.Total.Equal(decimal.RequireFromString("32.5")) {
		t.Fatalf("unexpected totals %s %s %s %s", o.Subtotal, o.ShippingFee, o.Tax, o.Total)
	}
	if o.PaymentStatus != domain.PaymentPending || o.OrderStatus != domain.OrderPending {
		t.Fatalf("unexpected statuses %s %s", o.PaymentStatus, o.OrderStatus)
	}
	if o.PaymentIntentID != nil {
		t.Fatalf("expected no payment intent for cod")
	}
	if len(o.Items) != 2 || o.Items[0].Name != "Mug" || o.Items[0].Image != "/mug.jpg" || o.Items[1].Image != domain.PlaceholderImage {
		t.Fatalf("unexpected item snapshot %+v", o.Items)
	}
	if o.ShippingAddress.FullName != "Jane" {
		t.Fatalf("unexpected address snapshot %+v", o.ShippingAddress)
	}
}

func TestPlaceCard(t *testing.T) {
	orders := &stubOrderRepo{}
	svc := newService(orders, &stubCartRepo{cart: sampleCart()}, &stubAddressRepo{addr: sampleAddress()})

	if _, err := svc.Place(context.Background(), "u1", PlaceInput{AddressID: "a1", PaymentMethod: "card"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error without intent, got %v", err)
	}

	o, err := svc.Place(context.Background(), "u1", PlaceInput{AddressID: "a1", PaymentMethod: "CARD", PaymentIntentID: "pi_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.PaymentStatus != domain.PaymentPaid || o.PaymentIntentID == nil || *o.PaymentIntentID != "pi_1" {
		t.Fatalf("unexpected card order %+v", o)
	}
}

func TestPlaceEmptyCartWritesNothing(t *testing.T) {
	for name, carts := range map[string]*stubCartRepo{
		"absent": {},
		"empty":  {cart: domain.NewCart("u1")},
	} {
		t.Run(name, func(t *testing.T) {
			orders := &stubOrderRepo{}
			svc := newService(orders, carts, &stubAddressRepo{addr: sampleAddress()})
			_, err := svc.Place(context.Background(), "u1", PlaceInput{AddressID: "a1", PaymentMethod: "cod"})
			if !errors.Is(err, domain.ErrEmptyCart) || !domain.IsValidation(err) {
				t.Fatalf("expected empty cart validation error, got %v", err)
			}
			if orders.placeCalls != 0 {
				t.Fatalf("expected no writes, got %d", orders.placeCalls)
			}
		})
	}
}

func TestPlaceValidationAndAddress(t *testing.T) {
	orders := &stubOrderRepo{}
	addrs := &stubAddressRepo{addr: sampleAddress()}
	svc := newService(orders, &stubCartRepo{cart: sampleCart()}, addrs)
	ctx := context.Background()

	if _, err := svc.Place(ctx, "u1", PlaceInput{PaymentMethod: "cod"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing address, got %v", err)
	}
	if _, err := svc.Place(ctx, "u1", PlaceInput{AddressID: "a1", PaymentMethod: "cheque"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for bad method, got %v", err)
	}
	_, err := svc.Place(ctx, "u1", PlaceInput{AddressID: "missing", PaymentMethod: "cod"})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "Address" {
		t.Fatalf("expected address not found, got %v", err)
	}
	if orders.placeCalls != 0 {
		t.Fatalf("expected no writes, got %d", orders.placeCalls)
	}
}

func TestPlaceNumberFallbacks(t *testing.T) {
	orders := &stubOrderRepo{countErr: errors.New("db down")}
	svc := newService(orders, &stubCartRepo{cart: sampleCart()}, &stubAddressRepo{addr: sampleAddress()})

	o, err := svc.Place(context.Background(), "u1", PlaceInput{AddressID: "a1", PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.OrderNumber != "ORD-1700000000000-AB12" {
		t.Fatalf("expected fallback number, got %q", o.OrderNumber)
	}

	orders = &stubOrderRepo{count: 1, placeErrs: []error{orderrepo.ErrDuplicateNumber}}
	svc = newService(orders, &stubCartRepo{cart: sampleCart()}, &stubAddressRepo{addr: sampleAddress()})
	o, err = svc.Place(context.Background(), "u1", PlaceInput{AddressID: "a1", PaymentMethod: "cod"})
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if orders.placeCalls != 2 || o.OrderNumber != "ORD-1700000000000-AB12" {
		t.Fatalf("expected retry with fallback number, got %d calls %q", orders.placeCalls, o.OrderNumber)
	}
}

func TestPlaceDuplicatePaymentIntent(t *testing.T) {
	orders := &stubOrderRepo{placeErrs: []error{orderrepo.ErrDuplicatePaymentIntent}}
	svc := newService(orders, &stubCartRepo{cart: sampleCart()}, &stubAddressRepo{addr: sampleAddress()})
	_, err := svc.Place(context.Background(), "u1", PlaceInput{AddressID: "a1", PaymentMethod: "card", PaymentIntentID: "pi_1"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error for reused intent, got %v", err)
	}
}

func TestRandomCodeShape(t *testing.T) {
	if code := randomCode(); !regexp.MustCompile(`^[0-9A-F]{4}$`).MatchString(code) {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestUpdateStatusValidates(t *testing.T) {
	svc := newService(&stubOrderRepo{}, &stubCartRepo{}, &stubAddressRepo{})
	if _, err := svc.UpdateStatus(context.Background(), "o1", "lost", "paid"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	o, err := svc.UpdateStatus(context.Background(), "o1", domain.OrderShipped, domain.PaymentPaid)
	if err != nil || o.OrderStatus != domain.OrderShipped {
		t.Fatalf("unexpected result %+v %v", o, err)
	}
}
