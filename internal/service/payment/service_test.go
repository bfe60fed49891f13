package payment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
)

type stubProcessor struct {
	last   IntentRequest
	calls  int
	intent *Intent
	err    error
}

func (s *stubProcessor) CreateIntent(_ context.Context, req IntentRequest) (*Intent, error) {
	s.calls++
	s.last = req
	return s.intent, s.err
}

type stubAddressRepo struct {
	owner string
	id    string
}

func (s *stubAddressRepo) Get(_ context.Context, userID, id string) (*domain.Address, error) {
	if userID != s.owner || id != s.id {
		return nil, domain.ErrNotFound
	}
	return &domain.Address{ID: id, UserID: userID}, nil
}

func TestCreateIntent(t *testing.T) {
	proc := &stubProcessor{intent: &Intent{ID: "pi_1", ClientSecret: "pi_1_secret"}}
	svc := New(proc, &stubAddressRepo{owner: "u1", id: "a1"}, "USD", nil)

	secret, err := svc.CreateIntent(context.Background(), "u1", CreateIntentInput{Amount: decimal.RequireFromString("32.505"), AddressID: "a1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "pi_1_secret" {
		t.Fatalf("expected client secret, got %q", secret)
	}
	if proc.last.AmountMinor != 3251 || proc.last.Currency != "usd" {
		t.Fatalf("unexpected request %+v", proc.last)
	}
	if proc.last.Metadata["userId"] != "u1" || proc.last.Metadata["addressId"] != "a1" {
		t.Fatalf("unexpected metadata %v", proc.last.Metadata)
	}
}

func TestCreateIntentValidation(t *testing.T) {
	proc := &stubProcessor{}
	svc := New(proc, &stubAddressRepo{owner: "u1", id: "a1"}, "usd", nil)
	ctx := context.Background()

	if _, err := svc.CreateIntent(ctx, "u1", CreateIntentInput{Amount: decimal.Zero, AddressID: "a1"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	if _, err := svc.CreateIntent(ctx, "u1", CreateIntentInput{Amount: decimal.NewFromInt(10)}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for missing address, got %v", err)
	}
	if _, err := svc.CreateIntent(ctx, "u2", CreateIntentInput{Amount: decimal.NewFromInt(10), AddressID: "a1"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign address, got %v", err)
	}
	if proc.calls != 0 {
		t.Fatalf("expected processor untouched, got %d calls", proc.calls)
	}
}

func TestCreateIntentProcessorErrors(t *testing.T) {
	proc := &stubProcessor{err: fmt.Errorf("%w: amount too small", ErrInvalidRequest)}
	svc := New(proc, &stubAddressRepo{owner: "u1", id: "a1"}, "usd", nil)

	_, err := svc.CreateIntent(context.Background(), "u1", CreateIntentInput{Amount: decimal.NewFromInt(1), AddressID: "a1"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || vErr.Message != "Invalid payment request" {
		t.Fatalf("expected invalid payment request, got %v", err)
	}

	proc.err = errors.New("network down")
	_, err = svc.CreateIntent(context.Background(), "u1", CreateIntentInput{Amount: decimal.NewFromInt(1), AddressID: "a1"})
	if err == nil || domain.IsValidation(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestDisabledProcessor(t *testing.T) {
	svc := New(nil, &stubAddressRepo{owner: "u1", id: "a1"}, "usd", nil)
	_, err := svc.CreateIntent(context.Background(), "u1", CreateIntentInput{Amount: decimal.NewFromInt(1), AddressID: "a1"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
