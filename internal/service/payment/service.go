package payment

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/pricing"

	"github.com/shopspring/decimal"
)

type addressRepo interface {
	Get(ctx context.Context, userID, id string) (*domain.Address, error)
}

type Service struct {
	processor Processor
	addresses addressRepo
	currency  string
	logger    *log.Logger
}

func New(processor Processor, addresses addressRepo, currency string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if processor == nil {
		processor = Disabled()
	}
	return &Service{processor: processor, addresses: addresses, currency: strings.ToLower(currency), logger: logger}
}

type CreateIntentInput struct {
	Amount    decimal.Decimal `json:"amount"`
	AddressID string          `json:"addressId"`
}

// CreateIntent reserves a charge of in.Amount for the caller, tagged with the
// caller and the shipping address, and returns the client secret.
func (s *Service) CreateIntent(ctx context.Context, userID string, in CreateIntentInput) (string, error) {
	addressID := strings.TrimSpace(in.AddressID)
	if !in.Amount.IsPositive() || addressID == "" {
		return "", domain.Invalid("Amount and address ID are required")
	}
	if _, err := s.addresses.Get(ctx, userID, addressID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.NotFound("Address")
		}
		return "", err
	}

	intent, err := s.processor.CreateIntent(ctx, IntentRequest{
		AmountMinor: pricing.MinorUnits(in.Amount),
		Currency:    s.currency,
		Metadata: map[string]string{
			"userId":    userID,
			"addressId": addressID,
		},
	})
	if err != nil {
		s.logger.Printf("payment service: create intent user_id=%s error=%v", userID, err)
		if errors.Is(err, ErrInvalidRequest) {
			return "", &domain.ValidationError{Message: "Invalid payment request", Fields: []string{err.Error()}}
		}
		return "", err
	}
	s.logger.Printf("payment service: intent id=%s user_id=%s amount=%s", intent.ID, userID, in.Amount)
	return intent.ClientSecret, nil
}
