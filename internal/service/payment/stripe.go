package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type stripeProcessor struct {
	api *client.API
}

// NewStripe returns a Processor backed by the Stripe API. backends may be nil
// to use Stripe's default endpoints.
func NewStripe(secretKey string, backends *stripe.Backends) Processor {
	return &stripeProcessor{api: client.New(secretKey, backends)}
}

func (p *stripeProcessor) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeInvalidRequest {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, stripeErr.Msg)
		}
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
