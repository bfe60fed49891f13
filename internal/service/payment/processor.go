package payment

import (
	"context"
	"errors"
)

var (
	// ErrInvalidRequest marks a request the processor refused as malformed.
	ErrInvalidRequest = errors.New("invalid payment request")
	// ErrNotConfigured is returned when no processor credentials are set.
	ErrNotConfigured = errors.New("payment processor not configured")
)

// IntentRequest asks the processor to reserve a charge.
type IntentRequest struct {
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// Intent is the processor's handle for a pending charge. ClientSecret is the
// only part handed back to the caller.
type Intent struct {
	ID           string
	ClientSecret string
}

// Processor creates payment intents with an external provider.
type Processor interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}

type disabledProcessor struct{}

func (disabledProcessor) CreateIntent(context.Context, IntentRequest) (*Intent, error) {
	return nil, ErrNotConfigured
}

// Disabled returns a Processor that refuses every request.
func Disabled() Processor {
	return disabledProcessor{}
}
