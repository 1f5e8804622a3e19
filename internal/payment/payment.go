package payment

import "context"

// IntentRequest describes a payment to collect. Amount is in minor units.
type IntentRequest struct {
	Amount     int64
	Currency   string
	CustomerID string
	Metadata   map[string]string
}

// Intent is the created payment awaiting client-side confirmation.
type Intent struct {
	ID           string
	ClientSecret string
}

// Provider abstracts the payment processor so services can be tested
// without network calls.
type Provider interface {
	// CreateCustomer registers a customer with the processor and returns
	// its processor-side ID.
	CreateCustomer(ctx context.Context, email, name string) (string, error)

	// CreateIntent opens a payment intent for the given amount.
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}
