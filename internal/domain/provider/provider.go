package provider

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the provider reports the requested object
// does not exist.
var ErrNotFound = errors.New("provider: resource not found")

// PaymentProvider is the remote payment-processor surface the core depends
// on: payout accounts for hosts, customers and stored cards for guests, and
// charge creation.
type PaymentProvider interface {
	// CreateAccount creates a payout account for a host.
	CreateAccount(ctx context.Context, details AccountDetails) (*Account, error)

	// GetAccount retrieves an existing payout account.
	GetAccount(ctx context.Context, accountID string) (*Account, error)

	// DeleteAccount removes a payout account on the provider side.
	DeleteAccount(ctx context.Context, accountID string) error

	// CreateCustomer creates a paying customer keyed by email.
	CreateCustomer(ctx context.Context, email string) (*Customer, error)

	// GetCustomer retrieves a customer with its stored cards.
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)

	// CreateCardToken tokenizes raw card details.
	CreateCardToken(ctx context.Context, card CardDetails) (string, error)

	// AttachSource attaches a tokenized card to a customer.
	AttachSource(ctx context.Context, customerID, token string) (*Card, error)

	// DetachSource removes a stored card from a customer.
	DetachSource(ctx context.Context, customerID, sourceID string) error

	// SetDefaultSource marks a stored card as the customer's default.
	SetDefaultSource(ctx context.Context, customerID, sourceID string) error

	// CreateCharge moves funds from a customer's card. Amount is in integer
	// minor units.
	CreateCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
}

// Account is the snapshot of a provider payout account mirrored into the
// cache. Staleness is accepted; the provider owns the object.
type Account struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Country          string `json:"country"`
	DetailsSubmitted bool   `json:"details_submitted"`
	ChargesEnabled   bool   `json:"charges_enabled"`
	PayoutsEnabled   bool   `json:"payouts_enabled"`
	Created          int64  `json:"created"`
}

// AccountDetails carries what the provider needs to open a payout account.
type AccountDetails struct {
	Email             string `json:"email" validate:"required,email"`
	Country           string `json:"country" validate:"required"`
	BusinessType      string `json:"business_type"`
	TOSAcceptanceDate int64  `json:"tos_acceptance_date"`
	TOSAcceptanceIP   string `json:"tos_acceptance_ip"`
}

// Customer is a paying party with its stored cards. One customer exists per
// user profile, created lazily on the first card operation.
type Customer struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DefaultSource string `json:"default_source,omitempty"`
	Cards         []Card `json:"cards"`
}

// Card is a stored funding source attached to a customer. Cards are never
// cached locally.
type Card struct {
	ID       string `json:"id"`
	Brand    string `json:"brand"`
	Last4    string `json:"last4"`
	ExpMonth int64  `json:"exp_month"`
	ExpYear  int64  `json:"exp_year"`
	Name     string `json:"name,omitempty"`
}

// CardDetails are the raw card fields tokenized before attachment. All
// fields are required.
type CardDetails struct {
	Name     string `json:"card_name" validate:"required"`
	Number   string `json:"card_number" validate:"required"`
	ExpMonth string `json:"exp_month" validate:"required"`
	ExpYear  string `json:"exp_year" validate:"required"`
	CVC      string `json:"cvc" validate:"required"`
}

// ChargeRequest describes a single funds movement.
type ChargeRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	CustomerID  string            `json:"customer_id"`
	SourceID    string            `json:"source_id"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Charge is the provider's record of a completed funds movement.
type Charge struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Paid     bool   `json:"paid"`
}

// ProviderError carries the provider's own error code alongside a message.
type ProviderError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *ProviderError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}
