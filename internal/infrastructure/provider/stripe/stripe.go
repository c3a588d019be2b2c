package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/provider"
)

// StripeProvider implements the PaymentProvider interface against the Stripe
// API. Hosts are custom connected accounts, guests are customers with card
// sources.
type StripeProvider struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeProvider creates a Stripe-backed payment provider. The client is
// safe for concurrent use and lives for the whole process.
func NewStripeProvider(secretKey string, logger *zap.Logger) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{
		api:    api,
		logger: logger,
	}
}

func (s *StripeProvider) CreateAccount(ctx context.Context, details provider.AccountDetails) (*provider.Account, error) {
	params := &stripe.AccountParams{
		Params:  stripe.Params{Context: ctx},
		Type:    stripe.String(string(stripe.AccountTypeCustom)),
		Country: stripe.String(details.Country),
		Email:   stripe.String(details.Email),
	}
	if details.BusinessType != "" {
		params.BusinessType = stripe.String(details.BusinessType)
	}
	if details.TOSAcceptanceDate != 0 {
		params.TOSAcceptance = &stripe.AccountTOSAcceptanceParams{
			Date: stripe.Int64(details.TOSAcceptanceDate),
			IP:   stripe.String(details.TOSAcceptanceIP),
		}
	}

	acct, err := s.api.Accounts.New(params)
	if err != nil {
		return nil, s.wrapError("failed to create account", err)
	}

	s.logger.Info("stripe account created",
		zap.String("account_id", acct.ID),
		zap.String("country", details.Country))

	return accountSnapshot(acct), nil
}

func (s *StripeProvider) GetAccount(ctx context.Context, accountID string) (*provider.Account, error) {
	acct, err := s.api.Accounts.GetByID(accountID, &stripe.AccountParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, s.wrapError("failed to retrieve account", err)
	}
	return accountSnapshot(acct), nil
}

func (s *StripeProvider) DeleteAccount(ctx context.Context, accountID string) error {
	_, err := s.api.Accounts.Del(accountID, &stripe.AccountParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return s.wrapError("failed to delete account", err)
	}
	s.logger.Info("stripe account deleted", zap.String("account_id", accountID))
	return nil
}

func (s *StripeProvider) CreateCustomer(ctx context.Context, email string) (*provider.Customer, error) {
	cust, err := s.api.Customers.New(&stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
		Email:  stripe.String(email),
	})
	if err != nil {
		return nil, s.wrapError("failed to create customer", err)
	}

	s.logger.Info("stripe customer created", zap.String("customer_id", cust.ID))

	return customerView(cust), nil
}

func (s *StripeProvider) GetCustomer(ctx context.Context, customerID string) (*provider.Customer, error) {
	params := &stripe.CustomerParams{
		Params: stripe.Params{Context: ctx},
	}
	params.AddExpand("sources")

	cust, err := s.api.Customers.Get(customerID, params)
	if err != nil {
		return nil, s.wrapError("failed to retrieve customer", err)
	}
	return customerView(cust), nil
}

func (s *StripeProvider) CreateCardToken(ctx context.Context, card provider.CardDetails) (string, error) {
	tok, err := s.api.Tokens.New(&stripe.TokenParams{
		Params: stripe.Params{Context: ctx},
		Card: &stripe.CardParams{
			Name:     stripe.String(card.Name),
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.String(card.ExpMonth),
			ExpYear:  stripe.String(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
	})
	if err != nil {
		return "", s.wrapError("failed to tokenize card", err)
	}
	return tok.ID, nil
}

func (s *StripeProvider) AttachSource(ctx context.Context, customerID, token string) (*provider.Card, error) {
	params := &stripe.PaymentSourceParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
		Source:   &stripe.PaymentSourceSourceParams{Token: stripe.String(token)},
	}

	src, err := s.api.PaymentSources.New(params)
	if err != nil {
		return nil, s.wrapError("failed to attach source", err)
	}

	s.logger.Info("card attached to customer",
		zap.String("customer_id", customerID),
		zap.String("source_id", src.ID))

	return cardView(src), nil
}

func (s *StripeProvider) DetachSource(ctx context.Context, customerID, sourceID string) error {
	_, err := s.api.PaymentSources.Del(sourceID, &stripe.PaymentSourceParams{
		Params:   stripe.Params{Context: ctx},
		Customer: stripe.String(customerID),
	})
	if err != nil {
		return s.wrapError("failed to detach source", err)
	}
	s.logger.Info("card detached from customer",
		zap.String("customer_id", customerID),
		zap.String("source_id", sourceID))
	return nil
}

func (s *StripeProvider) SetDefaultSource(ctx context.Context, customerID, sourceID string) error {
	_, err := s.api.Customers.Update(customerID, &stripe.CustomerParams{
		Params:        stripe.Params{Context: ctx},
		DefaultSource: stripe.String(sourceID),
	})
	if err != nil {
		return s.wrapError("failed to set default source", err)
	}
	return nil
}

func (s *StripeProvider) CreateCharge(ctx context.Context, req provider.ChargeRequest) (*provider.Charge, error) {
	params := &stripe.ChargeParams{
		Params:      stripe.Params{Context: ctx},
		Amount:      stripe.Int64(req.Amount),
		Currency:    stripe.String(strings.ToLower(req.Currency)),
		Customer:    stripe.String(req.CustomerID),
		Description: stripe.String(req.Description),
	}
	if err := params.SetSource(req.SourceID); err != nil {
		return nil, fmt.Errorf("failed to set charge source: %w", err)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	ch, err := s.api.Charges.New(params)
	if err != nil {
		return nil, s.wrapError("failed to create charge", err)
	}

	s.logger.Info("stripe charge created",
		zap.String("charge_id", ch.ID),
		zap.Int64("amount", ch.Amount),
		zap.String("currency", string(ch.Currency)))

	return &provider.Charge{
		ID:       ch.ID,
		Amount:   ch.Amount,
		Currency: strings.ToUpper(string(ch.Currency)),
		Status:   string(ch.Status),
		Paid:     ch.Paid,
	}, nil
}

// wrapError translates Stripe errors into the domain's provider errors,
// mapping resource_missing onto ErrNotFound so callers can distinguish
// absence from outage.
func (s *StripeProvider) wrapError(message string, err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return fmt.Errorf("%s: %w", message, provider.ErrNotFound)
		}
		return &provider.ProviderError{
			Code:    string(stripeErr.Code),
			Message: message,
			Details: stripeErr.Msg,
		}
	}
	return fmt.Errorf("%s: %w", message, err)
}

func accountSnapshot(acct *stripe.Account) *provider.Account {
	return &provider.Account{
		ID:               acct.ID,
		Email:            acct.Email,
		Country:          acct.Country,
		DetailsSubmitted: acct.DetailsSubmitted,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		Created:          acct.Created,
	}
}

func customerView(cust *stripe.Customer) *provider.Customer {
	view := &provider.Customer{
		ID:    cust.ID,
		Email: cust.Email,
		Cards: []provider.Card{},
	}
	if cust.DefaultSource != nil {
		view.DefaultSource = cust.DefaultSource.ID
	}
	if cust.Sources != nil {
		for _, src := range cust.Sources.Data {
			if src.Card == nil {
				continue
			}
			view.Cards = append(view.Cards, *cardView(src))
		}
	}
	return view
}

func cardView(src *stripe.PaymentSource) *provider.Card {
	card := &provider.Card{ID: src.ID}
	if src.Card != nil {
		card.Brand = string(src.Card.Brand)
		card.Last4 = src.Card.Last4
		card.ExpMonth = src.Card.ExpMonth
		card.ExpYear = src.Card.ExpYear
		card.Name = src.Card.Name
	}
	return card
}
