package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domainErrors "github.com/roomstays/payment-service/internal/domain/errors"
	"github.com/roomstays/payment-service/internal/domain/provider"
	"github.com/roomstays/payment-service/internal/domain/repository"
)

// CardService manages the guest-side identity: the provider customer and its
// stored cards. Customers are created lazily on the first card operation;
// cards live only on the provider, never locally.
type CardService struct {
	users    repository.UserRepository
	profiles repository.UserProfileRepository
	provider provider.PaymentProvider
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCardService(
	users repository.UserRepository,
	profiles repository.UserProfileRepository,
	paymentProvider provider.PaymentProvider,
	logger *zap.Logger,
) *CardService {
	return &CardService{
		users:    users,
		profiles: profiles,
		provider: paymentProvider,
		validate: validator.New(),
		logger:   logger,
	}
}

// GetOrCreateCustomer returns the user's provider customer, creating it on
// first use. The fresh customer is retrieved after creation so both paths
// return the same shape.
func (s *CardService) GetOrCreateCustomer(ctx context.Context, userID string) (*provider.Customer, error) {
	if userID == "" {
		return nil, domainErrors.NewInvalidInput("user id is required")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	if profile == nil {
		return nil, domainErrors.NewNotFound("user profile not found", userID)
	}

	if profile.CustomerID != nil {
		return s.getCustomer(ctx, *profile.CustomerID)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, domainErrors.NewNotFound("user not found", userID)
	}

	created, err := s.provider.CreateCustomer(ctx, user.Email)
	if err != nil {
		return nil, domainErrors.NewUpstream("failed to create customer", userID, err)
	}

	if err := s.profiles.SetCustomerID(ctx, profile.ProfileID, created.ID); err != nil {
		return nil, fmt.Errorf("failed to persist customer id: %w", err)
	}

	s.logger.Info("provider customer created",
		zap.String("user_id", userID),
		zap.String("customer_id", created.ID))

	return s.getCustomer(ctx, created.ID)
}

// AddCard tokenizes the raw card details and attaches them to the user's
// customer, which must already exist.
func (s *CardService) AddCard(ctx context.Context, userID string, card provider.CardDetails) (*provider.Customer, error) {
	if userID == "" {
		return nil, domainErrors.NewInvalidInput("user id is required")
	}
	if err := s.validate.Struct(card); err != nil {
		return nil, domainErrors.NewInvalidInput("card name, number, expiry and cvc are all required")
	}

	customerID, err := s.requireCustomerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	token, err := s.provider.CreateCardToken(ctx, card)
	if err != nil {
		return nil, domainErrors.NewUpstream("failed to tokenize card", userID, err)
	}

	attached, err := s.provider.AttachSource(ctx, customerID, token)
	if err != nil {
		return nil, domainErrors.NewUpstream("failed to attach card", customerID, err)
	}

	s.logger.Info("card added",
		zap.String("user_id", userID),
		zap.String("customer_id", customerID),
		zap.String("card_id", attached.ID))

	return s.getCustomer(ctx, customerID)
}

// RemoveCard detaches a stored card from the user's customer.
func (s *CardService) RemoveCard(ctx context.Context, userID, cardID string) (*provider.Customer, error) {
	if userID == "" || cardID == "" {
		return nil, domainErrors.NewInvalidInput("user id and card id are required")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	if profile == nil {
		return nil, domainErrors.NewNotFound("user profile not found", userID)
	}
	if profile.CustomerID == nil {
		return nil, domainErrors.NewNotFound("user has no customer", userID)
	}

	if err := s.provider.DetachSource(ctx, *profile.CustomerID, cardID); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, domainErrors.NewNotFound("card not found", cardID)
		}
		return nil, domainErrors.NewUpstream("failed to detach card", cardID, err)
	}

	s.logger.Info("card removed",
		zap.String("user_id", userID),
		zap.String("card_id", cardID))

	return s.getCustomer(ctx, *profile.CustomerID)
}

// GetCards lists the stored cards of the user's customer.
func (s *CardService) GetCards(ctx context.Context, userID string) ([]provider.Card, error) {
	if userID == "" {
		return nil, domainErrors.NewInvalidInput("user id is required")
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	if profile == nil {
		return nil, domainErrors.NewNotFound("user profile not found", userID)
	}
	if profile.CustomerID == nil {
		return nil, domainErrors.NewNotFound("user has no customer", userID)
	}

	customer, err := s.getCustomer(ctx, *profile.CustomerID)
	if err != nil {
		return nil, err
	}
	return customer.Cards, nil
}

// UpdateDefaultCard marks an already-attached card as the customer's default
// funding source.
func (s *CardService) UpdateDefaultCard(ctx context.Context, userID, cardID string) (*provider.Customer, error) {
	if userID == "" || cardID == "" {
		return nil, domainErrors.NewInvalidInput("user id and card id are required")
	}

	customerID, err := s.requireCustomerID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.provider.SetDefaultSource(ctx, customerID, cardID); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, domainErrors.NewNotFound("card not found", cardID)
		}
		return nil, domainErrors.NewUpstream("failed to set default card", cardID, err)
	}

	s.logger.Info("default card updated",
		zap.String("user_id", userID),
		zap.String("card_id", cardID))

	return s.getCustomer(ctx, customerID)
}

// requireCustomerID resolves the user's customer id, failing the
// precondition when no customer exists yet.
func (s *CardService) requireCustomerID(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load user profile: %w", err)
	}
	if profile == nil {
		return "", domainErrors.NewNotFound("user profile not found", userID)
	}
	if profile.CustomerID == nil {
		return "", domainErrors.NewPrecondition("user has no customer yet", userID)
	}
	return *profile.CustomerID, nil
}

func (s *CardService) getCustomer(ctx context.Context, customerID string) (*provider.Customer, error) {
	customer, err := s.provider.GetCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, domainErrors.NewNotFound("customer not found", customerID)
		}
		return nil, domainErrors.NewUpstream("failed to retrieve customer", customerID, err)
	}
	return customer, nil
}
