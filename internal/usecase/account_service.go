package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/cache"
	domainErrors "github.com/roomstays/payment-service/internal/domain/errors"
	"github.com/roomstays/payment-service/internal/domain/provider"
	"github.com/roomstays/payment-service/internal/domain/repository"
)

// AccountService is the cache-aside directory for provider payout accounts.
// The cache is a speed optimization only: reads fall back to the provider on
// a miss and cache writes never fail an operation.
type AccountService struct {
	profiles repository.UserProfileRepository
	provider provider.PaymentProvider
	cache    cache.Cache
	logger   *zap.Logger
}

func NewAccountService(
	profiles repository.UserProfileRepository,
	paymentProvider provider.PaymentProvider,
	accountCache cache.Cache,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		profiles: profiles,
		provider: paymentProvider,
		cache:    accountCache,
		logger:   logger,
	}
}

// DeleteResult confirms an account deletion. Deleted is false when the user
// had no account to begin with.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Get returns the user's provider account, from cache when possible.
func (s *AccountService) Get(ctx context.Context, userID string) (*provider.Account, error) {
	if userID == "" {
		return nil, domainErrors.NewInvalidInput("user id is required")
	}

	key := cache.AccountKey(userID)
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var acct provider.Account
		if err := json.Unmarshal([]byte(cached), &acct); err == nil {
			return &acct, nil
		}
		s.logger.Warn("discarding undecodable account cache entry",
			zap.String("user_id", userID))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("account cache read failed",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	if profile == nil {
		return nil, domainErrors.NewNotFound("user profile not found", userID)
	}
	if profile.AccountID == nil {
		return nil, domainErrors.NewNoAccount(userID)
	}

	acct, err := s.provider.GetAccount(ctx, *profile.AccountID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, domainErrors.NewNotFound("payment account not found", *profile.AccountID)
		}
		return nil, domainErrors.NewUpstream("failed to retrieve payment account", *profile.AccountID, err)
	}

	s.storeSnapshot(ctx, key, acct)

	return acct, nil
}

// Create opens a provider account for the user. The profile is only touched
// after the provider call succeeds, and the account_id IS NULL guard keeps
// racing creates from both winning.
func (s *AccountService) Create(ctx context.Context, userID string, details provider.AccountDetails) (*provider.Account, error) {
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
	if profile.AccountID != nil {
		return nil, domainErrors.NewConflict("user already has a payment account", userID)
	}

	acct, err := s.provider.CreateAccount(ctx, details)
	if err != nil {
		return nil, domainErrors.NewUpstream("failed to create payment account", userID, err)
	}

	updated, err := s.profiles.SetAccountID(ctx, profile.ProfileID, acct.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to persist account id: %w", err)
	}
	if !updated {
		// A concurrent create won the guard. The account just opened on the
		// provider has no local reference; surface it for manual cleanup.
		s.logger.Error("concurrent account creation detected, provider account is unreferenced",
			zap.String("user_id", userID),
			zap.String("account_id", acct.ID))
		return nil, domainErrors.NewConflict("user already has a payment account", userID)
	}

	s.storeSnapshot(ctx, cache.AccountKey(userID), acct)

	s.logger.Info("payment account created",
		zap.String("user_id", userID),
		zap.String("account_id", acct.ID))

	return acct, nil
}

// Delete removes the user's provider account. The provider delete must
// succeed before the local reference is cleared, so a provider failure never
// orphans a live account.
func (s *AccountService) Delete(ctx context.Context, userID string) (*DeleteResult, error) {
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
	if profile.AccountID == nil {
		return &DeleteResult{Deleted: false}, nil
	}

	accountID := *profile.AccountID
	if err := s.provider.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, domainErrors.NewNotFound("payment account not found", accountID)
		}
		return nil, domainErrors.NewUpstream("failed to delete payment account", accountID, err)
	}

	if err := s.profiles.ClearAccountID(ctx, profile.ProfileID); err != nil {
		return nil, fmt.Errorf("failed to clear account id: %w", err)
	}

	if err := s.cache.Del(ctx, cache.AccountKey(userID)); err != nil {
		s.logger.Warn("failed to invalidate account cache entry",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	s.logger.Info("payment account deleted",
		zap.String("user_id", userID),
		zap.String("account_id", accountID))

	return &DeleteResult{ID: accountID, Deleted: true}, nil
}

// storeSnapshot writes the account snapshot to the cache. Failures are
// logged and swallowed.
func (s *AccountService) storeSnapshot(ctx context.Context, key string, acct *provider.Account) {
	data, err := json.Marshal(acct)
	if err != nil {
		s.logger.Warn("failed to serialize account snapshot", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data)); err != nil {
		s.logger.Warn("failed to write account cache entry",
			zap.String("key", key),
			zap.Error(err))
	}
}
