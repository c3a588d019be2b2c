package repository

import (
	"context"

	"github.com/roomstays/payment-service/internal/domain/model"
)

// UserProfileRepository reads and mutates the provider identity references
// on a user's profile. Reads return (nil, nil) when no record exists; writes
// are scoped by profile id.
type UserProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error)

	// SetAccountID stores the account id, guarded by account_id IS NULL.
	// Returns false when the guard failed and nothing was written.
	SetAccountID(ctx context.Context, profileID int64, accountID string) (bool, error)

	// ClearAccountID nulls the account id.
	ClearAccountID(ctx context.Context, profileID int64) error

	// SetCustomerID stores the customer id.
	SetCustomerID(ctx context.Context, profileID int64, customerID string) error
}
