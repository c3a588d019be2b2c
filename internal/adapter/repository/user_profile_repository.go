package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/roomstays/payment-service/internal/domain/model"
	domainRepo "github.com/roomstays/payment-service/internal/domain/repository"
)

type userProfileRepository struct {
	db *gorm.DB
}

func NewUserProfileRepository(db *gorm.DB) domainRepo.UserProfileRepository {
	return &userProfileRepository{db: db}
}

func (r *userProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// SetAccountID writes the account id only while the column is still null, so
// two racing create calls cannot both win.
func (r *userProfileRepository) SetAccountID(ctx context.Context, profileID int64, accountID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("profile_id = ? AND account_id IS NULL", profileID).
		Update("account_id", accountID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *userProfileRepository) ClearAccountID(ctx context.Context, profileID int64) error {
	return r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("profile_id = ?", profileID).
		Update("account_id", nil).Error
}

func (r *userProfileRepository) SetCustomerID(ctx context.Context, profileID int64, customerID string) error {
	return r.db.WithContext(ctx).
		Model(&model.UserProfile{}).
		Where("profile_id = ?", profileID).
		Update("customer_id", customerID).Error
}
