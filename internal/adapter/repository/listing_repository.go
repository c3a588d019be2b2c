package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/roomstays/payment-service/internal/domain/model"
	domainRepo "github.com/roomstays/payment-service/internal/domain/repository"
)

type listingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) domainRepo.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	var listing model.Listing
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &listing, nil
}

func (r *listingRepository) GetLocation(ctx context.Context, id int64) (*model.Location, error) {
	var location model.Location
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}
