package repository

import (
	"context"

	"github.com/roomstays/payment-service/internal/domain/model"
)

// ListingRepository reads listing and location records owned by the main
// platform. Returns (nil, nil) when no record exists.
type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Listing, error)
	GetLocation(ctx context.Context, id int64) (*model.Location, error)
}
