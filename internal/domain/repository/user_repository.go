package repository

import (
	"context"

	"github.com/roomstays/payment-service/internal/domain/model"
)

// UserRepository reads platform user records. Returns (nil, nil) when no
// record exists.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}
