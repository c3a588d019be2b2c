package repository

import (
	"context"

	"github.com/roomstays/payment-service/internal/domain/model"
)

// TransactionRepository persists ledger entries.
type TransactionRepository interface {
	// FirstOrCreate inserts tx unless a row with the same
	// (booking_id, transaction_id) already exists, in which case the stored
	// row is returned unchanged.
	FirstOrCreate(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)

	// GetByBookingID lists the ledger entries recorded for a booking.
	GetByBookingID(ctx context.Context, bookingID string) ([]model.Transaction, error)
}
