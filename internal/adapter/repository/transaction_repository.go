package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/roomstays/payment-service/internal/domain/model"
	domainRepo "github.com/roomstays/payment-service/internal/domain/repository"
)

type transactionRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTransactionRepository(db *gorm.DB, logger *zap.Logger) domainRepo.TransactionRepository {
	return &transactionRepository{db: db, logger: logger}
}

// FirstOrCreate is the ledger's idempotency mechanism: the unique index on
// (booking_id, transaction_id) backs the read-then-insert, and an insert
// losing the race falls back to the winner's row.
func (r *transactionRepository) FirstOrCreate(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	existing, err := r.getByKey(ctx, tx.BookingID, tx.TransactionID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.Info("transaction already recorded, returning existing row",
				zap.String("booking_id", tx.BookingID),
				zap.String("transaction_id", tx.TransactionID))
			return r.getByKey(ctx, tx.BookingID, tx.TransactionID)
		}
		return nil, err
	}
	return tx, nil
}

func (r *transactionRepository) GetByBookingID(ctx context.Context, bookingID string) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *transactionRepository) getByKey(ctx context.Context, bookingID, transactionID string) (*model.Transaction, error) {
	var tx model.Transaction
	err := r.db.WithContext(ctx).
		Where("booking_id = ? AND transaction_id = ?", bookingID, transactionID).
		First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}
