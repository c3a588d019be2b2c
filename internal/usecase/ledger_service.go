package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/roomstays/payment-service/internal/domain/errors"
	"github.com/roomstays/payment-service/internal/domain/model"
	"github.com/roomstays/payment-service/internal/domain/repository"
)

// LedgerService records completed charges. Record is idempotent on
// (booking id, charge id), which is the system's only guard against
// duplicate charge notifications.
type LedgerService struct {
	transactions repository.TransactionRepository
	logger       *zap.Logger
}

func NewLedgerService(transactions repository.TransactionRepository, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		transactions: transactions,
		logger:       logger,
	}
}

// RecordInput describes a ledger entry. PaymentType defaults to booking.
type RecordInput struct {
	BookingID     string
	ChargeID      string
	PayerEmail    string
	PayerID       string
	ReceiverEmail string
	ReceiverID    string
	Total         decimal.Decimal
	Currency      string
	PaymentType   model.PaymentType
}

// Record upserts the ledger entry for a charge. A second call with the same
// (booking id, charge id) returns the stored row unchanged, whatever the
// other fields say.
func (s *LedgerService) Record(ctx context.Context, in RecordInput) (*model.Transaction, error) {
	if in.BookingID == "" || in.ChargeID == "" {
		return nil, domainErrors.NewInvalidInput("booking id and charge id are required")
	}
	if in.PaymentType == "" {
		in.PaymentType = model.PaymentTypeBooking
	}

	tx := &model.Transaction{
		BookingID:     in.BookingID,
		TransactionID: in.ChargeID,
		PayerEmail:    in.PayerEmail,
		PayerID:       in.PayerID,
		ReceiverEmail: in.ReceiverEmail,
		ReceiverID:    in.ReceiverID,
		Total:         in.Total.Round(2),
		Currency:      in.Currency,
		PaymentType:   in.PaymentType,
	}

	stored, err := s.transactions.FirstOrCreate(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.logger.Info("ledger entry recorded",
		zap.String("booking_id", stored.BookingID),
		zap.String("transaction_id", stored.TransactionID),
		zap.String("total", stored.Total.String()),
		zap.String("currency", stored.Currency))

	return stored, nil
}

// History lists the ledger entries recorded for a booking.
func (s *LedgerService) History(ctx context.Context, bookingID string) ([]model.Transaction, error) {
	if bookingID == "" {
		return nil, domainErrors.NewInvalidInput("booking id is required")
	}
	entries, err := s.transactions.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return entries, nil
}
