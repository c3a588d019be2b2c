package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType classifies a ledger entry.
type PaymentType string

const (
	PaymentTypeBooking      PaymentType = "booking"
	PaymentTypeCancellation PaymentType = "cancellation"
	PaymentTypeHost         PaymentType = "host"
)

// Transaction is the durable ledger entry for a completed charge. The pair
// (booking_id, transaction_id) is unique; a second write with the same pair
// returns the stored row unchanged.
type Transaction struct {
	ID             int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID      string           `gorm:"size:36;not null;index" json:"booking_id"`
	TransactionID  string           `gorm:"size:255;not null" json:"transaction_id"`
	PayerEmail     string           `gorm:"size:255" json:"payer_email"`
	PayerID        string           `gorm:"size:255" json:"payer_id"`
	ReceiverEmail  string           `gorm:"size:255" json:"receiver_email"`
	ReceiverID     string           `gorm:"size:255" json:"receiver_id"`
	Total          decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"total"`
	TransactionFee *decimal.Decimal `gorm:"type:decimal(15,2)" json:"transaction_fee,omitempty"`
	Currency       string           `gorm:"size:3;not null" json:"currency"`
	PaymentType    PaymentType      `gorm:"size:20;default:'booking'" json:"payment_type"`
	CreatedAt      time.Time        `gorm:"default:now()" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Transaction) TableName() string {
	return "transactions"
}
