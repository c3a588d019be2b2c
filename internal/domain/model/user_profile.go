package model

import "time"

// UserProfile links a platform user to its provider-side identities. At most
// one account id and one customer id exist per user; the account id is
// written only by the account service and the customer id only by the card
// service. Profiles are never deleted here.
type UserProfile struct {
	ProfileID  int64     `gorm:"column:profile_id;primaryKey;autoIncrement" json:"profile_id"`
	UserID     string    `gorm:"size:36;uniqueIndex;not null" json:"user_id"`
	AccountID  *string   `gorm:"size:100" json:"account_id,omitempty"`
	CustomerID *string   `gorm:"size:100" json:"customer_id,omitempty"`
	CreatedAt  time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt  time.Time `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (UserProfile) TableName() string {
	return "user_profiles"
}
