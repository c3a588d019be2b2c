package database

import (
	"github.com/roomstays/payment-service/internal/adapter/repository"
	domainRepo "github.com/roomstays/payment-service/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Users        domainRepo.UserRepository
	Profiles     domainRepo.UserProfileRepository
	Listings     domainRepo.ListingRepository
	Transactions domainRepo.TransactionRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Users:        repository.NewUserRepository(db),
		Profiles:     repository.NewUserProfileRepository(db),
		Listings:     repository.NewListingRepository(db),
		Transactions: repository.NewTransactionRepository(db, logger),
	}
}
