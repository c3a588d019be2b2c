package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/roomstays/payment-service/internal/domain/gateway"
	"github.com/roomstays/payment-service/internal/domain/model"
	"github.com/roomstays/payment-service/internal/domain/provider"
)

// MockPaymentProvider is a mock implementation of provider.PaymentProvider
type MockPaymentProvider struct {
	mock.Mock
}

func (m *MockPaymentProvider) CreateAccount(ctx context.Context, details provider.AccountDetails) (*provider.Account, error) {
	args := m.Called(ctx, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Account), args.Error(1)
}

func (m *MockPaymentProvider) GetAccount(ctx context.Context, accountID string) (*provider.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Account), args.Error(1)
}

func (m *MockPaymentProvider) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockPaymentProvider) CreateCustomer(ctx context.Context, email string) (*provider.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Customer), args.Error(1)
}

func (m *MockPaymentProvider) GetCustomer(ctx context.Context, customerID string) (*provider.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Customer), args.Error(1)
}

func (m *MockPaymentProvider) CreateCardToken(ctx context.Context, card provider.CardDetails) (string, error) {
	args := m.Called(ctx, card)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentProvider) AttachSource(ctx context.Context, customerID, token string) (*provider.Card, error) {
	args := m.Called(ctx, customerID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Card), args.Error(1)
}

func (m *MockPaymentProvider) DetachSource(ctx context.Context, customerID, sourceID string) error {
	args := m.Called(ctx, customerID, sourceID)
	return args.Error(0)
}

func (m *MockPaymentProvider) SetDefaultSource(ctx context.Context, customerID, sourceID string) error {
	args := m.Called(ctx, customerID, sourceID)
	return args.Error(0)
}

func (m *MockPaymentProvider) CreateCharge(ctx context.Context, req provider.ChargeRequest) (*provider.Charge, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.Charge), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockUserProfileRepository is a mock implementation of repository.UserProfileRepository
type MockUserProfileRepository struct {
	mock.Mock
}

func (m *MockUserProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserProfile), args.Error(1)
}

func (m *MockUserProfileRepository) SetAccountID(ctx context.Context, profileID int64, accountID string) (bool, error) {
	args := m.Called(ctx, profileID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserProfileRepository) ClearAccountID(ctx context.Context, profileID int64) error {
	args := m.Called(ctx, profileID)
	return args.Error(0)
}

func (m *MockUserProfileRepository) SetCustomerID(ctx context.Context, profileID int64, customerID string) error {
	args := m.Called(ctx, profileID, customerID)
	return args.Error(0)
}

// MockListingRepository is a mock implementation of repository.ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) GetLocation(ctx context.Context, id int64) (*model.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Location), args.Error(1)
}

// MockTransactionRepository is a mock implementation of repository.TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FirstOrCreate(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByBookingID(ctx context.Context, bookingID string) ([]model.Transaction, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

// MockCache is a mock implementation of cache.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockBookingGateway is a mock implementation of gateway.BookingGateway
type MockBookingGateway struct {
	mock.Mock
}

func (m *MockBookingGateway) GetBooking(ctx context.Context, bookingID string) (*gateway.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Booking), args.Error(1)
}

func (m *MockBookingGateway) Transition(ctx context.Context, bookingID, bookingType string) (string, error) {
	args := m.Called(ctx, bookingID, bookingType)
	return args.String(0), args.Error(1)
}

func (m *MockBookingGateway) Annotate(ctx context.Context, bookingID, sourceID, chargeID string) error {
	args := m.Called(ctx, bookingID, sourceID, chargeID)
	return args.Error(0)
}
