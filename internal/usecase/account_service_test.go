package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/roomstays/payment-service/internal/domain/cache"
	domainErrors "github.com/roomstays/payment-service/internal/domain/errors"
	"github.com/roomstays/payment-service/internal/domain/model"
	"github.com/roomstays/payment-service/internal/domain/provider"
)

func strPtr(s string) *string {
	return &s
}

func testAccount() *provider.Account {
	return &provider.Account{
		ID:               "acct_123",
		Email:            "host@example.com",
		Country:          "AU",
		DetailsSubmitted: true,
		ChargesEnabled:   true,
		PayoutsEnabled:   true,
		Created:          1700000000,
	}
}

func TestAccountService_Get_CacheHit(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	snapshot, _ := json.Marshal(testAccount())
	accountCache.On("Get", mock.Anything, cache.AccountKey("user-1")).
		Return(string(snapshot), nil)

	acct, err := svc.Get(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "acct_123", acct.ID)
	// A cache hit short-circuits the database and the provider entirely
	profiles.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
	prov.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
}

func TestAccountService_Get_CacheMissFetchesAndStores(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	key := cache.AccountKey("user-1")
	accountCache.On("Get", mock.Anything, key).Return("", cache.ErrMiss)
	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1", AccountID: strPtr("acct_123")}, nil)
	prov.On("GetAccount", mock.Anything, "acct_123").Return(testAccount(), nil)
	accountCache.On("Set", mock.Anything, key, mock.Anything).Return(nil)

	acct, err := svc.Get(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "acct_123", acct.ID)
	prov.AssertNumberOfCalls(t, "GetAccount", 1)
	accountCache.AssertCalled(t, "Set", mock.Anything, key, mock.Anything)
}

func TestAccountService_Get_UndecodableCacheEntryDiscarded(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	key := cache.AccountKey("user-1")
	accountCache.On("Get", mock.Anything, key).Return("{not json", nil)
	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1", AccountID: strPtr("acct_123")}, nil)
	prov.On("GetAccount", mock.Anything, "acct_123").Return(testAccount(), nil)
	accountCache.On("Set", mock.Anything, key, mock.Anything).Return(nil)

	acct, err := svc.Get(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "acct_123", acct.ID)
	prov.AssertNumberOfCalls(t, "GetAccount", 1)
}

func TestAccountService_Get_CacheWriteFailureIsSwallowed(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	key := cache.AccountKey("user-1")
	accountCache.On("Get", mock.Anything, key).Return("", cache.ErrMiss)
	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1", AccountID: strPtr("acct_123")}, nil)
	prov.On("GetAccount", mock.Anything, "acct_123").Return(testAccount(), nil)
	accountCache.On("Set", mock.Anything, key, mock.Anything).
		Return(errors.New("redis: connection refused"))

	acct, err := svc.Get(context.Background(), "user-1")

	// The cache is a speed optimization only: a failed write never
	// surfaces to the caller
	assert.NoError(t, err)
	assert.Equal(t, "acct_123", acct.ID)
	accountCache.AssertCalled(t, "Set", mock.Anything, key, mock.Anything)
}

func TestAccountService_Get_NoAccount(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	accountCache.On("Get", mock.Anything, mock.Anything).Return("", cache.ErrMiss)
	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1"}, nil)

	acct, err := svc.Get(context.Background(), "user-1")

	assert.Nil(t, acct)
	assert.True(t, domainErrors.IsKind(err, domainErrors.KindNoAccount))
	prov.AssertNotCalled(t, "GetAccount", mock.Anything, mock.Anything)
}

func TestAccountService_Get_EmptyUserID(t *testing.T) {
	svc := NewAccountService(new(MockUserProfileRepository), new(MockPaymentProvider), new(MockCache), zap.NewNop())

	acct, err := svc.Get(context.Background(), "")

	assert.Nil(t, acct)
	assert.True(t, domainErrors.IsKind(err, domainErrors.KindInvalidInput))
}

func TestAccountService_Get_ProviderMissingAccount(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	accountCache.On("Get", mock.Anything, mock.Anything).Return("", cache.ErrMiss)
	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1", AccountID: strPtr("acct_gone")}, nil)
	prov.On("GetAccount", mock.Anything, "acct_gone").Return(nil, provider.ErrNotFound)

	acct, err := svc.Get(context.Background(), "user-1")

	assert.Nil(t, acct)
	assert.True(t, domainErrors.IsKind(err, domainErrors.KindNotFound))
}

func TestAccountService_Create_Success(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	details := provider.AccountDetails{Email: "host@example.com", Country: "AU"}
	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1"}, nil)
	prov.On("CreateAccount", mock.Anything, details).Return(testAccount(), nil)
	profiles.On("SetAccountID", mock.Anything, int64(7), "acct_123").Return(true, nil)
	accountCache.On("Set", mock.Anything, cache.AccountKey("user-1"), mock.Anything).Return(nil)

	acct, err := svc.Create(context.Background(), "user-1", details)

	assert.NoError(t, err)
	assert.Equal(t, "acct_123", acct.ID)
}

func TestAccountService_Create_ConflictSkipsProvider(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	svc := NewAccountService(profiles, prov, new(MockCache), zap.NewNop())

	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1", AccountID: strPtr("acct_123")}, nil)

	acct, err := svc.Create(context.Background(), "user-1", provider.AccountDetails{})

	assert.Nil(t, acct)
	assert.True(t, domainErrors.IsKind(err, domainErrors.KindConflict))
	prov.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything)
}

func TestAccountService_Create_LostRaceIsConflict(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1"}, nil)
	prov.On("CreateAccount", mock.Anything, mock.Anything).Return(testAccount(), nil)
	// Guard failed: someone else stored an account id in between
	profiles.On("SetAccountID", mock.Anything, int64(7), "acct_123").Return(false, nil)

	acct, err := svc.Create(context.Background(), "user-1", provider.AccountDetails{})

	assert.Nil(t, acct)
	assert.True(t, domainErrors.IsKind(err, domainErrors.KindConflict))
	accountCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_Delete_Success(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	accountCache := new(MockCache)
	svc := NewAccountService(profiles, prov, accountCache, zap.NewNop())

	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1", AccountID: strPtr("acct_123")}, nil)
	prov.On("DeleteAccount", mock.Anything, "acct_123").Return(nil)
	profiles.On("ClearAccountID", mock.Anything, int64(7)).Return(nil)
	accountCache.On("Del", mock.Anything, cache.AccountKey("user-1")).Return(nil)

	result, err := svc.Delete(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.True(t, result.Deleted)
	assert.Equal(t, "acct_123", result.ID)
	profiles.AssertCalled(t, "ClearAccountID", mock.Anything, int64(7))
	accountCache.AssertCalled(t, "Del", mock.Anything, cache.AccountKey("user-1"))
}

func TestAccountService_Delete_NoAccountIsNoop(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	svc := NewAccountService(profiles, prov, new(MockCache), zap.NewNop())

	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1"}, nil)

	result, err := svc.Delete(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.False(t, result.Deleted)
	assert.Empty(t, result.ID)
	prov.AssertNotCalled(t, "DeleteAccount", mock.Anything, mock.Anything)
}

func TestAccountService_Delete_ProviderFailureKeepsReference(t *testing.T) {
	profiles := new(MockUserProfileRepository)
	prov := new(MockPaymentProvider)
	svc := NewAccountService(profiles, prov, new(MockCache), zap.NewNop())

	profiles.On("GetByUserID", mock.Anything, "user-1").
		Return(&model.UserProfile{ProfileID: 7, UserID: "user-1", AccountID: strPtr("acct_123")}, nil)
	prov.On("DeleteAccount", mock.Anything, "acct_123").Return(errors.New("stripe is down"))

	result, err := svc.Delete(context.Background(), "user-1")

	assert.Nil(t, result)
	assert.True(t, domainErrors.IsKind(err, domainErrors.KindUpstream))
	profiles.AssertNotCalled(t, "ClearAccountID", mock.Anything, mock.Anything)
}
