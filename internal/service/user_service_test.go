package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/abrarlaghari22/absrefer/internal/models"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) ListReferred(ctx context.Context, referralCode string) ([]models.ReferredUser, error) {
	args := m.Called(ctx, referralCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReferredUser), args.Error(1)
}

func (m *mockUserRepo) SetActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *mockUserRepo) Stats(ctx context.Context) (*models.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserStats), args.Error(1)
}

type mockLedgerReader struct {
	mock.Mock
}

func (m *mockLedgerReader) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *mockLedgerReader) SumByUserAndType(ctx context.Context, userID uuid.UUID, txType string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, txType)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockLedgerReader) Totals(ctx context.Context) (*models.TransactionTotals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionTotals), args.Error(1)
}

type mockStatsSettings struct {
	mock.Mock
}

func (m *mockStatsSettings) CommissionRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func TestUserService_Referrals(t *testing.T) {
	users := new(mockUserRepo)
	ledger := new(mockLedgerReader)
	settings := new(mockStatsSettings)
	svc := NewUserService(users, ledger, settings)
	ctx := context.Background()
	userID := uuid.New()

	user := &models.User{ID: userID, ReferralCode: "REF1A2B3C4D"}
	referred := []models.ReferredUser{
		{FullName: "Sara Khan", Email: "sara@example.com"},
		{FullName: "Bilal Ahmed", Email: "bilal@example.com"},
	}

	users.On("GetByID", ctx, userID).Return(user, nil)
	users.On("ListReferred", ctx, "REF1A2B3C4D").Return(referred, nil)
	ledger.On("SumByUserAndType", ctx, userID, models.TransactionTypeCommission).Return(decimal.NewFromInt(300), nil)

	summary, err := svc.Referrals(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, 2, summary.TotalReferrals)
	assert.True(t, summary.TotalEarnings.Equal(decimal.NewFromInt(300)))
	assert.Len(t, summary.Referrals, 2)
}

func TestUserService_Referrals_NoneYet(t *testing.T) {
	users := new(mockUserRepo)
	ledger := new(mockLedgerReader)
	settings := new(mockStatsSettings)
	svc := NewUserService(users, ledger, settings)
	ctx := context.Background()
	userID := uuid.New()

	users.On("GetByID", ctx, userID).Return(&models.User{ID: userID, ReferralCode: "REFAAAA1111"}, nil)
	users.On("ListReferred", ctx, "REFAAAA1111").Return([]models.ReferredUser{}, nil)
	ledger.On("SumByUserAndType", ctx, userID, models.TransactionTypeCommission).Return(decimal.Zero, nil)

	summary, err := svc.Referrals(ctx, userID)
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.TotalReferrals)
	assert.NotNil(t, summary.Referrals)
	assert.True(t, summary.TotalEarnings.IsZero())
}

func TestUserService_Transactions_DefaultLimit(t *testing.T) {
	users := new(mockUserRepo)
	ledger := new(mockLedgerReader)
	settings := new(mockStatsSettings)
	svc := NewUserService(users, ledger, settings)
	ctx := context.Background()
	userID := uuid.New()

	ledger.On("ListByUser", ctx, userID, 20).Return([]models.Transaction{}, nil)

	_, err := svc.Transactions(ctx, userID, 0)
	assert.NoError(t, err)
	ledger.AssertExpectations(t)

	ledger.On("ListByUser", ctx, userID, 20).Return([]models.Transaction{}, nil)
	_, err = svc.Transactions(ctx, userID, 500)
	assert.NoError(t, err)
}

func TestUserService_PlatformStats(t *testing.T) {
	users := new(mockUserRepo)
	ledger := new(mockLedgerReader)
	settings := new(mockStatsSettings)
	svc := NewUserService(users, ledger, settings)
	ctx := context.Background()

	users.On("Stats", ctx).Return(&models.UserStats{TotalUsers: 40, ActiveUsers: 35}, nil)
	ledger.On("Totals", ctx).Return(&models.TransactionTotals{
		TotalDeposits:    decimal.NewFromInt(40000),
		TotalWithdrawals: decimal.NewFromInt(12000),
		TotalCommissions: decimal.NewFromInt(4500),
	}, nil)
	settings.On("CommissionRate", ctx).Return(decimal.NewFromInt(15), nil)

	stats, err := svc.PlatformStats(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 40, stats.TotalUsers)
	assert.Equal(t, 35, stats.ActiveUsers)
	assert.True(t, stats.TotalDeposits.Equal(decimal.NewFromInt(40000)))
	assert.True(t, stats.CommissionRate.Equal(decimal.NewFromInt(15)))
}
