package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

type mockSettingsStore struct {
	mock.Mock
}

func (m *mockSettingsStore) Get(ctx context.Context, key string) (*models.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Setting), args.Error(1)
}

func (m *mockSettingsStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *mockSettingsStore) EnsureDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestSettingsService_CommissionRate_FromStore(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)
	ctx := context.Background()

	store.On("Get", ctx, models.SettingCommissionRate).Return(&models.Setting{Key: models.SettingCommissionRate, Value: "20"}, nil)

	rate, err := svc.CommissionRate(ctx)
	assert.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(20)))
}

func TestSettingsService_CommissionRate_Fallback(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)
	ctx := context.Background()

	store.On("Get", ctx, models.SettingCommissionRate).Return(nil, nil)

	rate, err := svc.CommissionRate(ctx)
	assert.NoError(t, err)
	assert.True(t, rate.Equal(decimal.NewFromInt(15)))
}

func TestSettingsService_All(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)
	ctx := context.Background()

	store.On("Get", ctx, models.SettingCommissionRate).Return(&models.Setting{Value: "15"}, nil)
	store.On("Get", ctx, models.SettingMinWithdrawal).Return(&models.Setting{Value: "250"}, nil)
	store.On("Get", ctx, models.SettingDepositAmount).Return(nil, nil)

	settings, err := svc.All(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "15", settings.CommissionRate)
	assert.Equal(t, "250", settings.MinWithdrawal)
	assert.Equal(t, "1000", settings.DepositAmount)
}

func TestSettingsService_Update_PartialChange(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)
	ctx := context.Background()

	rate := "25"
	store.On("Set", ctx, models.SettingCommissionRate, "25").Return(nil)

	err := svc.Update(ctx, SettingsUpdate{CommissionRate: &rate})
	assert.NoError(t, err)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "Set", ctx, models.SettingMinWithdrawal, mock.Anything)
}

func TestSettingsService_Update_RateOutOfRange(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)

	rate := "150"
	err := svc.Update(context.Background(), SettingsUpdate{CommissionRate: &rate})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsService_Update_NegativeAmount(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)

	amount := "-10"
	err := svc.Update(context.Background(), SettingsUpdate{MinWithdrawal: &amount})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestSettingsService_Update_NonNumeric(t *testing.T) {
	store := new(mockSettingsStore)
	svc := NewSettingsService(store)

	amount := "lots"
	err := svc.Update(context.Background(), SettingsUpdate{DepositAmount: &amount})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
