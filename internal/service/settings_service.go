package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

// Fallback values used when a setting row is absent.
const (
	defaultCommissionRate = "15"
	defaultMinWithdrawal  = "100"
	defaultDepositAmount  = "1000"
)

// SettingsStore describes what the settings service needs from storage.
type SettingsStore interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Set(ctx context.Context, key, value string) error
	EnsureDefaults(ctx context.Context) error
}

// PlatformSettings is the admin view of the configurable parameters.
type PlatformSettings struct {
	CommissionRate string `json:"commission_rate"`
	MinWithdrawal  string `json:"min_withdrawal"`
	DepositAmount  string `json:"deposit_amount"`
}

// SettingsUpdate carries a partial settings change; nil fields are left
// untouched.
type SettingsUpdate struct {
	CommissionRate *string
	MinWithdrawal  *string
	DepositAmount  *string
}

// SettingsService reads and updates the configurable platform parameters.
// Workflow decisions read through it at decision time so a rate change
// affects only future approvals.
type SettingsService struct {
	repo SettingsStore
}

func NewSettingsService(repo SettingsStore) *SettingsService {
	return &SettingsService{repo: repo}
}

// EnsureDefaults seeds missing settings with their defaults.
func (s *SettingsService) EnsureDefaults(ctx context.Context) error {
	return s.repo.EnsureDefaults(ctx)
}

// CommissionRate returns the referral commission percentage.
func (s *SettingsService) CommissionRate(ctx context.Context) (decimal.Decimal, error) {
	return s.decimalSetting(ctx, models.SettingCommissionRate, defaultCommissionRate)
}

// MinWithdrawal returns the minimum withdrawal amount.
func (s *SettingsService) MinWithdrawal(ctx context.Context) (decimal.Decimal, error) {
	return s.decimalSetting(ctx, models.SettingMinWithdrawal, defaultMinWithdrawal)
}

// DepositAmount returns the fixed deposit amount.
func (s *SettingsService) DepositAmount(ctx context.Context) (decimal.Decimal, error) {
	return s.decimalSetting(ctx, models.SettingDepositAmount, defaultDepositAmount)
}

// All returns the current values of the three recognized settings.
func (s *SettingsService) All(ctx context.Context) (*PlatformSettings, error) {
	commission, err := s.stringSetting(ctx, models.SettingCommissionRate, defaultCommissionRate)
	if err != nil {
		return nil, err
	}
	minWithdrawal, err := s.stringSetting(ctx, models.SettingMinWithdrawal, defaultMinWithdrawal)
	if err != nil {
		return nil, err
	}
	depositAmount, err := s.stringSetting(ctx, models.SettingDepositAmount, defaultDepositAmount)
	if err != nil {
		return nil, err
	}

	return &PlatformSettings{
		CommissionRate: commission,
		MinWithdrawal:  minWithdrawal,
		DepositAmount:  depositAmount,
	}, nil
}

// Update applies the provided fields after validating them as decimals.
func (s *SettingsService) Update(ctx context.Context, update SettingsUpdate) error {
	if update.CommissionRate != nil {
		rate, err := decimal.NewFromString(*update.CommissionRate)
		if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
			return apperror.Validation("commission rate must be a percentage between 0 and 100")
		}
		if err := s.repo.Set(ctx, models.SettingCommissionRate, *update.CommissionRate); err != nil {
			return err
		}
	}
	if update.MinWithdrawal != nil {
		if err := validateSettingAmount(*update.MinWithdrawal, "minimum withdrawal"); err != nil {
			return err
		}
		if err := s.repo.Set(ctx, models.SettingMinWithdrawal, *update.MinWithdrawal); err != nil {
			return err
		}
	}
	if update.DepositAmount != nil {
		if err := validateSettingAmount(*update.DepositAmount, "deposit amount"); err != nil {
			return err
		}
		if err := s.repo.Set(ctx, models.SettingDepositAmount, *update.DepositAmount); err != nil {
			return err
		}
	}
	return nil
}

func (s *SettingsService) stringSetting(ctx context.Context, key, fallback string) (string, error) {
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return fallback, nil
	}
	return setting.Value, nil
}

func (s *SettingsService) decimalSetting(ctx context.Context, key, fallback string) (decimal.Decimal, error) {
	value, err := s.stringSetting(ctx, key, fallback)
	if err != nil {
		return decimal.Zero, err
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("settings service: setting %s holds non-numeric value %q: %w", key, value, err)
	}
	return parsed, nil
}

func validateSettingAmount(value, name string) error {
	amount, err := decimal.NewFromString(value)
	if err != nil || !models.ValidAmount(amount) {
		return apperror.Validation("%s must be a positive amount", name)
	}
	return nil
}
