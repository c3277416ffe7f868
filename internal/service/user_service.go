package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/models"
)

// UserRepository describes the storage the user service depends on.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	ListReferred(ctx context.Context, referralCode string) ([]models.ReferredUser, error)
	SetActive(ctx context.Context, id uuid.UUID, isActive bool) error
	Stats(ctx context.Context) (*models.UserStats, error)
}

// LedgerReader is the read-only slice of the ledger the user service uses.
type LedgerReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error)
	SumByUserAndType(ctx context.Context, userID uuid.UUID, txType string) (decimal.Decimal, error)
	Totals(ctx context.Context) (*models.TransactionTotals, error)
}

// StatsSettings provides the commission rate shown on the admin dashboard.
type StatsSettings interface {
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
}

// ReferralSummary describes a user's referral activity.
type ReferralSummary struct {
	TotalReferrals int                   `json:"total_referrals"`
	TotalEarnings  decimal.Decimal       `json:"total_earnings"`
	Referrals      []models.ReferredUser `json:"referrals"`
}

// PlatformStats is the admin dashboard aggregate.
type PlatformStats struct {
	TotalUsers       int             `json:"total_users"`
	ActiveUsers      int             `json:"active_users"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalCommissions decimal.Decimal `json:"total_commissions"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
}

// UserService serves profile and reporting reads plus the admin user
// management operations.
type UserService struct {
	users    UserRepository
	ledger   LedgerReader
	settings StatsSettings
}

func NewUserService(users UserRepository, ledger LedgerReader, settings StatsSettings) *UserService {
	return &UserService{users: users, ledger: ledger, settings: settings}
}

// Profile returns the user by id.
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Transactions returns the user's recent history entries.
func (s *UserService) Transactions(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.ledger.ListByUser(ctx, userID, limit)
}

// Referrals summarizes who the user referred and what it earned them.
func (s *UserService) Referrals(ctx context.Context, userID uuid.UUID) (*ReferralSummary, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	referred, err := s.users.ListReferred(ctx, user.ReferralCode)
	if err != nil {
		return nil, err
	}

	earnings, err := s.ledger.SumByUserAndType(ctx, userID, models.TransactionTypeCommission)
	if err != nil {
		return nil, err
	}

	if referred == nil {
		referred = []models.ReferredUser{}
	}

	return &ReferralSummary{
		TotalReferrals: len(referred),
		TotalEarnings:  earnings,
		Referrals:      referred,
	}, nil
}

// ListUsers returns a page of non-admin users.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	return s.users.List(ctx, limit, (page-1)*limit)
}

// ToggleStatus activates or deactivates a user account.
func (s *UserService) ToggleStatus(ctx context.Context, userID uuid.UUID, isActive bool) error {
	return s.users.SetActive(ctx, userID, isActive)
}

// PlatformStats assembles the admin dashboard numbers.
func (s *UserService) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	userStats, err := s.users.Stats(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := s.ledger.Totals(ctx)
	if err != nil {
		return nil, err
	}

	rate, err := s.settings.CommissionRate(ctx)
	if err != nil {
		return nil, err
	}

	return &PlatformStats{
		TotalUsers:       userStats.TotalUsers,
		ActiveUsers:      userStats.ActiveUsers,
		TotalDeposits:    totals.TotalDeposits,
		TotalWithdrawals: totals.TotalWithdrawals,
		TotalCommissions: totals.TotalCommissions,
		CommissionRate:   rate,
	}, nil
}
