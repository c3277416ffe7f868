package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/models"
)

// ReferralCascade credits the referrer's commission when a referred user's
// deposit is approved. It runs inside the deposit-approval transaction, so a
// failed commission credit aborts the whole approval.
type ReferralCascade struct {
	ledger *LedgerRepository
}

func NewReferralCascade(ledger *LedgerRepository) *ReferralCascade {
	return &ReferralCascade{ledger: ledger}
}

// Apply resolves the depositor's referrer by referral code and credits the
// commission computed from rate. An empty or unresolvable referral code is a
// silent no-op; the deposit approval proceeds without a commission.
func (c *ReferralCascade) Apply(ctx context.Context, tx *sqlx.Tx, depositor *models.User, deposit *models.Deposit, rate decimal.Decimal) (*models.User, decimal.Decimal, error) {
	if depositor.ReferredBy == nil || *depositor.ReferredBy == "" {
		return nil, decimal.Zero, nil
	}

	var referrer models.User
	err := tx.GetContext(ctx, &referrer, `
		SELECT id, full_name, email, password_hash, phone, role, balance,
		       referral_code, referred_by, is_active, created_at
		FROM users WHERE referral_code = $1
	`, *depositor.ReferredBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, decimal.Zero, nil
	}
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("referral cascade: resolve referrer: %w", err)
	}

	commission := models.CommissionAmount(deposit.Amount, rate)
	if commission.IsZero() {
		return &referrer, decimal.Zero, nil
	}

	description := fmt.Sprintf("Referral commission from %s", depositor.FullName)
	if _, err := c.ledger.Credit(ctx, tx, referrer.ID, commission, models.TransactionTypeCommission, description, &deposit.ID); err != nil {
		return nil, decimal.Zero, fmt.Errorf("referral cascade: credit commission: %w", err)
	}

	return &referrer, commission, nil
}
