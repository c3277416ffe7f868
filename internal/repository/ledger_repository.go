package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

// LedgerRepository owns the authoritative user balance and the append-only
// transaction history. Credit and Debit run inside the caller's transaction
// so that a balance mutation, its history entry and the related request
// status transition commit or roll back as one unit. Both lock the user row
// FOR UPDATE, which serializes all writers on a given balance.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Credit increases the user's balance by amount and appends one history
// entry, both inside tx. Amount must be positive with at most two decimal
// places.
func (r *LedgerRepository) Credit(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount decimal.Decimal, txType, description string, referenceID *uuid.UUID) (*models.Transaction, error) {
	if !models.ValidAmount(amount) {
		return nil, apperror.ErrInvalidAmount
	}

	if _, err := lockBalance(ctx, tx, userID); err != nil {
		return nil, err
	}

	_, err := tx.ExecContext(ctx, `
		UPDATE users SET balance = balance + $2 WHERE id = $1
	`, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("ledger repository: credit balance: %w", err)
	}

	var transaction models.Transaction
	err = tx.GetContext(ctx, &transaction, `
		INSERT INTO transactions (user_id, type, amount, description, reference_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, type, amount, description, reference_id, created_at
	`, userID, txType, amount, description, referenceID)
	if err != nil {
		return nil, fmt.Errorf("ledger repository: append history: %w", err)
	}

	return &transaction, nil
}

// Debit decreases the user's balance by amount inside tx, failing with
// ErrInsufficientBalance when the result would be negative. It writes no
// history entry; the caller decides kind and description, if any.
func (r *LedgerRepository) Debit(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, amount decimal.Decimal) error {
	if !models.ValidAmount(amount) {
		return apperror.ErrInvalidAmount
	}

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return err
	}
	if balance.LessThan(amount) {
		return apperror.ErrInsufficientBalance
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET balance = balance - $2 WHERE id = $1
	`, userID, amount)
	if err != nil {
		return fmt.Errorf("ledger repository: debit balance: %w", err)
	}

	return nil
}

// CurrentBalance is a point-in-time read of the user's balance.
func (r *LedgerRepository) CurrentBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM users WHERE id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, apperror.ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger repository: current balance: %w", err)
	}
	return balance, nil
}

// ListByUser returns the user's most recent history entries.
func (r *LedgerRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT id, user_id, type, amount, description, reference_id, created_at
		FROM transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger repository: list transactions: %w", err)
	}
	return transactions, nil
}

// SumByUserAndType totals one user's history entries of a given kind.
func (r *LedgerRepository) SumByUserAndType(ctx context.Context, userID uuid.UUID, txType string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = $1 AND type = $2
	`, userID, txType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger repository: sum by user and type: %w", err)
	}
	return total, nil
}

// Totals sums the history by kind. The history is the sole source for
// aggregate reporting.
func (r *LedgerRepository) Totals(ctx context.Context) (*models.TransactionTotals, error) {
	var totals models.TransactionTotals
	err := r.db.GetContext(ctx, &totals, `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'deposit'), 0)    AS total_deposits,
			COALESCE(SUM(amount) FILTER (WHERE type = 'withdrawal'), 0) AS total_withdrawals,
			COALESCE(SUM(amount) FILTER (WHERE type = 'commission'), 0) AS total_commissions
		FROM transactions
	`)
	if err != nil {
		return nil, fmt.Errorf("ledger repository: totals: %w", err)
	}
	return &totals, nil
}

// lockBalance selects the user's balance FOR UPDATE, establishing the
// one-writer-at-a-time discipline per user row.
func lockBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM users WHERE id = $1 FOR UPDATE`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, apperror.ErrAccountNotFound
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger repository: lock balance: %w", err)
	}
	return balance, nil
}
