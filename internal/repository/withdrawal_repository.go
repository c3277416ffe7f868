package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

// WithdrawalRepository drives the withdrawal request state machine. The
// requested amount is debited from the user at submission time (the hold);
// approval only appends the history entry, rejection restores the hold.
type WithdrawalRepository struct {
	db     *sqlx.DB
	ledger *LedgerRepository
}

func NewWithdrawalRepository(db *sqlx.DB, ledger *LedgerRepository) *WithdrawalRepository {
	return &WithdrawalRepository{db: db, ledger: ledger}
}

// Create debits the hold and stores the pending request in one transaction.
// The debit locks the balance row, so two concurrent submissions by the same
// user serialize and the sum of holds never exceeds the balance.
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *models.Withdrawal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("withdrawal repository: begin create: %w", err)
	}
	defer tx.Rollback()

	if err := r.ledger.Debit(ctx, tx, withdrawal.UserID, withdrawal.Amount); err != nil {
		return err
	}

	err = tx.GetContext(ctx, withdrawal, `
		INSERT INTO withdrawals (user_id, amount, method, account_number, account_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, amount, method, account_number, account_name,
		          status, admin_notes, created_at, processed_at
	`, withdrawal.UserID, withdrawal.Amount, withdrawal.Method, withdrawal.AccountNumber, withdrawal.AccountName)
	if err != nil {
		return fmt.Errorf("withdrawal repository: create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("withdrawal repository: commit create: %w", err)
	}
	return nil
}

func (r *WithdrawalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := r.db.GetContext(ctx, &withdrawal, `
		SELECT id, user_id, amount, method, account_number, account_name,
		       status, admin_notes, created_at, processed_at
		FROM withdrawals WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: get by id: %w", err)
	}
	return &withdrawal, nil
}

func (r *WithdrawalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT id, user_id, amount, method, account_number, account_name,
		       status, admin_notes, created_at, processed_at
		FROM withdrawals WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: list by user: %w", err)
	}
	return withdrawals, nil
}

// ListPending returns the admin review queue, newest first.
func (r *WithdrawalRepository) ListPending(ctx context.Context) ([]models.WithdrawalWithUser, error) {
	var withdrawals []models.WithdrawalWithUser
	err := r.db.SelectContext(ctx, &withdrawals, `
		SELECT w.id, w.user_id, w.amount, w.method, w.account_number, w.account_name,
		       w.status, w.admin_notes, w.created_at, w.processed_at,
		       u.full_name AS user_full_name, u.email AS user_email
		FROM withdrawals w
		JOIN users u ON u.id = w.user_id
		WHERE w.status = 'pending'
		ORDER BY w.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: list pending: %w", err)
	}
	return withdrawals, nil
}

// Approve transitions the withdrawal to approved and appends the withdrawal
// history entry for the held amount. The hold already removed the funds, so
// the balance is not touched again.
func (r *WithdrawalRepository) Approve(ctx context.Context, id uuid.UUID, adminNotes *string) (*models.Withdrawal, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: begin approve: %w", err)
	}
	defer tx.Rollback()

	withdrawal, err := lockWithdrawal(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, withdrawal, `
		UPDATE withdrawals
		SET status = 'approved', admin_notes = $2, processed_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, amount, method, account_number, account_name,
		          status, admin_notes, created_at, processed_at
	`, id, adminNotes)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: approve update: %w", err)
	}

	description := fmt.Sprintf("Withdrawal approved to %s - %s", withdrawal.Method, withdrawal.AccountNumber)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (user_id, type, amount, description, reference_id)
		VALUES ($1, $2, $3, $4, $5)
	`, withdrawal.UserID, models.TransactionTypeWithdrawal, withdrawal.Amount, description, withdrawal.ID)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("withdrawal repository: commit approve: %w", err)
	}
	return withdrawal, nil
}

// Reject transitions the withdrawal to rejected and restores the held amount
// to the balance. No history entry is written for the reversal: the hold
// itself was never recorded in history.
func (r *WithdrawalRepository) Reject(ctx context.Context, id uuid.UUID, adminNotes string) (*models.Withdrawal, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: begin reject: %w", err)
	}
	defer tx.Rollback()

	withdrawal, err := lockWithdrawal(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, withdrawal, `
		UPDATE withdrawals
		SET status = 'rejected', admin_notes = $2, processed_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, amount, method, account_number, account_name,
		          status, admin_notes, created_at, processed_at
	`, id, adminNotes)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: reject update: %w", err)
	}

	if _, err := lockBalance(ctx, tx, withdrawal.UserID); err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE users SET balance = balance + $2 WHERE id = $1
	`, withdrawal.UserID, withdrawal.Amount)
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: restore hold: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("withdrawal repository: commit reject: %w", err)
	}
	return withdrawal, nil
}

// lockWithdrawal loads the request FOR UPDATE and verifies it is still
// pending.
func lockWithdrawal(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := tx.GetContext(ctx, &withdrawal, `
		SELECT id, user_id, amount, method, account_number, account_name,
		       status, admin_notes, created_at, processed_at
		FROM withdrawals WHERE id = $1 FOR UPDATE
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("withdrawal repository: lock: %w", err)
	}
	if withdrawal.Status != models.RequestStatusPending {
		return nil, apperror.ErrAlreadyProcessed
	}
	return &withdrawal, nil
}
