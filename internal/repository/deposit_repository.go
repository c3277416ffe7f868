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

// DepositRepository drives the deposit request state machine:
// pending -> approved | rejected, both terminal. Decisions lock the request
// row FOR UPDATE so that of two concurrent decisions only the first observes
// pending and the second fails with ErrAlreadyProcessed.
type DepositRepository struct {
	db      *sqlx.DB
	ledger  *LedgerRepository
	cascade *ReferralCascade
}

func NewDepositRepository(db *sqlx.DB, ledger *LedgerRepository, cascade *ReferralCascade) *DepositRepository {
	return &DepositRepository{db: db, ledger: ledger, cascade: cascade}
}

// Create stores a new pending deposit request. No ledger effect; the balance
// changes only on approval.
func (r *DepositRepository) Create(ctx context.Context, deposit *models.Deposit) error {
	err := r.db.GetContext(ctx, deposit, `
		INSERT INTO deposits (user_id, amount, transaction_id, proof_path, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, amount, transaction_id, proof_path, notes,
		          status, admin_notes, created_at, processed_at
	`, deposit.UserID, deposit.Amount, deposit.TransactionID, deposit.ProofPath, deposit.Notes)
	if err != nil {
		return fmt.Errorf("deposit repository: create: %w", err)
	}
	return nil
}

func (r *DepositRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Deposit, error) {
	var deposit models.Deposit
	err := r.db.GetContext(ctx, &deposit, `
		SELECT id, user_id, amount, transaction_id, proof_path, notes,
		       status, admin_notes, created_at, processed_at
		FROM deposits WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrDepositNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("deposit repository: get by id: %w", err)
	}
	return &deposit, nil
}

func (r *DepositRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Deposit, error) {
	var deposits []models.Deposit
	err := r.db.SelectContext(ctx, &deposits, `
		SELECT id, user_id, amount, transaction_id, proof_path, notes,
		       status, admin_notes, created_at, processed_at
		FROM deposits WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("deposit repository: list by user: %w", err)
	}
	return deposits, nil
}

// ListPending returns the admin review queue, newest first.
func (r *DepositRepository) ListPending(ctx context.Context) ([]models.DepositWithUser, error) {
	var deposits []models.DepositWithUser
	err := r.db.SelectContext(ctx, &deposits, `
		SELECT d.id, d.user_id, d.amount, d.transaction_id, d.proof_path, d.notes,
		       d.status, d.admin_notes, d.created_at, d.processed_at,
		       u.full_name AS user_full_name, u.email AS user_email
		FROM deposits d
		JOIN users u ON u.id = d.user_id
		WHERE d.status = 'pending'
		ORDER BY d.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("deposit repository: list pending: %w", err)
	}
	return deposits, nil
}

// Approve transitions the deposit to approved, credits the owner and applies
// the referral cascade, all inside one transaction. rate is the commission
// percentage read by the caller at decision time.
func (r *DepositRepository) Approve(ctx context.Context, id uuid.UUID, adminNotes *string, rate decimal.Decimal) (*models.DepositApproval, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("deposit repository: begin approve: %w", err)
	}
	defer tx.Rollback()

	deposit, err := lockDeposit(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, deposit, `
		UPDATE deposits
		SET status = 'approved', admin_notes = $2, processed_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, amount, transaction_id, proof_path, notes,
		          status, admin_notes, created_at, processed_at
	`, id, adminNotes)
	if err != nil {
		return nil, fmt.Errorf("deposit repository: approve update: %w", err)
	}

	var user models.User
	err = tx.GetContext(ctx, &user, `
		SELECT id, full_name, email, password_hash, phone, role, balance,
		       referral_code, referred_by, is_active, created_at
		FROM users WHERE id = $1
	`, deposit.UserID)
	if err != nil {
		return nil, fmt.Errorf("deposit repository: load depositor: %w", err)
	}

	description := fmt.Sprintf("Deposit approved - Transaction ID: %s", deposit.TransactionID)
	if _, err := r.ledger.Credit(ctx, tx, deposit.UserID, deposit.Amount, models.TransactionTypeDeposit, description, &deposit.ID); err != nil {
		return nil, err
	}

	referrer, commission, err := r.cascade.Apply(ctx, tx, &user, deposit, rate)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("deposit repository: commit approve: %w", err)
	}

	return &models.DepositApproval{
		Deposit:    deposit,
		User:       &user,
		Referrer:   referrer,
		Commission: commission,
	}, nil
}

// Reject transitions the deposit to rejected. Funds were never held for a
// deposit, so there is no balance effect.
func (r *DepositRepository) Reject(ctx context.Context, id uuid.UUID, adminNotes string) (*models.Deposit, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("deposit repository: begin reject: %w", err)
	}
	defer tx.Rollback()

	deposit, err := lockDeposit(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, deposit, `
		UPDATE deposits
		SET status = 'rejected', admin_notes = $2, processed_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, amount, transaction_id, proof_path, notes,
		          status, admin_notes, created_at, processed_at
	`, id, adminNotes)
	if err != nil {
		return nil, fmt.Errorf("deposit repository: reject update: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("deposit repository: commit reject: %w", err)
	}

	return deposit, nil
}

// lockDeposit loads the request FOR UPDATE and verifies it is still pending.
func lockDeposit(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*models.Deposit, error) {
	var deposit models.Deposit
	err := tx.GetContext(ctx, &deposit, `
		SELECT id, user_id, amount, transaction_id, proof_path, notes,
		       status, admin_notes, created_at, processed_at
		FROM deposits WHERE id = $1 FOR UPDATE
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrDepositNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("deposit repository: lock: %w", err)
	}
	if deposit.Status != models.RequestStatusPending {
		return nil, apperror.ErrAlreadyProcessed
	}
	return &deposit, nil
}
