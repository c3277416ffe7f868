package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

const userColumns = `id, full_name, email, password_hash, phone, role, balance,
	referral_code, referred_by, is_active, created_at`

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. Duplicate email surfaces as a validation error.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.GetContext(ctx, user, `
		INSERT INTO users (full_name, email, password_hash, phone, role, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns+`
	`, user.FullName, user.Email, user.PasswordHash, user.Phone, user.Role, user.ReferralCode, user.ReferredBy)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return apperror.New(apperror.ErrCodeValidation, "email already registered")
		}
		return fmt.Errorf("user repository: create: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user repository: get by id: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user repository: get by email: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user repository: get by referral code: %w", err)
	}
	return &user, nil
}

// List returns non-admin users, newest first.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users, `
		SELECT `+userColumns+` FROM users
		WHERE role = 'user'
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("user repository: list: %w", err)
	}
	return users, nil
}

// ListReferred returns the users onboarded through the given referral code.
func (r *UserRepository) ListReferred(ctx context.Context, referralCode string) ([]models.ReferredUser, error) {
	var referred []models.ReferredUser
	err := r.db.SelectContext(ctx, &referred, `
		SELECT full_name, email, created_at FROM users
		WHERE referred_by = $1
		ORDER BY created_at DESC
	`, referralCode)
	if err != nil {
		return nil, fmt.Errorf("user repository: list referred: %w", err)
	}
	return referred, nil
}

// SetActive flips the active/blocked flag.
func (r *UserRepository) SetActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $2 WHERE id = $1`, id, isActive)
	if err != nil {
		return fmt.Errorf("user repository: set active: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

// Stats counts registered and active non-admin users.
func (r *UserRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	var stats models.UserStats
	err := r.db.GetContext(ctx, &stats, `
		SELECT COUNT(*)                             AS total_users,
		       COUNT(*) FILTER (WHERE is_active)    AS active_users
		FROM users WHERE role = 'user'
	`)
	if err != nil {
		return nil, fmt.Errorf("user repository: stats: %w", err)
	}
	return &stats, nil
}
