package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a platform account. Balance is mutated only by the ledger
// repository inside a transaction; handlers and services never write it
// directly.
type User struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	FullName     string          `db:"full_name" json:"full_name"`
	Email        string          `db:"email" json:"email"`
	PasswordHash string          `db:"password_hash" json:"-"`
	Phone        string          `db:"phone" json:"phone"`
	Role         string          `db:"role" json:"role"`
	Balance      decimal.Decimal `db:"balance" json:"balance"`
	ReferralCode string          `db:"referral_code" json:"referral_code"`
	ReferredBy   *string         `db:"referred_by" json:"referred_by,omitempty"`
	IsActive     bool            `db:"is_active" json:"is_active"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

// UserStats holds the user counters for the admin dashboard.
type UserStats struct {
	TotalUsers  int `db:"total_users" json:"total_users"`
	ActiveUsers int `db:"active_users" json:"active_users"`
}

// ReferredUser is the public view of a user onboarded through someone's
// referral code.
type ReferredUser struct {
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
