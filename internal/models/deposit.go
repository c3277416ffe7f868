package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request statuses shared by deposits and withdrawals.
// pending is the only non-terminal state.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Deposit is a user's claim of having paid the fixed deposit amount,
// waiting for an admin decision. ProcessedAt is set exactly once, on the
// terminal transition.
type Deposit struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	TransactionID string          `db:"transaction_id" json:"transaction_id"`
	ProofPath     *string         `db:"proof_path" json:"proof_path,omitempty"`
	Notes         *string         `db:"notes" json:"notes,omitempty"`
	Status        string          `db:"status" json:"status"`
	AdminNotes    *string         `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt   *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}

// DepositWithUser is a pending-queue row joined with the requesting user.
type DepositWithUser struct {
	Deposit
	UserFullName string `db:"user_full_name" json:"user_full_name"`
	UserEmail    string `db:"user_email" json:"user_email"`
}

// DepositApproval is everything the workflow learns from a committed
// approval: the terminal deposit, its owner, and the commission paid to the
// referrer (nil when the depositor has no resolvable referrer).
type DepositApproval struct {
	Deposit    *Deposit
	User       *User
	Referrer   *User
	Commission decimal.Decimal
}
