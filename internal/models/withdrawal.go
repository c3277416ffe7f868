package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Supported payout methods.
const (
	WithdrawalMethodEasypaisa = "easypaisa"
	WithdrawalMethodJazzcash  = "jazzcash"
)

// Withdrawal is a payout request. The requested amount is deducted from the
// user's balance at submission time (the hold) and restored on rejection.
type Withdrawal struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	Amount        decimal.Decimal `db:"amount" json:"amount"`
	Method        string          `db:"method" json:"method"`
	AccountNumber string          `db:"account_number" json:"account_number"`
	AccountName   string          `db:"account_name" json:"account_name"`
	Status        string          `db:"status" json:"status"`
	AdminNotes    *string         `db:"admin_notes" json:"admin_notes,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	ProcessedAt   *time.Time      `db:"processed_at" json:"processed_at,omitempty"`
}

// WithdrawalWithUser is a pending-queue row joined with the requesting user.
type WithdrawalWithUser struct {
	Withdrawal
	UserFullName string `db:"user_full_name" json:"user_full_name"`
	UserEmail    string `db:"user_email" json:"user_email"`
}

// ValidWithdrawalMethod reports whether method is a supported payout channel.
func ValidWithdrawalMethod(method string) bool {
	return method == WithdrawalMethodEasypaisa || method == WithdrawalMethodJazzcash
}
