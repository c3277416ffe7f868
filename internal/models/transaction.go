package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction history kinds.
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeCommission = "commission"
)

// Transaction is one append-only history entry. Rows are never updated or
// deleted; aggregate reporting sums over this table.
type Transaction struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	UserID      uuid.UUID       `db:"user_id" json:"user_id"`
	Type        string          `db:"type" json:"type"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Description string          `db:"description" json:"description"`
	ReferenceID *uuid.UUID      `db:"reference_id" json:"reference_id,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// TransactionTotals are the history sums by kind for the admin dashboard.
type TransactionTotals struct {
	TotalDeposits    decimal.Decimal `db:"total_deposits" json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `db:"total_withdrawals" json:"total_withdrawals"`
	TotalCommissions decimal.Decimal `db:"total_commissions" json:"total_commissions"`
}
