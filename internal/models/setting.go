package models

import "time"

// Recognized settings keys.
const (
	SettingCommissionRate = "commission_rate"
	SettingMinWithdrawal  = "min_withdrawal"
	SettingDepositAmount  = "deposit_amount"
)

// Setting is one configurable platform parameter. Read-mostly; written only
// through the admin settings endpoint.
type Setting struct {
	ID        string    `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
