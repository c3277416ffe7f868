package dto

// RegisterRequest is the registration form.
type RegisterRequest struct {
	FullName        string `json:"full_name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
	Phone           string `json:"phone" binding:"required"`
	ReferredBy      string `json:"referred_by"`
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SubmitWithdrawalRequest is the payout request form.
type SubmitWithdrawalRequest struct {
	Amount        string `json:"amount" binding:"required"`
	Method        string `json:"method" binding:"required"`
	AccountNumber string `json:"account_number" binding:"required"`
	AccountName   string `json:"account_name" binding:"required"`
}

// DecisionRequest carries the admin's note for an approve/reject decision.
// Notes are optional for approval and mandatory for rejection; the service
// enforces the latter.
type DecisionRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// ToggleStatusRequest flips a user's active flag.
type ToggleStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateSettingsRequest is a partial settings change.
type UpdateSettingsRequest struct {
	CommissionRate *string `json:"commission_rate"`
	MinWithdrawal  *string `json:"min_withdrawal"`
	DepositAmount  *string `json:"deposit_amount"`
}
