package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/models"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges an operation with a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the public projection of a user account.
type UserResponse struct {
	ID           uuid.UUID       `json:"id"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Role         string          `json:"role"`
	Balance      decimal.Decimal `json:"balance"`
	ReferralCode string          `json:"referral_code"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewUserResponse projects a user for API output.
func NewUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		FullName:     user.FullName,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
		Balance:      user.Balance,
		ReferralCode: user.ReferralCode,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}
}

// AuthResponse is the registration/login result.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
