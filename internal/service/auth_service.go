package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/abrarlaghari22/absrefer/internal/logger"
	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
	"github.com/abrarlaghari22/absrefer/internal/validation"
)

// AuthRepository describes the storage the auth service depends on.
type AuthRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)
}

// AuthService handles registration and login. Password hashing and token
// issuance live here; everything downstream trusts the resolved identity.
type AuthService struct {
	repo         AuthRepository
	tokenManager *TokenManager
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FullName   string
	Email      string
	Password   string
	Phone      string
	ReferredBy string
}

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	User  *models.User
	Token string
}

func NewAuthService(repo AuthRepository, tokenManager *TokenManager) *AuthService {
	return &AuthService{
		repo:         repo,
		tokenManager: tokenManager,
	}
}

// Register validates the form, verifies the referral code if one was given
// and creates the account with a fresh referral code.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := validation.ValidateFullName(in.FullName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidatePhone(in.Phone); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Validation("email already registered")
	} else if !apperror.IsNotFound(err) {
		return nil, err
	}

	var referredBy *string
	if code := strings.TrimSpace(in.ReferredBy); code != "" {
		if _, err := s.repo.GetByReferralCode(ctx, code); err != nil {
			if apperror.IsNotFound(err) {
				return nil, apperror.Validation("invalid referral code")
			}
			return nil, err
		}
		referredBy = &code
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: hash password: %w", err)
	}

	user := &models.User{
		FullName:     strings.TrimSpace(in.FullName),
		Email:        email,
		PasswordHash: string(passHash),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         models.RoleUser,
		ReferralCode: generateReferralCode(),
		ReferredBy:   referredBy,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: issue token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies the credentials and issues a token. Blocked accounts are
// rejected after the password check so the error does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperror.ErrAccountDeactivated
	}

	token, err := s.tokenManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: issue token: %w", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account when missing.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context, email, password string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !apperror.IsNotFound(err) {
		return err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth service: hash admin password: %w", err)
	}

	admin := &models.User{
		FullName:     "ABS REFERZONE Admin",
		Email:        email,
		PasswordHash: string(passHash),
		Phone:        "03000000000",
		Role:         models.RoleAdmin,
		ReferralCode: "ADMIN001",
	}

	if err := s.repo.Create(ctx, admin); err != nil {
		// Concurrent bootstrap from another instance is fine.
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.ErrCodeValidation {
			return nil
		}
		return err
	}

	if logger.Log != nil {
		logger.Log.WithField("email", email).Info("auth service: default admin created")
	}
	return nil
}

// generateReferralCode builds a short unique code like REF1A2B3C4D.
func generateReferralCode() string {
	return "REF" + strings.ToUpper(uuid.NewString()[:8])
}
