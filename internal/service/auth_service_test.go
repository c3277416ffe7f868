package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

type mockAuthRepo struct {
	mock.Mock
}

func (m *mockAuthRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockAuthRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockAuthRepo) GetByReferralCode(ctx context.Context, code string) (*models.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newTestTokenManager() *TokenManager {
	return NewTokenManager("test-secret-for-unit-tests-only", time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ali@example.com").Return(nil, apperror.ErrUserNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ali@example.com" &&
			u.Role == models.RoleUser &&
			u.ReferredBy == nil &&
			strings.HasPrefix(u.ReferralCode, "REF") &&
			len(u.ReferralCode) == 11
	})).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{
		FullName: "Ali Raza",
		Email:    "Ali@Example.com",
		Password: "Passw0rd1",
		Phone:    "03001234567",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ali@example.com", result.User.Email)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_WithReferralCode(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	referrer := &models.User{ID: uuid.New(), ReferralCode: "REF1A2B3C4D"}
	repo.On("GetByEmail", ctx, "sara@example.com").Return(nil, apperror.ErrUserNotFound)
	repo.On("GetByReferralCode", ctx, "REF1A2B3C4D").Return(referrer, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.ReferredBy != nil && *u.ReferredBy == "REF1A2B3C4D"
	})).Return(nil)

	result, err := svc.Register(ctx, RegisterInput{
		FullName:   "Sara Khan",
		Email:      "sara@example.com",
		Password:   "Passw0rd1",
		Phone:      "03007654321",
		ReferredBy: "REF1A2B3C4D",
	})
	assert.NoError(t, err)
	assert.NotNil(t, result.User.ReferredBy)
	repo.AssertExpectations(t)
}

func TestAuthService_Register_InvalidReferralCode(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "sara@example.com").Return(nil, apperror.ErrUserNotFound)
	repo.On("GetByReferralCode", ctx, "REFDOESNOTX").Return(nil, apperror.ErrUserNotFound)

	_, err := svc.Register(ctx, RegisterInput{
		FullName:   "Sara Khan",
		Email:      "sara@example.com",
		Password:   "Passw0rd1",
		Phone:      "03007654321",
		ReferredBy: "REFDOESNOTX",
	})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "invalid referral code")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	existing := &models.User{ID: uuid.New(), Email: "ali@example.com"}
	repo.On("GetByEmail", ctx, "ali@example.com").Return(existing, nil)

	_, err := svc.Register(ctx, RegisterInput{
		FullName: "Ali Raza",
		Email:    "ali@example.com",
		Password: "Passw0rd1",
		Phone:    "03001234567",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Ali Raza",
		Email:    "ali@example.com",
		Password: "short",
		Phone:    "03001234567",
	})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd1"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Email:        "ali@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	repo.On("GetByEmail", ctx, "ali@example.com").Return(user, nil)

	result, err := svc.Login(ctx, LoginInput{Email: "ali@example.com", Password: "Passw0rd1"})
	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd1"), bcrypt.MinCost)
	user := &models.User{ID: uuid.New(), Email: "ali@example.com", PasswordHash: string(hash), IsActive: true}
	repo.On("GetByEmail", ctx, "ali@example.com").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "ali@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, apperror.ErrUserNotFound)

	_, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "Passw0rd1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd1"), bcrypt.MinCost)
	user := &models.User{ID: uuid.New(), Email: "ali@example.com", PasswordHash: string(hash), IsActive: false}
	repo.On("GetByEmail", ctx, "ali@example.com").Return(user, nil)

	_, err := svc.Login(ctx, LoginInput{Email: "ali@example.com", Password: "Passw0rd1"})
	assert.ErrorIs(t, err, apperror.ErrAccountDeactivated)
}

func TestAuthService_TokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()
	user := &models.User{ID: uuid.New(), Role: models.RoleAdmin}

	token, err := tm.Generate(user)
	assert.NoError(t, err)

	userID, role, err := tm.Parse(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, models.RoleAdmin, role)
}

func TestAuthService_EnsureDefaultAdmin_CreatesWhenMissing(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "admin@absreferzone.com").Return(nil, apperror.ErrUserNotFound)
	repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleAdmin && u.ReferralCode == "ADMIN001"
	})).Return(nil)

	err := svc.EnsureDefaultAdmin(ctx, "admin@absreferzone.com", "admin123")
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuthService_EnsureDefaultAdmin_SkipsWhenPresent(t *testing.T) {
	repo := new(mockAuthRepo)
	svc := NewAuthService(repo, newTestTokenManager())
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "admin@absreferzone.com").Return(&models.User{ID: uuid.New()}, nil)

	err := svc.EnsureDefaultAdmin(ctx, "admin@absreferzone.com", "admin123")
	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
