package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

type mockDepositRepo struct {
	mock.Mock
}

func (m *mockDepositRepo) Create(ctx context.Context, deposit *models.Deposit) error {
	args := m.Called(ctx, deposit)
	return args.Error(0)
}

func (m *mockDepositRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Deposit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deposit), args.Error(1)
}

func (m *mockDepositRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Deposit, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Deposit), args.Error(1)
}

func (m *mockDepositRepo) ListPending(ctx context.Context) ([]models.DepositWithUser, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.DepositWithUser), args.Error(1)
}

func (m *mockDepositRepo) Approve(ctx context.Context, id uuid.UUID, adminNotes *string, rate decimal.Decimal) (*models.DepositApproval, error) {
	args := m.Called(ctx, id, adminNotes, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DepositApproval), args.Error(1)
}

func (m *mockDepositRepo) Reject(ctx context.Context, id uuid.UUID, adminNotes string) (*models.Deposit, error) {
	args := m.Called(ctx, id, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deposit), args.Error(1)
}

type mockDepositSettings struct {
	mock.Mock
}

func (m *mockDepositSettings) DepositAmount(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockDepositSettings) CommissionRate(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	args := m.Called(ctx, to, subject, htmlBody)
	return args.Error(0)
}

func newDepositMailer() *mockMailer {
	// Emails are dispatched on a background goroutine, so the call may or
	// may not land before the test finishes.
	mail := new(mockMailer)
	mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return mail
}

func TestDepositService_Submit_Success(t *testing.T) {
	repo := new(mockDepositRepo)
	settings := new(mockDepositSettings)
	svc := NewDepositService(repo, settings, newDepositMailer())
	ctx := context.Background()
	userID := uuid.New()

	settings.On("DepositAmount", ctx).Return(decimal.NewFromInt(1000), nil)
	repo.On("Create", ctx, mock.MatchedBy(func(d *models.Deposit) bool {
		return d.UserID == userID && d.TransactionID == "TXN-001" && d.Amount.Equal(decimal.NewFromInt(1000))
	})).Return(nil)

	deposit, err := svc.Submit(ctx, SubmitDepositInput{
		UserID:        userID,
		Amount:        decimal.NewFromInt(1000),
		TransactionID: "TXN-001",
	})
	assert.NoError(t, err)
	assert.NotNil(t, deposit)
	repo.AssertExpectations(t)
}

func TestDepositService_Submit_WrongAmount(t *testing.T) {
	repo := new(mockDepositRepo)
	settings := new(mockDepositSettings)
	svc := NewDepositService(repo, settings, newDepositMailer())
	ctx := context.Background()

	settings.On("DepositAmount", ctx).Return(decimal.NewFromInt(1000), nil)

	_, err := svc.Submit(ctx, SubmitDepositInput{
		UserID:        uuid.New(),
		Amount:        decimal.NewFromInt(500),
		TransactionID: "TXN-002",
	})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Contains(t, err.Error(), "exactly PKR 1000")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDepositService_Submit_MissingTransactionID(t *testing.T) {
	repo := new(mockDepositRepo)
	settings := new(mockDepositSettings)
	svc := NewDepositService(repo, settings, newDepositMailer())

	_, err := svc.Submit(context.Background(), SubmitDepositInput{
		UserID:        uuid.New(),
		Amount:        decimal.NewFromInt(1000),
		TransactionID: "   ",
	})
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	settings.AssertNotCalled(t, "DepositAmount", mock.Anything)
}

func TestDepositService_Approve_PassesCurrentRate(t *testing.T) {
	repo := new(mockDepositRepo)
	settings := new(mockDepositSettings)
	svc := NewDepositService(repo, settings, newDepositMailer())
	ctx := context.Background()
	depositID := uuid.New()

	rate := decimal.NewFromInt(15)
	approval := &models.DepositApproval{
		Deposit:    &models.Deposit{ID: depositID, Status: models.RequestStatusApproved},
		User:       &models.User{ID: uuid.New(), Email: "user@example.com", FullName: "Test User"},
		Commission: decimal.Zero,
	}

	settings.On("CommissionRate", ctx).Return(rate, nil)
	repo.On("Approve", ctx, depositID, (*string)(nil), rate).Return(approval, nil)

	got, err := svc.Approve(ctx, depositID, nil)
	assert.NoError(t, err)
	assert.Equal(t, approval, got)
	repo.AssertExpectations(t)
}

func TestDepositService_Approve_AlreadyProcessed(t *testing.T) {
	repo := new(mockDepositRepo)
	settings := new(mockDepositSettings)
	svc := NewDepositService(repo, settings, newDepositMailer())
	ctx := context.Background()
	depositID := uuid.New()

	settings.On("CommissionRate", ctx).Return(decimal.NewFromInt(15), nil)
	repo.On("Approve", ctx, depositID, (*string)(nil), mock.Anything).Return(nil, apperror.ErrAlreadyProcessed)

	_, err := svc.Approve(ctx, depositID, nil)
	assert.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestDepositService_Reject_RequiresNote(t *testing.T) {
	repo := new(mockDepositRepo)
	settings := new(mockDepositSettings)
	svc := NewDepositService(repo, settings, newDepositMailer())

	_, err := svc.Reject(context.Background(), uuid.New(), "  ")
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrReasonRequired)
	repo.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything, mock.Anything)
}

func TestDepositService_Reject_Success(t *testing.T) {
	repo := new(mockDepositRepo)
	settings := new(mockDepositSettings)
	svc := NewDepositService(repo, settings, newDepositMailer())
	ctx := context.Background()
	depositID := uuid.New()

	rejected := &models.Deposit{ID: depositID, Status: models.RequestStatusRejected}
	repo.On("Reject", ctx, depositID, "fake transaction id").Return(rejected, nil)

	deposit, err := svc.Reject(ctx, depositID, "fake transaction id")
	assert.NoError(t, err)
	assert.Equal(t, models.RequestStatusRejected, deposit.Status)
	repo.AssertExpectations(t)
}
