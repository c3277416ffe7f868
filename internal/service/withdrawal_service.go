package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/goroutine"
	"github.com/abrarlaghari22/absrefer/internal/logger"
	"github.com/abrarlaghari22/absrefer/internal/mailer"
	"github.com/abrarlaghari22/absrefer/internal/models"
	"github.com/abrarlaghari22/absrefer/internal/pkg/apperror"
)

// WithdrawalRepository describes the storage the withdrawal workflow
// depends on.
type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *models.Withdrawal) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Withdrawal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Withdrawal, error)
	ListPending(ctx context.Context) ([]models.WithdrawalWithUser, error)
	Approve(ctx context.Context, id uuid.UUID, adminNotes *string) (*models.Withdrawal, error)
	Reject(ctx context.Context, id uuid.UUID, adminNotes string) (*models.Withdrawal, error)
}

// WithdrawalSettings is the configuration read at submission time.
type WithdrawalSettings interface {
	MinWithdrawal(ctx context.Context) (decimal.Decimal, error)
}

// WithdrawalUsers resolves request owners for notification dispatch.
type WithdrawalUsers interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// SubmitWithdrawalInput carries a user's payout request.
type SubmitWithdrawalInput struct {
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Method        string
	AccountNumber string
	AccountName   string
}

// WithdrawalService implements the withdrawal half of the approval workflow.
type WithdrawalService struct {
	repo     WithdrawalRepository
	settings WithdrawalSettings
	users    WithdrawalUsers
	mail     mailer.Mailer
}

func NewWithdrawalService(repo WithdrawalRepository, settings WithdrawalSettings, users WithdrawalUsers, mail mailer.Mailer) *WithdrawalService {
	return &WithdrawalService{repo: repo, settings: settings, users: users, mail: mail}
}

// Submit validates the request against the configured minimum, then debits
// the hold and creates the pending request atomically. A concurrent
// submission racing for the same balance fails with ErrInsufficientBalance.
func (s *WithdrawalService) Submit(ctx context.Context, in SubmitWithdrawalInput) (*models.Withdrawal, error) {
	if !models.ValidWithdrawalMethod(in.Method) {
		return nil, apperror.Validation("method must be easypaisa or jazzcash")
	}
	if strings.TrimSpace(in.AccountNumber) == "" || strings.TrimSpace(in.AccountName) == "" {
		return nil, apperror.Validation("account number and account name are required")
	}
	if !models.ValidAmount(in.Amount) {
		return nil, apperror.ErrInvalidAmount
	}

	min, err := s.settings.MinWithdrawal(ctx)
	if err != nil {
		return nil, err
	}
	if in.Amount.LessThan(min) {
		return nil, apperror.Validation("minimum withdrawal amount is PKR %s", min.String())
	}

	withdrawal := &models.Withdrawal{
		UserID:        in.UserID,
		Amount:        in.Amount,
		Method:        in.Method,
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		AccountName:   strings.TrimSpace(in.AccountName),
	}

	if err := s.repo.Create(ctx, withdrawal); err != nil {
		return nil, err
	}
	return withdrawal, nil
}

// ListByUser returns the user's own withdrawal requests.
func (s *WithdrawalService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Withdrawal, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListPending returns the admin review queue.
func (s *WithdrawalService) ListPending(ctx context.Context) ([]models.WithdrawalWithUser, error) {
	return s.repo.ListPending(ctx)
}

// Approve finalizes the payout: terminal transition plus the history entry
// for the already-held amount, then a best-effort email.
func (s *WithdrawalService) Approve(ctx context.Context, id uuid.UUID, adminNotes *string) (*models.Withdrawal, error) {
	withdrawal, err := s.repo.Approve(ctx, id, adminNotes)
	if err != nil {
		return nil, err
	}

	if user, err := s.users.GetByID(ctx, withdrawal.UserID); err == nil {
		s.notifyApproval(user, withdrawal)
	} else if logger.Log != nil {
		logger.Log.WithError(err).Warn("withdrawal service: owner lookup for email failed")
	}

	return withdrawal, nil
}

// Reject requires an admin note, performs the terminal transition and
// restores the held amount.
func (s *WithdrawalService) Reject(ctx context.Context, id uuid.UUID, adminNotes string) (*models.Withdrawal, error) {
	if strings.TrimSpace(adminNotes) == "" {
		return nil, apperror.ErrReasonRequired
	}
	return s.repo.Reject(ctx, id, adminNotes)
}

func (s *WithdrawalService) notifyApproval(user *models.User, withdrawal *models.Withdrawal) {
	goroutine.SafeGo(func() {
		err := s.mail.Send(context.Background(), user.Email, mailer.SubjectWithdrawalApproved,
			mailer.WithdrawalApprovalBody(user.FullName, withdrawal.Amount.StringFixed(2), withdrawal.Method))
		if err != nil && logger.Log != nil {
			logger.Log.WithError(err).Warn("withdrawal service: approval email failed")
		}
	})
}
