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

// DepositRepository describes the storage the deposit workflow depends on.
type DepositRepository interface {
	Create(ctx context.Context, deposit *models.Deposit) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Deposit, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Deposit, error)
	ListPending(ctx context.Context) ([]models.DepositWithUser, error)
	Approve(ctx context.Context, id uuid.UUID, adminNotes *string, rate decimal.Decimal) (*models.DepositApproval, error)
	Reject(ctx context.Context, id uuid.UUID, adminNotes string) (*models.Deposit, error)
}

// DepositSettings is the configuration read at submission and decision time.
type DepositSettings interface {
	DepositAmount(ctx context.Context) (decimal.Decimal, error)
	CommissionRate(ctx context.Context) (decimal.Decimal, error)
}

// SubmitDepositInput carries a user's deposit claim.
type SubmitDepositInput struct {
	UserID        uuid.UUID
	Amount        decimal.Decimal
	TransactionID string
	ProofPath     *string
	Notes         *string
}

// DepositService implements the deposit half of the approval workflow.
type DepositService struct {
	repo     DepositRepository
	settings DepositSettings
	mail     mailer.Mailer
}

func NewDepositService(repo DepositRepository, settings DepositSettings, mail mailer.Mailer) *DepositService {
	return &DepositService{repo: repo, settings: settings, mail: mail}
}

// Submit validates the claim against the currently configured fixed deposit
// amount and stores a pending request. The balance is untouched until
// approval.
func (s *DepositService) Submit(ctx context.Context, in SubmitDepositInput) (*models.Deposit, error) {
	if strings.TrimSpace(in.TransactionID) == "" {
		return nil, apperror.Validation("transaction id is required")
	}

	required, err := s.settings.DepositAmount(ctx)
	if err != nil {
		return nil, err
	}
	if !in.Amount.Equal(required) {
		return nil, apperror.Validation("deposit amount must be exactly PKR %s", required.String())
	}

	deposit := &models.Deposit{
		UserID:        in.UserID,
		Amount:        in.Amount,
		TransactionID: strings.TrimSpace(in.TransactionID),
		ProofPath:     in.ProofPath,
		Notes:         in.Notes,
	}

	if err := s.repo.Create(ctx, deposit); err != nil {
		return nil, err
	}
	return deposit, nil
}

// ListByUser returns the user's own deposit requests.
func (s *DepositService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Deposit, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListPending returns the admin review queue.
func (s *DepositService) ListPending(ctx context.Context) ([]models.DepositWithUser, error) {
	return s.repo.ListPending(ctx)
}

// Approve reads the commission rate at decision time, runs the atomic
// approve-credit-cascade sequence, then dispatches best-effort emails.
func (s *DepositService) Approve(ctx context.Context, id uuid.UUID, adminNotes *string) (*models.DepositApproval, error) {
	rate, err := s.settings.CommissionRate(ctx)
	if err != nil {
		return nil, err
	}

	approval, err := s.repo.Approve(ctx, id, adminNotes, rate)
	if err != nil {
		return nil, err
	}

	s.notifyApproval(approval)
	return approval, nil
}

// Reject requires an admin note and performs the terminal transition. No
// balance effect.
func (s *DepositService) Reject(ctx context.Context, id uuid.UUID, adminNotes string) (*models.Deposit, error) {
	if strings.TrimSpace(adminNotes) == "" {
		return nil, apperror.ErrReasonRequired
	}
	return s.repo.Reject(ctx, id, adminNotes)
}

// notifyApproval sends the depositor and referrer emails after the
// transaction has committed. Failures are logged and swallowed; they never
// reverse the approval.
func (s *DepositService) notifyApproval(approval *models.DepositApproval) {
	goroutine.SafeGo(func() {
		ctx := context.Background()

		err := s.mail.Send(ctx, approval.User.Email, mailer.SubjectDepositApproved,
			mailer.DepositApprovalBody(approval.User.FullName, approval.Deposit.Amount.StringFixed(2)))
		if err != nil && logger.Log != nil {
			logger.Log.WithError(err).Warn("deposit service: approval email failed")
		}

		if approval.Referrer != nil && approval.Commission.IsPositive() {
			err := s.mail.Send(ctx, approval.Referrer.Email, mailer.SubjectCommissionEarned,
				mailer.CommissionBody(approval.Referrer.FullName, approval.Commission.StringFixed(2), approval.User.FullName))
			if err != nil && logger.Log != nil {
				logger.Log.WithError(err).Warn("deposit service: commission email failed")
			}
		}
	})
}
