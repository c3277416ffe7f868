package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/dto"
	"github.com/abrarlaghari22/absrefer/internal/http/handlers/common"
	"github.com/abrarlaghari22/absrefer/internal/service"
)

// WithdrawalHandler is the HTTP layer for payout requests.
type WithdrawalHandler struct {
	withdrawals *service.WithdrawalService
}

func NewWithdrawalHandler(withdrawals *service.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawals: withdrawals}
}

// Submit handles POST /api/withdrawals.
func (h *WithdrawalHandler) Submit(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	var req dto.SubmitWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "amount, method, account_number and account_name are required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		common.RespondBadRequest(c, "amount must be a number")
		return
	}

	withdrawal, err := h.withdrawals.Submit(c.Request.Context(), service.SubmitWithdrawalInput{
		UserID:        userID,
		Amount:        amount,
		Method:        req.Method,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, withdrawal)
}

// List handles GET /api/withdrawals.
func (h *WithdrawalHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	withdrawals, err := h.withdrawals.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}
