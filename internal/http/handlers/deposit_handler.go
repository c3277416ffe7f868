package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/abrarlaghari22/absrefer/internal/http/handlers/common"
	"github.com/abrarlaghari22/absrefer/internal/service"
	"github.com/abrarlaghari22/absrefer/internal/storage"
)

// DepositHandler is the HTTP layer for deposit submission and listing.
// Submission is a multipart form so a proof screenshot can ride along.
type DepositHandler struct {
	deposits *service.DepositService
	proofs   *storage.ProofStorage
}

func NewDepositHandler(deposits *service.DepositService, proofs *storage.ProofStorage) *DepositHandler {
	return &DepositHandler{deposits: deposits, proofs: proofs}
}

// Submit handles POST /api/deposits.
func (h *DepositHandler) Submit(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	rawAmount := strings.TrimSpace(c.PostForm("amount"))
	if rawAmount == "" {
		common.RespondBadRequest(c, "amount is required")
		return
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		common.RespondBadRequest(c, "amount must be a number")
		return
	}

	transactionID := c.PostForm("transaction_id")

	var notes *string
	if v := strings.TrimSpace(c.PostForm("notes")); v != "" {
		notes = &v
	}

	var proofPath *string
	if file, header, err := c.Request.FormFile("payment_proof"); err == nil {
		defer file.Close()
		saved, err := h.proofs.Save(c.Request.Context(), userID, header.Filename, file)
		if err != nil {
			common.RespondBadRequest(c, err.Error())
			return
		}
		proofPath = &saved
	}

	deposit, err := h.deposits.Submit(c.Request.Context(), service.SubmitDepositInput{
		UserID:        userID,
		Amount:        amount,
		TransactionID: transactionID,
		ProofPath:     proofPath,
		Notes:         notes,
	})
	if err != nil {
		// Submission failed after the proof was stored; drop the orphan.
		if proofPath != nil {
			_ = h.proofs.Delete(*proofPath)
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, deposit)
}

// List handles GET /api/deposits.
func (h *DepositHandler) List(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	deposits, err := h.deposits.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deposits": deposits})
}
