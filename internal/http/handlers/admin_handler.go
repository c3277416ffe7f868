package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abrarlaghari22/absrefer/internal/dto"
	"github.com/abrarlaghari22/absrefer/internal/http/handlers/common"
	"github.com/abrarlaghari22/absrefer/internal/service"
)

// AdminHandler serves the admin review queues, decisions, user management
// and platform settings.
type AdminHandler struct {
	deposits    *service.DepositService
	withdrawals *service.WithdrawalService
	users       *service.UserService
	settings    *service.SettingsService
}

func NewAdminHandler(deposits *service.DepositService, withdrawals *service.WithdrawalService, users *service.UserService, settings *service.SettingsService) *AdminHandler {
	return &AdminHandler{
		deposits:    deposits,
		withdrawals: withdrawals,
		users:       users,
		settings:    settings,
	}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.users.PlatformStats(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// PendingDeposits handles GET /api/admin/pending-deposits.
func (h *AdminHandler) PendingDeposits(c *gin.Context) {
	deposits, err := h.deposits.ListPending(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deposits": deposits})
}

// ApproveDeposit handles POST /api/admin/deposits/:id/approve.
func (h *AdminHandler) ApproveDeposit(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "invalid deposit id")
		return
	}

	var req dto.DecisionRequest
	_ = c.ShouldBindJSON(&req)

	var notes *string
	if v := strings.TrimSpace(req.AdminNotes); v != "" {
		notes = &v
	}

	approval, err := h.deposits.Approve(c.Request.Context(), id, notes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := gin.H{
		"message": "deposit approved",
		"deposit": approval.Deposit,
	}
	if approval.Referrer != nil && approval.Commission.IsPositive() {
		resp["commission_paid"] = approval.Commission
	}

	c.JSON(http.StatusOK, resp)
}

// RejectDeposit handles POST /api/admin/deposits/:id/reject.
func (h *AdminHandler) RejectDeposit(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "invalid deposit id")
		return
	}

	var req dto.DecisionRequest
	_ = c.ShouldBindJSON(&req)

	deposit, err := h.deposits.Reject(c.Request.Context(), id, req.AdminNotes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "deposit rejected",
		"deposit": deposit,
	})
}

// PendingWithdrawals handles GET /api/admin/pending-withdrawals.
func (h *AdminHandler) PendingWithdrawals(c *gin.Context) {
	withdrawals, err := h.withdrawals.ListPending(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}

// ApproveWithdrawal handles POST /api/admin/withdrawals/:id/approve.
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "invalid withdrawal id")
		return
	}

	var req dto.DecisionRequest
	_ = c.ShouldBindJSON(&req)

	var notes *string
	if v := strings.TrimSpace(req.AdminNotes); v != "" {
		notes = &v
	}

	withdrawal, err := h.withdrawals.Approve(c.Request.Context(), id, notes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "withdrawal approved",
		"withdrawal": withdrawal,
	})
}

// RejectWithdrawal handles POST /api/admin/withdrawals/:id/reject.
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "invalid withdrawal id")
		return
	}

	var req dto.DecisionRequest
	_ = c.ShouldBindJSON(&req)

	withdrawal, err := h.withdrawals.Reject(c.Request.Context(), id, req.AdminNotes)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "withdrawal rejected",
		"withdrawal": withdrawal,
	})
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := common.GetPagination(c)

	users, err := h.users.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{"users": out})
}

// ToggleUserStatus handles POST /api/admin/users/:id/toggle-status.
func (h *AdminHandler) ToggleUserStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, "invalid user id")
		return
	}

	var req dto.ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "is_active is required")
		return
	}

	if err := h.users.ToggleStatus(c.Request.Context(), id, *req.IsActive); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user status updated"})
}

// GetSettings handles GET /api/admin/settings.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.All(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles POST /api/admin/settings.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, "")
		return
	}

	err := h.settings.Update(c.Request.Context(), service.SettingsUpdate{
		CommissionRate: req.CommissionRate,
		MinWithdrawal:  req.MinWithdrawal,
		DepositAmount:  req.DepositAmount,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	settings, err := h.settings.All(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, settings)
}
