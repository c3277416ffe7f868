package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abrarlaghari22/absrefer/internal/dto"
	"github.com/abrarlaghari22/absrefer/internal/http/handlers/common"
	"github.com/abrarlaghari22/absrefer/internal/service"
)

// UserHandler serves the authenticated user's own profile, history and
// referral views.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Profile handles GET /api/user/profile.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Transactions handles GET /api/user/transactions.
func (h *UserHandler) Transactions(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	limit := common.ParseIntQuery(c, "limit", 20)
	transactions, err := h.users.Transactions(c.Request.Context(), userID, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// Referrals handles GET /api/user/referrals.
func (h *UserHandler) Referrals(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, "")
		return
	}

	summary, err := h.users.Referrals(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
