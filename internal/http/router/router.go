package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abrarlaghari22/absrefer/internal/config"
	"github.com/abrarlaghari22/absrefer/internal/http/handlers"
	"github.com/abrarlaghari22/absrefer/internal/http/middleware"
	"github.com/abrarlaghari22/absrefer/internal/service"
)

// SetupRouter wires every route to its handler.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	depositHandler *handlers.DepositHandler,
	withdrawalHandler *handlers.WithdrawalHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/uploads", http.Dir(cfg.UploadsPath))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/user/profile", userHandler.Profile)
		protected.GET("/user/transactions", userHandler.Transactions)
		protected.GET("/user/referrals", userHandler.Referrals)

		protected.POST("/deposits", depositHandler.Submit)
		protected.GET("/deposits", depositHandler.List)

		protected.POST("/withdrawals", withdrawalHandler.Submit)
		protected.GET("/withdrawals", withdrawalHandler.List)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.AdminMiddleware())
	{
		admin.GET("/stats", adminHandler.Stats)

		admin.GET("/pending-deposits", adminHandler.PendingDeposits)
		admin.POST("/deposits/:id/approve", adminHandler.ApproveDeposit)
		admin.POST("/deposits/:id/reject", adminHandler.RejectDeposit)

		admin.GET("/pending-withdrawals", adminHandler.PendingWithdrawals)
		admin.POST("/withdrawals/:id/approve", adminHandler.ApproveWithdrawal)
		admin.POST("/withdrawals/:id/reject", adminHandler.RejectWithdrawal)

		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/toggle-status", adminHandler.ToggleUserStatus)

		admin.GET("/settings", adminHandler.GetSettings)
		admin.POST("/settings", adminHandler.UpdateSettings)
	}

	return r
}
