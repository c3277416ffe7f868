package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/abrarlaghari22/absrefer/internal/config"
	"github.com/abrarlaghari22/absrefer/internal/db"
	httpHandlers "github.com/abrarlaghari22/absrefer/internal/http/handlers"
	httpRouter "github.com/abrarlaghari22/absrefer/internal/http/router"
	"github.com/abrarlaghari22/absrefer/internal/logger"
	"github.com/abrarlaghari22/absrefer/internal/mailer"
	"github.com/abrarlaghari22/absrefer/internal/repository"
	"github.com/abrarlaghari22/absrefer/internal/service"
	"github.com/abrarlaghari22/absrefer/internal/storage"
)

func main() {
	// Context for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load configuration: %v", err)
	}

	logLevel := "info"
	if cfg.Env == "development" {
		logLevel = "debug"
		logger.Init(logLevel)
		logger.SetTextFormatter()
	} else {
		logger.Init(logLevel)
	}

	// Database connection and migrations.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: failed to connect to database: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: migrations failed: %v", err)
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL)

	proofStorage, err := storage.NewProofStorage(cfg.UploadsPath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: failed to prepare upload storage: %v", err)
	}

	var mail mailer.Mailer
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	} else {
		mail = mailer.NewLogMailer()
	}

	// Repositories.
	ledgerRepo := repository.NewLedgerRepository(dbConn)
	cascade := repository.NewReferralCascade(ledgerRepo)
	userRepo := repository.NewUserRepository(dbConn)
	depositRepo := repository.NewDepositRepository(dbConn, ledgerRepo, cascade)
	withdrawalRepo := repository.NewWithdrawalRepository(dbConn, ledgerRepo)
	settingsRepo := repository.NewSettingsRepository(dbConn)

	// Services.
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(userRepo, tokenManager)
	depositService := service.NewDepositService(depositRepo, settingsService, mail)
	withdrawalService := service.NewWithdrawalService(withdrawalRepo, settingsService, userRepo, mail)
	userService := service.NewUserService(userRepo, ledgerRepo, settingsService)

	// Bootstrap: seed settings and the default admin account.
	if err := settingsService.EnsureDefaults(ctx); err != nil {
		log.Fatalf("main: failed to seed settings: %v", err)
	}
	if err := authService.EnsureDefaultAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("main: failed to ensure admin account: %v", err)
	}

	// HTTP handlers.
	authHandler := httpHandlers.NewAuthHandler(authService)
	userHandler := httpHandlers.NewUserHandler(userService)
	depositHandler := httpHandlers.NewDepositHandler(depositService, proofStorage)
	withdrawalHandler := httpHandlers.NewWithdrawalHandler(withdrawalService)
	adminHandler := httpHandlers.NewAdminHandler(depositService, withdrawalService, userService, settingsService)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	engine := httpRouter.SetupRouter(cfg, authHandler, userHandler, depositHandler, withdrawalHandler, adminHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Stop the server when the context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: http server shutdown error: %v", err)
		}
	}()

	log.Printf("main: HTTP server listening on port %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: server exited with error: %v", err)
	}
}

// safeClose closes the database connection.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: failed to close database: %v", err)
	}
}
