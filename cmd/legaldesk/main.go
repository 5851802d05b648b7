package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"legaldesk/internal/api"
	"legaldesk/internal/api/handlers"
	"legaldesk/internal/app"
	"legaldesk/internal/service"
	"legaldesk/pkg/auth"
	"legaldesk/pkg/config"
	"legaldesk/pkg/logger"

	"go.uber.org/zap"
)

// @title Legaldesk API
// @version 1.0
// @description Legal request intake, attorney claims and document custody

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting legaldesk service")

	ctx := context.Background()
	backends, err := app.OpenBackends(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open backends", zap.Error(err))
	}
	defer backends.Close()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	timeout := cfg.Repository.StoreTimeout
	authService := service.NewAuthService(backends.Profiles, jwtManager, appLogger)
	requestService := service.NewRequestService(backends.Requests, backends.Documents, timeout, appLogger)
	claimService := service.NewClaimService(backends.Requests, timeout, appLogger)
	docService := service.NewDocumentService(backends.Requests, backends.Documents, backends.Store, cfg.Storage.SignedURLTTL, timeout, appLogger)

	// Initialize handlers
	h := api.Handlers{
		Auth:     handlers.NewAuthHandler(authService, appLogger),
		Request:  handlers.NewRequestHandler(requestService, claimService, appLogger),
		Document: handlers.NewDocumentHandler(docService, appLogger),
	}
	if backends.Local != nil {
		h.File = handlers.NewFileHandler(backends.Local, appLogger)
	}

	// Setup router
	server := api.SetupRouter(h, jwtManager, &cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := server.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := server.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
