package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"

	"legaldesk/internal/app"
	"legaldesk/internal/dto"
	"legaldesk/internal/service"
	"legaldesk/pkg/auth"
	"legaldesk/pkg/config"
	"legaldesk/pkg/logger"

	"go.uber.org/zap"
)

// seed creates attorney and admin accounts, which cannot be registered
// through the public API. The input is a JSON array of dto.StaffAccount.
func main() {
	file := flag.String("file", "staff.json", "JSON file with staff accounts")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	data, err := os.ReadFile(*file)
	if err != nil {
		appLogger.Fatal("Failed to read seed file", zap.String("file", *file), zap.Error(err))
	}

	var accounts []dto.StaffAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		appLogger.Fatal("Failed to parse seed file", zap.String("file", *file), zap.Error(err))
	}

	ctx := context.Background()
	backends, err := app.OpenBackends(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open backends", zap.Error(err))
	}
	defer backends.Close()

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	authService := service.NewAuthService(backends.Profiles, jwtManager, appLogger)

	appLogger.Info("Starting database seeding...", zap.Int("accounts", len(accounts)))

	created, skipped := 0, 0
	for i := range accounts {
		acc := &accounts[i]
		profile, err := authService.CreateStaff(ctx, acc)
		switch {
		case errors.Is(err, service.ErrUserExists):
			appLogger.Info("Account already exists, skipping", zap.String("email", acc.Email))
			skipped++
		case err != nil:
			appLogger.Error("Failed to create account", zap.String("email", acc.Email), zap.Error(err))
		default:
			appLogger.Info("Account created",
				zap.String("email", profile.Email),
				zap.String("role", string(profile.Role)),
			)
			created++
		}
	}

	appLogger.Info("Seeding completed",
		zap.Int("created", created),
		zap.Int("skipped", skipped),
		zap.Int("failed", len(accounts)-created-skipped),
	)
}
