package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"legaldesk/internal/app"
	"legaldesk/internal/service"
	"legaldesk/pkg/config"
	"legaldesk/pkg/logger"

	"go.uber.org/zap"
)

// reconcile reports objects in the document store that no ledger row points
// at, typically left behind when an attach failed and its cleanup failed too.
func main() {
	prefix := flag.String("prefix", "", "only inspect objects under this path prefix")
	minAge := flag.Duration("min-age", time.Hour, "ignore objects younger than this")
	remove := flag.Bool("delete", false, "delete the orphaned objects")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := app.OpenBackends(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open backends", zap.Error(err))
	}
	defer backends.Close()

	docService := service.NewDocumentService(backends.Requests, backends.Documents, backends.Store,
		cfg.Storage.SignedURLTTL, cfg.Repository.StoreTimeout, appLogger)

	orphans, err := docService.FindOrphans(ctx, *prefix, *minAge)
	if err != nil {
		appLogger.Fatal("Failed to find orphaned objects", zap.Error(err))
	}

	for _, o := range orphans {
		fmt.Printf("%s\t%d\t%s\n", o.Path, o.Size, o.LastModified.Format(time.RFC3339))
	}
	appLogger.Info("Reconciliation finished",
		zap.String("prefix", *prefix),
		zap.Int("orphans", len(orphans)),
	)

	if *remove {
		if err := docService.RemoveOrphans(ctx, orphans); err != nil {
			appLogger.Fatal("Failed to delete orphaned objects", zap.Error(err))
		}
	}
}
