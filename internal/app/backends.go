// Package app wires repositories and the object store from configuration.
package app

import (
	"context"
	"fmt"

	"legaldesk/internal/repository"
	"legaldesk/internal/repository/memory"
	"legaldesk/internal/service"
	"legaldesk/internal/storage"
	"legaldesk/pkg/config"
	"legaldesk/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Backends struct {
	Requests  service.RequestRepository
	Documents service.DocumentRepository
	Profiles  service.ProfileRepository
	Store     storage.ObjectStore
	// Local is set when Store is the local filesystem store.
	Local *storage.LocalStore

	db *pgxpool.Pool
}

func OpenBackends(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backends, error) {
	b := &Backends{}

	switch cfg.Repository.Driver {
	case "memory":
		logger.Warn("Using in-memory repositories, data is lost on restart")
		b.Requests = memory.NewRequestRepository()
		b.Documents = memory.NewDocumentRepository()
		b.Profiles = memory.NewProfileRepository()
	case "postgres", "":
		db, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Database.Migrate {
			if err := postgres.Migrate(ctx, db, logger); err != nil {
				db.Close()
				return nil, err
			}
		}
		b.db = db
		b.Requests = repository.NewRequestRepository(db, logger)
		b.Documents = repository.NewDocumentRepository(db, logger)
		b.Profiles = repository.NewProfileRepository(db, logger)
	default:
		return nil, fmt.Errorf("unknown repository driver %q", cfg.Repository.Driver)
	}

	switch cfg.Storage.Driver {
	case "s3":
		store, err := storage.NewS3Store(ctx, &cfg.Storage, logger)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Store = store
	case "local", "":
		store, err := storage.NewLocalStore(cfg.Storage.LocalPath, cfg.Storage.PublicURL, []byte(cfg.JWT.SecretKey))
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Store = store
		b.Local = store
	default:
		b.Close()
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	logger.Info("Backends ready",
		zap.String("repository", cfg.Repository.Driver),
		zap.String("storage", cfg.Storage.Driver),
	)
	return b, nil
}

func (b *Backends) Close() {
	if b.db != nil {
		b.db.Close()
	}
}
