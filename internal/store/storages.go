package store

import (
	"context"
	"fmt"

	"github.com/dkustov/imagekeep/internal/config"
	"github.com/dkustov/imagekeep/internal/logger"
)

// Storages bundles every persistence backend the services depend on.
type Storages struct {
	UserRepository  UserRepository
	AssetRepository AssetRepository
	FileStore       FileStore
}

// NewStorages connects to the configured database backend, applies pending
// migrations, and wires up the repositories and the on-disk file store.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	fileStore, err := NewAssetFileStore(cfg.Files.UploadDir, log)
	if err != nil {
		return nil, fmt.Errorf("error creating file store: %w", err)
	}

	return &Storages{
		UserRepository:  NewUserRepository(db, log),
		AssetRepository: NewAssetRepository(db, log),
		FileStore:       fileStore,
	}, nil
}
