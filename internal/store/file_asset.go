package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dkustov/imagekeep/internal/logger"
)

// assetFileStore is the local-filesystem implementation of [FileStore].
//
// Layout: <root>/<ownerID>/<filename>. One directory per owner keeps the
// per-user filename namespace structural on disk, mirroring the
// (owner_id, filename) key of the metadata rows.
type assetFileStore struct {
	root   string
	logger *logger.Logger
}

// NewAssetFileStore constructs a [FileStore] rooted at dir, creating the
// directory if it does not exist yet.
func NewAssetFileStore(dir string, logger *logger.Logger) (FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	logger.Debug().Str("dir", dir).Msg("creating asset file store")
	return &assetFileStore{
		root:   dir,
		logger: logger,
	}, nil
}

func (s *assetFileStore) path(ownerID int64, filename string) string {
	return filepath.Join(s.root, strconv.FormatInt(ownerID, 10), filename)
}

func (s *assetFileStore) Save(ctx context.Context, ownerID int64, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ownerDir := filepath.Join(s.root, strconv.FormatInt(ownerID, 10))
	if err := os.MkdirAll(ownerDir, 0o755); err != nil {
		return fmt.Errorf("error creating owner directory: %w", err)
	}

	if err := os.WriteFile(s.path(ownerID, filename), data, 0o644); err != nil {
		return fmt.Errorf("error writing asset file: %w", err)
	}

	return nil
}

func (s *assetFileStore) Read(ctx context.Context, ownerID int64, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(ownerID, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("error reading asset file: %w", err)
	}

	return data, nil
}

func (s *assetFileStore) Exists(ownerID int64, filename string) bool {
	_, err := os.Stat(s.path(ownerID, filename))
	return err == nil
}

// WalkFiles visits every regular file under the store root that sits inside
// a numeric owner directory. Stray files that do not fit the layout are
// skipped silently; the sweeper only reasons about files the store could
// have written.
func (s *assetFileStore) WalkFiles(ctx context.Context, fn func(ownerID int64, filename string) error) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return fmt.Errorf("error reading upload directory: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.IsDir() {
			continue
		}

		ownerID, err := strconv.ParseInt(entry.Name(), 10, 64)
		if err != nil {
			continue
		}

		files, err := os.ReadDir(filepath.Join(s.root, entry.Name()))
		if err != nil {
			return fmt.Errorf("error reading owner directory: %w", err)
		}
		for _, file := range files {
			if file.IsDir() {
				continue
			}
			if err := fn(ownerID, file.Name()); err != nil {
				return err
			}
		}
	}

	return nil
}
