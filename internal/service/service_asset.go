package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dkustov/imagekeep/internal/imaging"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/models"
)

// Extensions accepted at upload time. The real gate is the content probe;
// the extension check exists to reject obviously wrong files before any
// decoding work.
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// assetService is the concrete implementation of AssetService. Uploaded
// bytes go to the file store, their metadata to the asset repository; both
// are namespaced by owner so one user's filenames never collide with
// another's.
type assetService struct {
	assets store.AssetRepository
	files  store.FileStore
	locks  *keyedLock
	logger *logger.Logger
}

// NewAssetService constructs an AssetService over the given repositories.
// locks serialises writes per (owner, filename) pair and is shared with the
// transform service so uploads and transforms of the same asset cannot race.
func NewAssetService(assets store.AssetRepository, files store.FileStore, locks *keyedLock, logger *logger.Logger) AssetService {
	return &assetService{
		assets: assets,
		files:  files,
		locks:  locks,
		logger: logger,
	}
}

func (s *assetService) Upload(ctx context.Context, ownerID int64, filename string, data []byte) (models.ImageAsset, error) {
	log := logger.FromContext(ctx)

	filename, err := sanitizeFilename(filename)
	if err != nil {
		log.Error().Str("filename", filename).Msg("rejected filename")
		return models.ImageAsset{}, err
	}
	if len(data) == 0 {
		return models.ImageAsset{}, ErrEmptyFile
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		log.Error().Str("filename", filename).Msg("rejected file extension")
		return models.ImageAsset{}, ErrUnsupportedFileType
	}

	width, height, format, err := imaging.Probe(data)
	if err != nil {
		log.Err(err).Str("filename", filename).Msg("uploaded bytes are not a supported image")
		return models.ImageAsset{}, fmt.Errorf("%w: %w", ErrNotAnImage, err)
	}

	unlock := s.locks.Lock(ownerID, filename)
	defer unlock()

	// insert the row first so the unique constraint rejects a duplicate
	// before any bytes of the existing file are overwritten
	asset, err := s.assets.CreateAsset(ctx, models.ImageAsset{
		OwnerID:  ownerID,
		Filename: filename,
		Width:    width,
		Height:   height,
		Format:   format,
	})
	if err != nil {
		log.Err(err).Str("filename", filename).Msg("asset creation ended with error")
		return models.ImageAsset{}, fmt.Errorf("asset creation ended with error: %w", err)
	}

	if err := s.files.Save(ctx, ownerID, filename, data); err != nil {
		// the row now points at a missing file; the orphan sweeper reports it
		log.Err(err).Str("filename", filename).Msg("saving uploaded file failed")
		return models.ImageAsset{}, fmt.Errorf("saving uploaded file failed: %w", err)
	}

	return asset, nil
}

func (s *assetService) List(ctx context.Context, ownerID int64) ([]models.ImageAsset, error) {
	assets, err := s.assets.ListAssets(ctx, ownerID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("owner", ownerID).Msg("listing assets failed")
		return nil, fmt.Errorf("listing assets failed: %w", err)
	}

	return assets, nil
}

func (s *assetService) Download(ctx context.Context, ownerID int64, filename string) ([]byte, models.ImageAsset, error) {
	log := logger.FromContext(ctx)

	filename, err := sanitizeFilename(filename)
	if err != nil {
		return nil, models.ImageAsset{}, err
	}

	asset, err := s.assets.FindAsset(ctx, ownerID, filename)
	if err != nil {
		log.Err(err).Str("filename", filename).Msg("asset lookup failed")
		return nil, models.ImageAsset{}, fmt.Errorf("asset lookup failed: %w", err)
	}

	data, err := s.files.Read(ctx, ownerID, filename)
	if err != nil {
		log.Err(err).Str("filename", filename).Msg("reading stored file failed")
		return nil, models.ImageAsset{}, fmt.Errorf("reading stored file failed: %w", err)
	}

	return data, asset, nil
}

// sanitizeFilename reduces the client-supplied name to its base component
// and rejects anything that could escape the owner's directory.
func sanitizeFilename(filename string) (string, error) {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		return "", ErrInvalidFilename
	}
	if strings.ContainsAny(name, "/\\") {
		return "", ErrInvalidFilename
	}

	return name, nil
}
