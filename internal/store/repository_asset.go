package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/models"
)

// assetRepository is the SQL-backed implementation of [AssetRepository].
// Queries are built with squirrel so the same code serves both drivers.
type assetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAssetRepository constructs an [AssetRepository] backed by the provided
// database connection and logger.
func NewAssetRepository(db *DB, logger *logger.Logger) AssetRepository {
	logger.Debug().Msg("creating asset repository")
	return &assetRepository{
		db:     db,
		logger: logger,
	}
}

func (r *assetRepository) CreateAsset(ctx context.Context, asset models.ImageAsset) (models.ImageAsset, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Insert(asset.TableName()).
		Columns("owner_id", "filename", "width", "height", "format").
		Values(asset.OwnerID, asset.Filename, asset.Width, asset.Height, asset.Format).
		Suffix("RETURNING asset_id, created_at, updated_at").
		ToSql()
	if err != nil {
		return models.ImageAsset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&asset.AssetID, &asset.CreatedAt, &asset.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			log.Err(err).Str("func", "*assetRepository.CreateAsset").
				Int64("owner_id", asset.OwnerID).Str("filename", asset.Filename).
				Msg("duplicate asset")
			return models.ImageAsset{}, ErrAssetAlreadyExists
		}

		log.Err(err).Str("func", "*assetRepository.CreateAsset").Msg("error inserting asset")
		return models.ImageAsset{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return asset, nil
}

func (r *assetRepository) FindAsset(ctx context.Context, ownerID int64, filename string) (models.ImageAsset, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Select(assetColumns...).
		From(models.ImageAsset{}.TableName()).
		Where(squirrel.Eq{"owner_id": ownerID, "filename": filename}).
		ToSql()
	if err != nil {
		return models.ImageAsset{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var asset models.ImageAsset
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := scanAsset(row, &asset); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ImageAsset{}, ErrAssetNotFound
		}

		log.Err(err).Str("func", "*assetRepository.FindAsset").Msg("error scanning asset row")
		return models.ImageAsset{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return asset, nil
}

func (r *assetRepository) ListAssets(ctx context.Context, ownerID int64) ([]models.ImageAsset, error) {
	query, args, err := r.db.Builder().
		Select(assetColumns...).
		From(models.ImageAsset{}.TableName()).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("asset_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryAssets(ctx, query, args...)
}

func (r *assetRepository) ListAllAssets(ctx context.Context) ([]models.ImageAsset, error) {
	query, args, err := r.db.Builder().
		Select(assetColumns...).
		From(models.ImageAsset{}.TableName()).
		OrderBy("asset_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryAssets(ctx, query, args...)
}

// UpdateAssetMetadata refreshes the cached dimensions and format of an
// existing row. The updated_at timestamp is set from the application clock
// so the statement stays portable across dialects.
func (r *assetRepository) UpdateAssetMetadata(ctx context.Context, ownerID int64, filename string, width, height int, format string) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.Builder().
		Update(models.ImageAsset{}.TableName()).
		Set("width", width).
		Set("height", height).
		Set("format", format).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"owner_id": ownerID, "filename": filename}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*assetRepository.UpdateAssetMetadata").Msg("error updating asset")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAssetNotFound
	}

	return nil
}

func (r *assetRepository) queryAssets(ctx context.Context, query string, args ...any) ([]models.ImageAsset, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*assetRepository.queryAssets").Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var assets []models.ImageAsset
	for rows.Next() {
		var asset models.ImageAsset
		if err := scanAsset(rows, &asset); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return assets, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner, asset *models.ImageAsset) error {
	return row.Scan(
		&asset.AssetID,
		&asset.OwnerID,
		&asset.Filename,
		&asset.Width,
		&asset.Height,
		&asset.Format,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
}
