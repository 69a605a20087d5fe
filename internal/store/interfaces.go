package store

import (
	"context"

	"github.com/dkustov/imagekeep/models"
)

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	// CreateUser persists a new user record and returns it with
	// server-assigned fields populated. Returns [ErrUsernameAlreadyExists]
	// or [ErrEmailAlreadyExists] on unique-constraint collisions.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername retrieves the user record with the given username,
	// or [ErrUserNotFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
}

// AssetRepository is the persistence contract for image metadata rows.
// All lookups are scoped by owner: the (ownerID, filename) pair is the
// asset's identity, which makes ownership enforcement structural rather
// than a lookup-then-compare.
type AssetRepository interface {
	// CreateAsset inserts a metadata row and returns it with
	// server-assigned fields populated. Returns [ErrAssetAlreadyExists]
	// when the (owner_id, filename) pair is taken.
	CreateAsset(ctx context.Context, asset models.ImageAsset) (models.ImageAsset, error)

	// FindAsset retrieves the metadata row for the owner's filename,
	// or [ErrAssetNotFound].
	FindAsset(ctx context.Context, ownerID int64, filename string) (models.ImageAsset, error)

	// ListAssets returns every asset owned by the given user, in insertion
	// order.
	ListAssets(ctx context.Context, ownerID int64) ([]models.ImageAsset, error)

	// UpdateAssetMetadata refreshes the recorded dimensions and format of
	// an existing row after its bytes have been rewritten.
	// Returns [ErrAssetNotFound] if the row does not exist.
	UpdateAssetMetadata(ctx context.Context, ownerID int64, filename string, width, height int, format string) error

	// ListAllAssets returns every asset of every owner. Used by the orphan
	// sweep worker to reconcile rows against the file store.
	ListAllAssets(ctx context.Context) ([]models.ImageAsset, error)
}

// FileStore is the contract for the on-disk image byte store. Files live
// under one subdirectory per owner, mirroring the (owner, filename)
// namespacing of the metadata rows.
type FileStore interface {
	// Save writes the asset bytes, creating the owner directory as needed
	// and overwriting any previous content.
	Save(ctx context.Context, ownerID int64, filename string, data []byte) error

	// Read returns the stored bytes, or [ErrFileNotFound].
	Read(ctx context.Context, ownerID int64, filename string) ([]byte, error)

	// Exists reports whether a backing file is present.
	Exists(ownerID int64, filename string) bool

	// WalkFiles calls fn for every stored file. Used by the orphan sweeper.
	WalkFiles(ctx context.Context, fn func(ownerID int64, filename string) error) error
}
