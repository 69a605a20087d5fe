package service

import (
	"context"
	"strconv"

	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/models"
)

// ─────────────────────────────────────────────
// Mock: store.AssetRepository
// ─────────────────────────────────────────────

type mockAssetRepository struct {
	createFn  func(ctx context.Context, asset models.ImageAsset) (models.ImageAsset, error)
	findFn    func(ctx context.Context, ownerID int64, filename string) (models.ImageAsset, error)
	listFn    func(ctx context.Context, ownerID int64) ([]models.ImageAsset, error)
	updateFn  func(ctx context.Context, ownerID int64, filename string, width, height int, format string) error
	listAllFn func(ctx context.Context) ([]models.ImageAsset, error)
}

func (m *mockAssetRepository) CreateAsset(ctx context.Context, asset models.ImageAsset) (models.ImageAsset, error) {
	if m.createFn != nil {
		return m.createFn(ctx, asset)
	}
	return asset, nil
}

func (m *mockAssetRepository) FindAsset(ctx context.Context, ownerID int64, filename string) (models.ImageAsset, error) {
	if m.findFn != nil {
		return m.findFn(ctx, ownerID, filename)
	}
	return models.ImageAsset{OwnerID: ownerID, Filename: filename}, nil
}

func (m *mockAssetRepository) ListAssets(ctx context.Context, ownerID int64) ([]models.ImageAsset, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockAssetRepository) UpdateAssetMetadata(ctx context.Context, ownerID int64, filename string, width, height int, format string) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, ownerID, filename, width, height, format)
	}
	return nil
}

func (m *mockAssetRepository) ListAllAssets(ctx context.Context) ([]models.ImageAsset, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.FileStore
// ─────────────────────────────────────────────

// memFileStore is an in-memory FileStore used to observe what the services
// read and write without touching the disk.
type memFileStore struct {
	files map[string][]byte
}

func newMemFileStore() *memFileStore {
	return &memFileStore{files: make(map[string][]byte)}
}

func (m *memFileStore) key(ownerID int64, filename string) string {
	return strconv.FormatInt(ownerID, 10) + "/" + filename
}

func (m *memFileStore) Save(_ context.Context, ownerID int64, filename string, data []byte) error {
	m.files[m.key(ownerID, filename)] = data
	return nil
}

func (m *memFileStore) Read(_ context.Context, ownerID int64, filename string) ([]byte, error) {
	data, ok := m.files[m.key(ownerID, filename)]
	if !ok {
		return nil, store.ErrFileNotFound
	}
	return data, nil
}

func (m *memFileStore) Exists(ownerID int64, filename string) bool {
	_, ok := m.files[m.key(ownerID, filename)]
	return ok
}

func (m *memFileStore) WalkFiles(_ context.Context, fn func(ownerID int64, filename string) error) error {
	return nil
}
