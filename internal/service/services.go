package service

import (
	"github.com/dkustov/imagekeep/internal/config"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/store"
)

type Services struct {
	AuthService      AuthService
	AssetService     AssetService
	TransformService TransformService
}

func NewServices(storages store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	// one lock table across both services: uploads and transforms of the
	// same asset must serialise against each other
	locks := newKeyedLock()

	return &Services{
		AuthService:      NewAuthService(storages.UserRepository, cfg.App, logger),
		AssetService:     NewAssetService(storages.AssetRepository, storages.FileStore, locks, logger),
		TransformService: NewTransformService(storages.AssetRepository, storages.FileStore, cfg.Transforms, locks, logger),
	}
}
