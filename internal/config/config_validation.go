// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Kustov

package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.Files.UploadDir == "" {
		return ErrInvalidStorageConfigs
	}
	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	t := cfg.Transforms
	if t.ResizeWidth <= 0 || t.ResizeHeight <= 0 {
		return ErrInvalidTransformConfigs
	}
	if t.BrightnessFactor <= 0 {
		return ErrInvalidTransformConfigs
	}
	if t.CannyLow < 0 || t.CannyHigh <= t.CannyLow {
		return ErrInvalidTransformConfigs
	}
	if t.BlurKernelSize < 3 || t.BlurKernelSize%2 == 0 {
		return ErrInvalidTransformConfigs
	}
	if t.PerspectiveShift < 0 || t.PerspectiveShift >= 0.5 {
		return ErrInvalidTransformConfigs
	}

	return nil
}
