package config

import "time"

// Default values applied when neither environment, flags, nor the JSON file
// provide one. The transform defaults reproduce the historical behaviour of
// the service: 200×200 resize, 90° rotation, ×1.5 brightness, 100/200 canny
// thresholds, a 15×15 blur kernel, and a quarter-width perspective skew.
const (
	DefaultHTTPAddress   = ":8080"
	DefaultDBDriver      = DriverSQLite
	DefaultDBDSN         = "imagekeep.db"
	DefaultUploadDir     = "uploads"
	DefaultTokenIssuer   = "imagekeep"
	DefaultTokenDuration = 7 * 24 * time.Hour

	DefaultResizeWidth      = 200
	DefaultResizeHeight     = 200
	DefaultRotateDegrees    = 90
	DefaultBrightnessFactor = 1.5
	DefaultCannyLow         = 100
	DefaultCannyHigh        = 200
	DefaultBlurKernelSize   = 15
	DefaultPerspectiveShift = 0.25
)

// Supported database drivers.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   DefaultTokenIssuer,
			TokenDuration: DefaultTokenDuration,
		},
		Storage: Storage{
			DB: DB{
				Driver: DefaultDBDriver,
				DSN:    DefaultDBDSN,
			},
			Files: Files{
				UploadDir: DefaultUploadDir,
			},
		},
		Server: Server{
			HTTPAddress: DefaultHTTPAddress,
		},
		Transforms: Transforms{
			ResizeWidth:      DefaultResizeWidth,
			ResizeHeight:     DefaultResizeHeight,
			RotateDegrees:    DefaultRotateDegrees,
			BrightnessFactor: DefaultBrightnessFactor,
			CannyLow:         DefaultCannyLow,
			CannyHigh:        DefaultCannyHigh,
			BlurKernelSize:   DefaultBlurKernelSize,
			PerspectiveShift: DefaultPerspectiveShift,
		},
		Workers: Workers{},
	}
}
