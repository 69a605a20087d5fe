// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Kustov

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// imagekeep application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults (in that order of
// precedence).
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as token parameters.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for all persistence backends: the
	// relational metadata database and the on-disk file store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Transforms holds the default parameters of every image operation.
	// These are the values applied when a request does not override them
	// via query parameters.
	Transforms Transforms `envPrefix:"TRANSFORMS_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control the token
// lifecycle.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Must be kept confidential. Required.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance. Defaults to 168h (7 days). There is no refresh mechanism.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system storage settings for uploaded images.
	Files Files `envPrefix:"FILES_"`
}

// DB holds the relational database connection settings. Two drivers are
// supported: "pgx" (PostgreSQL) and "sqlite3" (embedded SQLite file).
type DB struct {
	// Driver selects the database backend: "pgx" or "sqlite3".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the driver-specific data source name: a PostgreSQL URL for
	// "pgx", a file path for "sqlite3".
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Files holds the file-system storage settings for uploaded images.
type Files struct {
	// UploadDir is the root directory under which uploaded files are
	// stored, one subdirectory per owning user.
	// Env: STORAGE_FILES_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`
}

// Server holds network and timeout settings for the inbound HTTP layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds the read and write phases of every request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Transforms holds the default parameters of the image operations.
// Each value can also be overridden per request through query parameters
// where the HTTP surface exposes them.
type Transforms struct {
	// ResizeWidth and ResizeHeight are the target dimensions used by the
	// resize operation when the request omits width/height.
	// Env: TRANSFORMS_RESIZE_WIDTH / TRANSFORMS_RESIZE_HEIGHT
	ResizeWidth  int `env:"RESIZE_WIDTH"`
	ResizeHeight int `env:"RESIZE_HEIGHT"`

	// RotateDegrees is the default rotation angle in degrees.
	// Env: TRANSFORMS_ROTATE_DEGREES
	RotateDegrees int `env:"ROTATE_DEGREES"`

	// BrightnessFactor is the default multiplicative brightness factor;
	// 1.0 leaves the image unchanged.
	// Env: TRANSFORMS_BRIGHTNESS_FACTOR
	BrightnessFactor float64 `env:"BRIGHTNESS_FACTOR"`

	// CannyLow and CannyHigh are the hysteresis thresholds of the canny
	// edge detector, on the 0–255 gradient magnitude scale.
	// Env: TRANSFORMS_CANNY_LOW / TRANSFORMS_CANNY_HIGH
	CannyLow  float64 `env:"CANNY_LOW"`
	CannyHigh float64 `env:"CANNY_HIGH"`

	// BlurKernelSize is the side of the gaussian blur kernel in pixels.
	// Must be odd; the blur radius is (BlurKernelSize-1)/2.
	// Env: TRANSFORMS_BLUR_KERNEL_SIZE
	BlurKernelSize int `env:"BLUR_KERNEL_SIZE"`

	// PerspectiveShift is the horizontal inset of the top corners of the
	// perspective warp's destination quad, as a fraction of image width.
	// Env: TRANSFORMS_PERSPECTIVE_SHIFT
	PerspectiveShift float64 `env:"PERSPECTIVE_SHIFT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval is how often the orphan sweeper reconciles the upload
	// directory against the asset table. Zero disables the worker.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`
}

// GetStructuredConfig assembles the final application configuration by
// merging, in order of precedence: environment variables, command-line
// flags, the optional JSON config file, and built-in defaults.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
