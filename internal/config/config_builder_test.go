package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildWithoutFlags assembles a config the way GetStructuredConfig does,
// minus the flag layer (flag.Parse cannot run twice inside one test binary).
func buildWithoutFlags() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		build()
}

func TestDefaultsApplied(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")

	cfg, err := buildWithoutFlags()
	require.NoError(t, err)

	assert.Equal(t, DefaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, DefaultUploadDir, cfg.Storage.Files.UploadDir)
	assert.Equal(t, DefaultTokenDuration, cfg.App.TokenDuration)
	assert.Equal(t, DefaultResizeWidth, cfg.Transforms.ResizeWidth)
	assert.Equal(t, DefaultBlurKernelSize, cfg.Transforms.BlurKernelSize)
	assert.InDelta(t, DefaultBrightnessFactor, cfg.Transforms.BrightnessFactor, 1e-9)
}

func TestEnvBeatsDefaults(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9999")
	t.Setenv("TRANSFORMS_CANNY_LOW", "50")

	cfg, err := buildWithoutFlags()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.HTTPAddress)
	assert.InDelta(t, 50, cfg.Transforms.CannyLow, 1e-9)
	// untouched values still default
	assert.InDelta(t, DefaultCannyHigh, cfg.Transforms.CannyHigh, 1e-9)
}

func TestEnvBeatsJSON(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "config.json")
	raw, err := json.Marshal(map[string]any{
		"server": map[string]any{"http_address": "from-json:1111"},
		"app":    map[string]any{"token_duration": "1h"},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jsonPath, raw, 0o600))

	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("CONFIG", jsonPath)
	t.Setenv("SERVER_ADDRESS", "from-env:2222")

	cfg, err := buildWithoutFlags()
	require.NoError(t, err)

	assert.Equal(t, "from-env:2222", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Hour, cfg.App.TokenDuration)
}

func TestMissingSignKeyRejected(t *testing.T) {
	_, err := buildWithoutFlags()
	require.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestInvalidTransformDefaultsRejected(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("TRANSFORMS_BLUR_KERNEL_SIZE", "4") // even kernel

	_, err := buildWithoutFlags()
	require.ErrorIs(t, err, ErrInvalidTransformConfigs)
}

func TestUnsupportedDriverRejected(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "secret")
	t.Setenv("STORAGE_DB_DRIVER", "oracle")

	_, err := buildWithoutFlags()
	require.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
