package adapter

import (
	"context"

	"github.com/dkustov/imagekeep/models"
)

// ServerAdapter is the client-side view of the imagekeep REST API. One
// adapter holds at most one bearer token; Login and SetToken replace it.
type ServerAdapter interface {
	// SetToken stores the bearer token used on authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently held by the adapter, or an
	// empty string if none has been set.
	Token() string

	// Register creates a new account.
	Register(ctx context.Context, user models.User) error

	// Login authenticates and stores the returned bearer token on the
	// adapter for subsequent calls.
	Login(ctx context.Context, user models.User) (string, error)

	// Upload sends the named file as a multipart upload.
	Upload(ctx context.Context, filename string, data []byte) (models.UploadResponse, error)

	// Transform requests the named operation on one of the caller's
	// uploads. params carries the raw query parameter overrides.
	Transform(ctx context.Context, op, filename string, params map[string]string) (models.TransformResponse, error)

	// Gallery returns the download URLs of the caller's images.
	Gallery(ctx context.Context) (models.GalleryResponse, error)

	// Images returns the caller's image metadata rows.
	Images(ctx context.Context) ([]models.ImageAsset, error)

	// Download fetches the raw bytes of one of the caller's uploads.
	Download(ctx context.Context, filename string) ([]byte, error)
}
