package service

import (
	"context"

	"github.com/dkustov/imagekeep/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AssetService interface {
	// Upload validates and persists a new image for the given owner:
	// bytes to the file store, a metadata row to the asset repository.
	Upload(ctx context.Context, ownerID int64, filename string, data []byte) (models.ImageAsset, error)

	// List returns the caller's asset metadata in upload order.
	List(ctx context.Context, ownerID int64) ([]models.ImageAsset, error)

	// Download returns the stored bytes of one of the caller's assets.
	// Unknown or foreign filenames yield store.ErrAssetNotFound.
	Download(ctx context.Context, ownerID int64, filename string) ([]byte, models.ImageAsset, error)
}

// Op names an image transform operation exposed on the HTTP surface.
type Op string

const (
	OpResize      Op = "resize"
	OpRotate      Op = "rotate"
	OpBrightness  Op = "adjust_brightness"
	OpSharpen     Op = "sharpen"
	OpSobel       Op = "sobel_edge"
	OpCanny       Op = "canny_edge"
	OpEqualize    Op = "histogram_equalization"
	OpBlur        Op = "gaussian_blur"
	OpPerspective Op = "perspective_transform"
)

// TransformParams carries per-request overrides of the configured transform
// defaults. Nil fields mean "use the configured value".
type TransformParams struct {
	Width      *int
	Height     *int
	Angle      *float64
	Factor     *float64
	CannyLow   *float64
	CannyHigh  *float64
	BlurRadius *int
}

type TransformService interface {
	// Apply runs the named operation against one of the caller's assets
	// and persists the result, returning the metadata of the written
	// asset (the original for in-place operations, a derived one for
	// operations that change the filename).
	Apply(ctx context.Context, ownerID int64, filename string, op Op, params TransformParams) (models.ImageAsset, error)
}
