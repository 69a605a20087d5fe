package imaging

import (
	"errors"
	"image"

	"github.com/anthonynsimon/bild/transform"
	xdraw "golang.org/x/image/draw"
)

// ErrInvalidDimensions is returned by Resize when the target width or
// height is not positive.
var ErrInvalidDimensions = errors.New("target dimensions must be positive")

// Resize rescales the pixel grid to exactly width×height without preserving
// the aspect ratio, using Catmull-Rom interpolation.
func Resize(img image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)

	return dst, nil
}

// Rotate turns the image by angle degrees around its center. The canvas
// grows to fit the rotated content, so rotating a W×H image by 90° yields
// an H×W image.
func Rotate(img image.Image, angle float64) image.Image {
	return transform.Rotate(img, angle, &transform.RotationOptions{ResizeBounds: true})
}
