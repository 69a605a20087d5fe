package imaging

import (
	"errors"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// ErrInvalidFactor is returned by AdjustBrightness for a non-positive factor.
var ErrInvalidFactor = errors.New("brightness factor must be positive")

// ErrInvalidKernel is returned by GaussianBlur for an even or too-small
// kernel size.
var ErrInvalidKernel = errors.New("blur kernel size must be odd and at least 3")

// AdjustBrightness multiplies luminance by factor; 1.0 leaves the image
// unchanged. The public contract is multiplicative, so the factor is
// converted to bild's additive-change convention (0 = no change).
func AdjustBrightness(img image.Image, factor float64) (image.Image, error) {
	if factor <= 0 {
		return nil, ErrInvalidFactor
	}

	return adjust.Brightness(img, factor-1), nil
}

// Sharpen applies a fixed 3×3 sharpening kernel.
func Sharpen(img image.Image) image.Image {
	return effect.Sharpen(img)
}

// GaussianBlur smooths the image with a gaussian kernel of the given side
// length (must be odd and at least 3; the blur radius is (kernelSize-1)/2).
func GaussianBlur(img image.Image, kernelSize int) (image.Image, error) {
	if kernelSize < 3 || kernelSize%2 == 0 {
		return nil, ErrInvalidKernel
	}

	radius := float64(kernelSize-1) / 2
	return blur.Gaussian(img, radius), nil
}
