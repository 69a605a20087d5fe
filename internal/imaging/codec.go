// Package imaging implements the image operations offered by the transform
// routes: decoding/encoding for the supported container formats plus the
// pixel operations themselves. Rescaling, rotation, brightness, sharpening,
// blurring, and the sobel operator delegate to golang.org/x/image and
// anthonynsimon/bild; the canny chain, histogram equalization, and the
// perspective warp are composed from those primitives.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
)

// Container formats accepted by the codec, as reported by image.Decode.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
)

// ErrUnsupportedFormat is returned when bytes decode to (or a caller asks to
// encode into) a container format outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported image format")

const jpegQuality = 90

// Decode parses the given bytes into pixels and reports the container
// format ("png", "jpeg" or "gif").
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("error decoding image: %w", err)
	}

	switch format {
	case FormatPNG, FormatJPEG, FormatGIF:
		return img, format, nil
	default:
		return nil, "", ErrUnsupportedFormat
	}
}

// Probe reads only the image header and returns the pixel dimensions and
// container format without decoding the full pixel grid. Used at upload
// time to record metadata cheaply.
func Probe(data []byte) (width, height int, format string, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, "", fmt.Errorf("error probing image: %w", err)
	}

	switch format {
	case FormatPNG, FormatJPEG, FormatGIF:
		return cfg.Width, cfg.Height, format, nil
	default:
		return 0, 0, "", ErrUnsupportedFormat
	}
}

// Encode serializes img into the given container format.
func Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("error encoding png: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, fmt.Errorf("error encoding jpeg: %w", err)
		}
	case FormatGIF:
		if err := gif.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("error encoding gif: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}

	return buf.Bytes(), nil
}
