package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// EqualizeHistogram redistributes the grayscale intensity histogram of the
// image for contrast enhancement: intensities are remapped through the
// normalized cumulative distribution so the output spans the full 0–255
// range evenly.
func EqualizeHistogram(img image.Image) image.Image {
	gray := effect.Grayscale(img)

	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	total := w * h

	out := image.NewGray(image.Rect(0, 0, w, h))
	if total == 0 {
		return out
	}

	var hist [256]int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			hist[gray.Pix[y*gray.Stride+x*4]]++
		}
	}

	// cumulative distribution, anchored at the lowest occupied bin so the
	// darkest present intensity maps to 0
	var cdf [256]int
	running := 0
	for i, count := range hist {
		running += count
		cdf[i] = running
	}
	cdfMin := 0
	for _, count := range hist {
		if count > 0 {
			cdfMin = count
			break
		}
	}

	var lut [256]uint8
	denom := total - cdfMin
	if denom <= 0 {
		// flat image: single intensity, nothing to redistribute
		for i := range lut {
			lut[i] = uint8(i)
		}
	} else {
		for i := range lut {
			v := (cdf[i] - cdfMin) * 255 / denom
			if v < 0 {
				v = 0
			}
			lut[i] = uint8(v)
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Pix[y*out.Stride+x] = lut[gray.Pix[y*gray.Stride+x*4]]
		}
	}

	return out
}
