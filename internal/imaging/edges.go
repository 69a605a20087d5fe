package imaging

import (
	"errors"
	"image"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// ErrInvalidThresholds is returned by CannyEdges when the hysteresis
// thresholds are not ordered 0 <= low < high.
var ErrInvalidThresholds = errors.New("canny thresholds must satisfy 0 <= low < high")

// Gaussian smoothing radius applied before gradient estimation in the canny
// chain. 1.4 is the conventional sigma for a 3×3 derivative kernel.
const cannyBlurRadius = 1.4

// SobelEdges computes the gradient magnitude of the image via horizontal and
// vertical 3×3 derivative kernels.
func SobelEdges(img image.Image) image.Image {
	return effect.Sobel(img)
}

// CannyEdges produces a binary edge map using two-threshold hysteresis:
// grayscale → gaussian smoothing → sobel gradients → non-maximum
// suppression → double threshold → edge tracking. Pixels with gradient
// magnitude above high seed edges; connected pixels above low extend them.
func CannyEdges(img image.Image, low, high float64) (image.Image, error) {
	if low < 0 || high <= low {
		return nil, ErrInvalidThresholds
	}

	smoothed := blur.Gaussian(effect.Grayscale(img), cannyBlurRadius)

	bounds := smoothed.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// grayscale RGBA: R carries the luminance
			lum[y*w+x] = float64(smoothed.Pix[y*smoothed.Stride+x*4])
		}
	}

	mag, dir := sobelGradients(lum, w, h)
	thin := nonMaximumSuppression(mag, dir, w, h)

	return hysteresis(thin, w, h, low, high), nil
}

// sobelGradients returns per-pixel gradient magnitude and direction
// (radians) computed with the 3×3 sobel kernels. Border pixels are left at
// zero magnitude.
func sobelGradients(lum []float64, w, h int) (mag, dir []float64) {
	mag = make([]float64, w*h)
	dir = make([]float64, w*h)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			tl, tc, tr := lum[(y-1)*w+x-1], lum[(y-1)*w+x], lum[(y-1)*w+x+1]
			ml, mr := lum[y*w+x-1], lum[y*w+x+1]
			bl, bc, br := lum[(y+1)*w+x-1], lum[(y+1)*w+x], lum[(y+1)*w+x+1]

			gx := -tl + tr - 2*ml + 2*mr - bl + br
			gy := -tl - 2*tc - tr + bl + 2*bc + br

			i := y*w + x
			mag[i] = math.Hypot(gx, gy)
			dir[i] = math.Atan2(gy, gx)
		}
	}

	return mag, dir
}

// nonMaximumSuppression keeps only pixels that are local maxima along their
// gradient direction, thinning ridges to single-pixel width.
func nonMaximumSuppression(mag, dir []float64, w, h int) []float64 {
	out := make([]float64, w*h)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if mag[i] == 0 {
				continue
			}

			// quantize the direction into one of four sectors
			angle := math.Mod(dir[i]+math.Pi, math.Pi)
			var a, b float64
			switch {
			case angle < math.Pi/8 || angle >= 7*math.Pi/8:
				a, b = mag[i-1], mag[i+1] // horizontal
			case angle < 3*math.Pi/8:
				a, b = mag[(y-1)*w+x+1], mag[(y+1)*w+x-1] // diagonal /
			case angle < 5*math.Pi/8:
				a, b = mag[(y-1)*w+x], mag[(y+1)*w+x] // vertical
			default:
				a, b = mag[(y-1)*w+x-1], mag[(y+1)*w+x+1] // diagonal \
			}

			if mag[i] >= a && mag[i] >= b {
				out[i] = mag[i]
			}
		}
	}

	return out
}

// hysteresis applies the double threshold and tracks edges: pixels above
// high are strong seeds; pixels above low survive only when 8-connected to
// a strong pixel.
func hysteresis(mag []float64, w, h int, low, high float64) *image.Gray {
	const (
		none = iota
		weak
		strong
	)

	marks := make([]uint8, w*h)
	stack := make([]int, 0, w*h/4)
	for i, m := range mag {
		switch {
		case m >= high:
			marks[i] = strong
			stack = append(stack, i)
		case m >= low:
			marks[i] = weak
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := i%w, i/w
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := x+dx, y+dy
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				n := ny*w + nx
				if marks[n] == weak {
					marks[n] = strong
					stack = append(stack, n)
				}
			}
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for i, mark := range marks {
		if mark == strong {
			out.Pix[i] = 255
		}
	}

	return out
}
