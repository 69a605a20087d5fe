package imaging

import (
	"errors"
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
)

// ErrInvalidShift is returned by PerspectiveWarp when the corner shift is
// outside [0, 0.5).
var ErrInvalidShift = errors.New("perspective shift must be in [0, 0.5)")

// ErrDegenerateQuad is returned when the corner correspondences do not
// determine a homography (collinear corners).
var ErrDegenerateQuad = errors.New("degenerate corner configuration")

// PerspectiveWarp applies a projective warp that maps the full image onto a
// trapezoid whose top corners are inset horizontally by shift×width,
// simulating a tilt away from the viewer. The canvas keeps its size; pixels
// outside the destination quad are left transparent black.
func PerspectiveWarp(img image.Image, shift float64) (image.Image, error) {
	if shift < 0 || shift >= 0.5 {
		return nil, ErrInvalidShift
	}

	src := clone.AsRGBA(img)
	bounds := src.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	if w < 2 || h < 2 {
		return src, nil
	}

	srcCorners := [4][2]float64{{0, 0}, {w - 1, 0}, {w - 1, h - 1}, {0, h - 1}}
	dstCorners := [4][2]float64{
		{shift * (w - 1), 0},
		{(1 - shift) * (w - 1), 0},
		{w - 1, h - 1},
		{0, h - 1},
	}

	// homography from destination coordinates back to source coordinates,
	// so every output pixel is sampled exactly once
	hm, err := solveHomography(dstCorners, srcCorners)
	if err != nil {
		return nil, err
	}

	out := image.NewRGBA(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			fx, fy := float64(x), float64(y)
			denom := hm[6]*fx + hm[7]*fy + 1
			if math.Abs(denom) < 1e-12 {
				continue
			}
			sx := (hm[0]*fx + hm[1]*fy + hm[2]) / denom
			sy := (hm[3]*fx + hm[4]*fy + hm[5]) / denom

			if sx < 0 || sy < 0 || sx > w-1 || sy > h-1 {
				continue
			}
			bilinearSample(src, sx, sy, out, x, y)
		}
	}

	return out, nil
}

// solveHomography computes the 8 parameters of the projective transform
// mapping each from[i] to to[i] (h22 fixed at 1), via Gaussian elimination
// with partial pivoting on the standard 8×8 system.
func solveHomography(from, to [4][2]float64) ([8]float64, error) {
	var m [8][9]float64
	for i := 0; i < 4; i++ {
		x, y := from[i][0], from[i][1]
		u, v := to[i][0], to[i][1]

		m[2*i] = [9]float64{x, y, 1, 0, 0, 0, -x * u, -y * u, u}
		m[2*i+1] = [9]float64{0, 0, 0, x, y, 1, -x * v, -y * v, v}
	}

	for col := 0; col < 8; col++ {
		pivot := col
		for row := col + 1; row < 8; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(m[pivot][col]) < 1e-12 {
			return [8]float64{}, ErrDegenerateQuad
		}
		m[col], m[pivot] = m[pivot], m[col]

		for row := 0; row < 8; row++ {
			if row == col {
				continue
			}
			factor := m[row][col] / m[col][col]
			for k := col; k < 9; k++ {
				m[row][k] -= factor * m[col][k]
			}
		}
	}

	var hm [8]float64
	for i := 0; i < 8; i++ {
		hm[i] = m[i][8] / m[i][i]
	}
	return hm, nil
}

// bilinearSample writes the bilinear interpolation of src at (sx, sy) into
// out at (x, y).
func bilinearSample(src *image.RGBA, sx, sy float64, out *image.RGBA, x, y int) {
	x0, y0 := int(math.Floor(sx)), int(math.Floor(sy))
	x1, y1 := x0+1, y0+1
	maxX, maxY := src.Bounds().Dx()-1, src.Bounds().Dy()-1
	if x1 > maxX {
		x1 = maxX
	}
	if y1 > maxY {
		y1 = maxY
	}
	fx, fy := sx-float64(x0), sy-float64(y0)

	oi := out.PixOffset(x, y)
	for c := 0; c < 4; c++ {
		p00 := float64(src.Pix[src.PixOffset(x0, y0)+c])
		p10 := float64(src.Pix[src.PixOffset(x1, y0)+c])
		p01 := float64(src.Pix[src.PixOffset(x0, y1)+c])
		p11 := float64(src.Pix[src.PixOffset(x1, y1)+c])

		top := p00 + (p10-p00)*fx
		bottom := p01 + (p11-p01)*fx
		out.Pix[oi+c] = uint8(math.Round(top + (bottom-top)*fy))
	}
}
