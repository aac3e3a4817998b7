package imaging

import (
	"image"
	"image/color"
	"math"
)

// Default Canny hysteresis thresholds, tuned for the high-contrast binary
// plane the pipeline feeds in.
const (
	DefaultEdgeLow  = 100
	DefaultEdgeHigh = 200
)

// EdgeMask is a binary edge image: true marks an edge pixel. It is the
// contract between edge detection and the segment detector.
type EdgeMask struct {
	Width  int
	Height int
	mask   []bool
}

// NewEdgeMask returns an all-false mask of the given size.
func NewEdgeMask(width, height int) *EdgeMask {
	return &EdgeMask{
		Width:  width,
		Height: height,
		mask:   make([]bool, width*height),
	}
}

// At reports whether (x, y) is an edge pixel. Out-of-bounds coordinates
// are never edges.
func (m *EdgeMask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.mask[y*m.Width+x]
}

// Set marks (x, y) as an edge pixel. Out-of-bounds coordinates are ignored.
func (m *EdgeMask) Set(x, y int) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.mask[y*m.Width+x] = true
}

// Count returns the number of edge pixels in the mask.
func (m *EdgeMask) Count() int {
	n := 0
	for _, v := range m.mask {
		if v {
			n++
		}
	}
	return n
}

// Gray renders the mask as a grayscale image, edges in white. Used for
// diagnostic dumps.
func (m *EdgeMask) Gray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.At(x, y) {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// DetectEdges performs Canny edge detection and returns a binary edge mask.
//
// The implementation follows the classic Canny stages: grayscale
// conversion, 5x5 Gaussian smoothing, Sobel gradients, non-maximum
// suppression, then hysteresis thresholding. Pixels with gradient magnitude
// above thresholdHigh are strong edges; pixels between the thresholds are
// kept only when 8-connected to a strong edge.
//
// Lower thresholds detect more edges but admit noise. The pipeline uses
// (DefaultEdgeLow, DefaultEdgeHigh) on its binary plane; photographs run
// directly through this function may want lower values.
func DetectEdges(img image.Image, thresholdLow, thresholdHigh int) *EdgeMask {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Convert to normalized grayscale.
	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			rf := float64(r>>8) / 255.0
			gf := float64(g>>8) / 255.0
			bf := float64(b>>8) / 255.0
			gray[y][x] = 0.299*rf + 0.587*gf + 0.114*bf
		}
	}

	blurred := gaussianSmooth(gray, width, height)

	// Sobel gradients.
	magnitude := make([][]float64, height)
	direction := make([][]float64, height)

	sobelX := [][]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [][]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += blurred[py][px] * sobelX[ky+1][kx+1]
					gy += blurred[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: thin edges to one pixel in the gradient
	// direction.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Double threshold with hysteresis.
	mask := NewEdgeMask(width, height)
	lowThresh := float64(thresholdLow) / 255.0
	highThresh := float64(thresholdHigh) / 255.0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				mask.Set(x, y)
			} else if val >= lowThresh {
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							mask.Set(x, y)
						}
					}
				}
			}
		}
	}

	return mask
}

// gaussianSmooth applies a 5x5 Gaussian kernel (sigma ~= 1.4, sum 273) with
// clamped borders.
func gaussianSmooth(img [][]float64, width, height int) [][]float64 {
	kernel := [][]float64{
		{1, 4, 7, 4, 1},
		{4, 16, 26, 16, 4},
		{7, 26, 41, 26, 7},
		{4, 16, 26, 16, 4},
		{1, 4, 7, 4, 1},
	}
	kernelSum := 273.0

	result := make([][]float64, height)
	for y := 0; y < height; y++ {
		result[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			var sum float64
			for ky := -2; ky <= 2; ky++ {
				for kx := -2; kx <= 2; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					sum += img[py][px] * kernel[ky+2][kx+2]
				}
			}
			result[y][x] = sum / kernelSum
		}
	}
	return result
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
