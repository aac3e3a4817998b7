package detection

import (
	"image"
	"math"

	"github.com/clocksight/clocksight/internal/geometry"
	"github.com/clocksight/clocksight/internal/imaging"
)

// BlobParams tunes pivot-blob detection on the binary plane.
type BlobParams struct {
	// MinArea and MaxArea bound the pixel count of a component for it to
	// count as a blob rather than noise or the background.
	MinArea int
	MaxArea int

	// MinFill is the minimum fraction of a blob's circumscribed circle its
	// pixels must cover. Elongated components (hands, numerals) fall below
	// it; roughly circular ones pass.
	MinFill float64
}

// DefaultBlobParams returns blob-detection parameters for typical clock
// photographs.
func DefaultBlobParams() BlobParams {
	return BlobParams{
		MinArea: 100,
		MaxArea: 50_000_000,
		MinFill: 0.2,
	}
}

// blob is one connected dark component of the binary plane.
type blob struct {
	centroid geometry.Point
	radius   int
	area     int
}

// RefineCenter locates the hand pivot by blob detection and returns the
// refined center, or nil when no acceptable blob exists.
//
// The binary plane is segmented into connected dark components. Components
// outside the area bounds or below the fill-ratio floor are discarded; of
// the survivors, the one whose centroid lies nearest the approximate center
// from circle detection wins. The returned radius is half the blob's larger
// bounding-box extent, matching what a blob keypoint reports.
func (s *Suite) RefineCenter(planes *imaging.Planes, approx geometry.Center) *geometry.Center {
	blobs := darkBlobs(planes.BW, s.Blobs)
	if len(blobs) == 0 {
		return nil
	}

	best := -1
	bestDist := math.MaxFloat64
	for i, b := range blobs {
		d := geometry.Distance(b.centroid, approx.Point)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	return &geometry.Center{
		Point:  blobs[best].centroid,
		Radius: blobs[best].radius,
	}
}

// darkBlobs finds connected dark components of a binary plane and filters
// them by area and fill ratio.
func darkBlobs(bw *image.Gray, params BlobParams) []blob {
	bounds := bw.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	visited := make([]bool, width*height)
	var blobs []blob

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !isDark(bw, bounds, x, y) {
				continue
			}

			area, sumX, sumY, box := fillComponent(bw, bounds, visited, x, y)
			if area < params.MinArea || area > params.MaxArea {
				continue
			}

			extent := maxInt(box.Dx(), box.Dy())
			circumscribed := math.Pi * float64(extent) * float64(extent) / 4
			if float64(area)/circumscribed < params.MinFill {
				continue
			}

			blobs = append(blobs, blob{
				centroid: geometry.Point{
					X: float64(sumX) / float64(area),
					Y: float64(sumY) / float64(area),
				},
				radius: extent / 2,
				area:   area,
			})
		}
	}

	return blobs
}

// fillComponent flood-fills the dark component containing (startX, startY)
// using an explicit stack, returning its area, coordinate sums, and
// bounding box. Diagonal neighbors connect.
func fillComponent(bw *image.Gray, bounds image.Rectangle, visited []bool, startX, startY int) (area, sumX, sumY int, box image.Rectangle) {
	width := bounds.Dx()
	height := bounds.Dy()

	box = image.Rect(startX, startY, startX+1, startY+1)
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y*width+p.X] || !isDark(bw, bounds, p.X, p.Y) {
			continue
		}

		visited[p.Y*width+p.X] = true
		area++
		sumX += p.X
		sumY += p.Y
		box = box.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}

	return area, sumX, sumY, box
}

func isDark(bw *image.Gray, bounds image.Rectangle, x, y int) bool {
	return bw.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y < 128
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
