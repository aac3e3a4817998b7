package detection

import (
	"math"

	"github.com/clocksight/clocksight/internal/geometry"
	"github.com/clocksight/clocksight/internal/imaging"
)

// FaceParams tunes clock-face circle detection. All radius values are in
// downsampled (half-resolution) pixels.
type FaceParams struct {
	// MinRadius is the smallest face radius considered. Small circles on a
	// dial (pivot dot, date window) fall below it.
	MinRadius int

	// EdgeLow and EdgeHigh are the Canny thresholds applied to the
	// downsampled blurred plane before voting.
	EdgeLow  int
	EdgeHigh int

	// MinConfidence is the minimum fraction of the expected circumference
	// that must vote for a center. Below it the detection is a miss.
	MinConfidence float64
}

// DefaultFaceParams returns circle-detection parameters for typical clock
// photographs.
func DefaultFaceParams() FaceParams {
	return FaceParams{
		MinRadius:     30,
		EdgeLow:       50,
		EdgeHigh:      150,
		MinConfidence: 0.6,
	}
}

// voteStepDegrees is the angular stride of Hough circle voting. At larger
// radii the vote for a coarse stride scatters several pixels away from the
// true center, so the stride must stay fine enough that votes land within a
// cell of it.
const voteStepDegrees = 2

// DetectFace finds the circular clock face and returns its center and
// radius in full-resolution coordinates, or nil when no circle clears the
// confidence floor.
//
// The search runs a Hough circle transform on an edge mask of the
// half-resolution blurred plane: every edge pixel votes for candidate
// centers at each radius, every few degrees around itself. The strongest
// accumulator cell wins. Halving the resolution first cuts the O(pixels x
// radii) search space by a factor of eight for a sub-pixel cost in center
// accuracy, which the refinement stage absorbs anyway.
func (s *Suite) DetectFace(planes *imaging.Planes) *geometry.Center {
	small := imaging.Downsample(planes.Blurred)
	edges := imaging.DetectEdges(small, s.Face.EdgeLow, s.Face.EdgeHigh)

	width, height := edges.Width, edges.Height
	maxRadius := minInt(width, height) / 2
	if maxRadius <= s.Face.MinRadius {
		return nil
	}

	var (
		bestX, bestY, bestR int
		bestConf            float64
	)

	for radius := s.Face.MinRadius; radius <= maxRadius; radius++ {
		accumulator := make([][]int, height)
		for y := range accumulator {
			accumulator[y] = make([]int, width)
		}

		// Vote for circle centers around every edge pixel.
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges.At(x, y) {
					continue
				}
				for angle := 0; angle < 360; angle += voteStepDegrees {
					rad := float64(angle) * math.Pi / 180
					cx := x - int(float64(radius)*math.Cos(rad))
					cy := y - int(float64(radius)*math.Sin(rad))
					if cx >= 0 && cx < width && cy >= 0 && cy < height {
						accumulator[cy][cx]++
					}
				}
			}
		}

		threshold := int(float64(2*radius) * s.Face.MinConfidence)
		for y := radius; y < height-radius; y++ {
			for x := radius; x < width-radius; x++ {
				if accumulator[y][x] < threshold {
					continue
				}
				confidence := float64(accumulator[y][x]) / float64(2*radius)
				if confidence > bestConf {
					bestConf = confidence
					bestX, bestY, bestR = x, y, radius
				}
			}
		}
	}

	if bestConf == 0 {
		return nil
	}

	// Scale back to full resolution.
	return &geometry.Center{
		Point:  geometry.Point{X: float64(bestX * 2), Y: float64(bestY * 2)},
		Radius: bestR * 2,
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
