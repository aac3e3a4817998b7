package detection

import (
	"math"
	"sort"

	"github.com/clocksight/clocksight/internal/geometry"
	"github.com/clocksight/clocksight/internal/imaging"
)

// LineParams tunes hand-candidate segment detection.
type LineParams struct {
	// MinLength is the shortest segment reported, in pixels. Hour markers
	// and dial ticks fall below it; hands clear it.
	MinLength int

	// MaxGap is the widest break, in pixels, bridged within one segment.
	// Collinear runs separated by more than MaxGap become separate
	// segments, so two opposite hands on the same line stay distinct.
	MaxGap float64

	// MaxSegments caps the number of reported segments.
	MaxSegments int

	// Tolerance is the distance, in pixels, an edge point may sit from a
	// voted line and still belong to it.
	Tolerance float64
}

// DefaultLineParams returns segment-detection parameters for typical clock
// photographs.
func DefaultLineParams() LineParams {
	return LineParams{
		MinLength:   80,
		MaxGap:      15,
		MaxSegments: 50,
		Tolerance:   2.0,
	}
}

// linePoint is an edge pixel on a voted line, with its scalar position
// along the line direction.
type linePoint struct {
	x, y int
	t    float64
}

// DetectSegments finds straight segments in the edge mask using a Hough
// line transform. The returned slice may be empty and is ordered by vote
// strength, strongest line first; segment endpoint order is not meaningful.
//
// Each edge pixel votes for every (rho, theta) line through it. Peak cells
// (local maxima over a +-2 window) become infinite lines; the edge pixels
// within Tolerance of a line are projected along its direction, sorted, and
// split into runs wherever consecutive pixels are more than MaxGap apart.
// Runs at least MinLength long are reported as segments.
func (s *Suite) DetectSegments(edges *imaging.EdgeMask) []geometry.Segment {
	width, height := edges.Width, edges.Height
	if width == 0 || height == 0 {
		return nil
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	const numAngles = 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges.At(x, y) {
				continue
			}
			for theta := 0; theta < numAngles; theta++ {
				angle := float64(theta) * math.Pi / 180.0
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				rhoIdx := int(rho) + maxDist
				if rhoIdx >= 0 && rhoIdx < maxDist*2 {
					accumulator[rhoIdx][theta]++
				}
			}
		}
	}

	// Find peaks: cells above threshold that are local maxima.
	type peak struct {
		rho   int
		theta int
		votes int
	}
	var peaks []peak
	threshold := s.Lines.MinLength / 2

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			if accumulator[rhoIdx][theta] < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > accumulator[rhoIdx][theta] {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: accumulator[rhoIdx][theta]})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	var segments []geometry.Segment

	for _, pk := range peaks {
		if len(segments) >= s.Lines.MaxSegments {
			break
		}

		angle := float64(pk.theta) * math.Pi / 180.0
		rho := float64(pk.rho)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Collect edge points on this line, with their position along the
		// line direction (-sinA, cosA).
		var points []linePoint
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges.At(x, y) {
					continue
				}
				dist := math.Abs(float64(x)*cosA + float64(y)*sinA - rho)
				if dist < s.Lines.Tolerance {
					t := -float64(x)*sinA + float64(y)*cosA
					points = append(points, linePoint{x: x, y: y, t: t})
				}
			}
		}
		if len(points) < s.Lines.MinLength {
			continue
		}

		sort.Slice(points, func(i, j int) bool {
			return points[i].t < points[j].t
		})

		segments = appendRuns(segments, points, s.Lines)
	}

	return segments
}

// appendRuns splits t-ordered line points at gaps wider than MaxGap and
// appends every run at least MinLength long as a segment.
func appendRuns(segments []geometry.Segment, points []linePoint, params LineParams) []geometry.Segment {
	start := 0
	flush := func(end int) []geometry.Segment {
		if len(segments) >= params.MaxSegments {
			return segments
		}
		first, last := points[start], points[end]
		seg := geometry.Seg(float64(first.x), float64(first.y), float64(last.x), float64(last.y))
		if seg.Length() >= float64(params.MinLength) {
			segments = append(segments, seg)
		}
		return segments
	}

	for i := 1; i < len(points); i++ {
		if points[i].t-points[i-1].t > params.MaxGap {
			segments = flush(i - 1)
			start = i
		}
	}
	return flush(len(points) - 1)
}
