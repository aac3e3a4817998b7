// Package hands identifies the hour and minute hands among candidate line
// segments and decodes a clock reading from their angles.
//
// The package is the decision core of the pipeline. It assumes a detected
// clock center and a set of raw segments from a line detector, and performs
// three steps:
//
//  1. Select: collapse noisy, over-produced candidates into at most two
//     physically distinct hand segments (Selector).
//  2. Classify: order the survivors into (hour, minute) by length.
//  3. Decode: convert the two hand angles into an (hour, minute) reading.
//
// All operations are pure; no state is shared across pipeline runs.
package hands

import (
	"math"

	"github.com/clocksight/clocksight/internal/geometry"
)

// maxHands is the number of hands modeled. Second hands are not supported.
const maxHands = 2

// SelectorParams tunes candidate selection.
type SelectorParams struct {
	// MaxCenterDistance is the farthest a segment endpoint may lie from the
	// clock center while still counting as attached to the pivot. The same
	// threshold bounds the endpoint-to-endpoint distance below which two
	// segments are merged as duplicates of one physical hand.
	MaxCenterDistance float64

	// MinAngleSeparation is the smallest pointing-direction difference, in
	// degrees, at which two segments are considered distinct hands.
	MinAngleSeparation float64
}

// DefaultSelectorParams returns the selection thresholds tuned for typical
// wall-clock photographs.
func DefaultSelectorParams() SelectorParams {
	return SelectorParams{
		MaxCenterDistance:  30,
		MinAngleSeparation: 15,
	}
}

// Select picks at most two physically distinct hand candidates from a noisy
// segment set.
//
// Raw line detection over-produces near-duplicate segments for a single
// physical hand (multiple parallel edge responses). Select collapses those
// duplicates to one representative per hand and drops spurious segments that
// do not pass near the pivot.
//
// The selection is greedy in input order: earlier segments win ties. A
// segment is admitted when at least one endpoint lies within
// MaxCenterDistance of the center, and it is not "too close" to an already
// selected segment. Too close means either its pointing direction (angle of
// the far endpoint) differs by less than MinAngleSeparation, or the average
// endpoint-to-endpoint distance between the two segments (minimum over both
// endpoint pairings, since endpoint order is unconstrained) is below
// MaxCenterDistance.
//
// Returns 0, 1, or 2 segments. Running Select twice on the same ordered
// input yields the same output.
func Select(segments []geometry.Segment, center geometry.Center, params SelectorParams) []geometry.Segment {
	selected := make([]geometry.Segment, 0, maxHands)

	for _, seg := range segments {
		if len(selected) == maxHands {
			break
		}
		if !seg.IsValid() {
			continue
		}

		// Hand segments must originate near the pivot.
		if geometry.Distance(seg.A, center.Point) > params.MaxCenterDistance &&
			geometry.Distance(seg.B, center.Point) > params.MaxCenterDistance {
			continue
		}

		if isDuplicate(seg, selected, center, params) {
			continue
		}

		selected = append(selected, seg)
	}

	return selected
}

// isDuplicate reports whether seg is too close, angularly or spatially, to
// any already selected segment.
func isDuplicate(seg geometry.Segment, selected []geometry.Segment, center geometry.Center, params SelectorParams) bool {
	angle := geometry.AngleFromCenter(seg.FarEndpoint(center), center)

	for _, other := range selected {
		otherAngle := geometry.AngleFromCenter(other.FarEndpoint(center), center)
		if angularDifference(angle, otherAngle) < params.MinAngleSeparation {
			return true
		}
		if endpointDistance(seg, other) < params.MaxCenterDistance {
			return true
		}
	}
	return false
}

// angularDifference returns the difference between two angles wrapped to
// [0, 180].
func angularDifference(a, b float64) float64 {
	diff := math.Mod(math.Abs(a-b), 360)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// endpointDistance returns the average endpoint-to-endpoint distance between
// two segments. Both endpoint pairings are evaluated and the smaller average
// is used, so the measure is endpoint-order-agnostic.
func endpointDistance(a, b geometry.Segment) float64 {
	direct := (geometry.Distance(a.A, b.A) + geometry.Distance(a.B, b.B)) / 2
	crossed := (geometry.Distance(a.A, b.B) + geometry.Distance(a.B, b.A)) / 2
	return math.Min(direct, crossed)
}
