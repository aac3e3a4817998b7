// Package detection implements the geometric feature detectors the clock
// pipeline depends on: the clock-face circle, the refined hand pivot, and
// the raw hand-candidate line segments.
//
// The detectors are collaborators, not the decision core: they supply
// geometric primitives (a center+radius, a set of candidate segments) with
// simple output contracts, and a nil or empty result signals a miss. Hand
// disambiguation and time decoding live in the hands package.
//
// # Detectors
//
//   - Face circle: Hough circle transform over an edge mask of the
//     half-resolution blurred plane. Each edge pixel votes for candidate
//     centers around itself; the strongest center above the confidence
//     floor wins and is scaled back to full resolution.
//   - Center refinement: connected dark components of the binary plane
//     (iterative flood fill), filtered by area and fill ratio; the blob
//     whose centroid lies nearest the approximate face center becomes the
//     refined pivot.
//   - Segments: Hough line transform over the precomputed edge mask. Peak
//     cells become infinite lines; collinear edge pixels are projected
//     along the line direction and split into runs at gaps, so two
//     opposite collinear hands yield two segments.
//
// # Coordinate System
//
// All results are in full-resolution pixel coordinates: origin top-left,
// X rightward, Y downward.
//
// # Performance
//
// The Hough transforms iterate over all pixels and a parameter space; the
// circle search is the most expensive stage, which is why it runs on the
// downsampled plane. Detection quality is best on clean, high-contrast
// dials; heavily textured faces produce extra candidates that the hands
// package is responsible for rejecting.
package detection
