package detection

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/clocksight/clocksight/internal/geometry"
	"github.com/clocksight/clocksight/internal/imaging"
)

// createTestImage creates a solid-colored RGBA image.
func createTestImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// drawDisc fills a circle of the given radius with black pixels.
func drawDisc(img *image.RGBA, cx, cy, radius int) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			if math.Sqrt(dx*dx+dy*dy) <= float64(radius) {
				img.Set(x, y, color.Black)
			}
		}
	}
}

// drawGrayRect fills a rectangle of a grayscale plane with the given value.
func drawGrayRect(img *image.Gray, x1, y1, x2, y2 int, v uint8) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
}

// whiteGray creates an all-white grayscale plane.
func whiteGray(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	drawGrayRect(img, 0, 0, width, height, 255)
	return img
}

// drawGrayDisc fills a circle of a grayscale plane with black pixels.
func drawGrayDisc(img *image.Gray, cx, cy, radius int) {
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			if math.Sqrt(dx*dx+dy*dy) <= float64(radius) {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
}

func TestDetectSegments_VerticalLine(t *testing.T) {
	mask := imaging.NewEdgeMask(200, 200)
	for y := 20; y <= 120; y++ {
		mask.Set(100, y)
	}

	suite := NewSuite()
	segments := suite.DetectSegments(mask)
	if len(segments) == 0 {
		t.Fatal("no segments detected for a 100px vertical line")
	}

	s := segments[0]
	if math.Abs(s.Length()-100) > 5 {
		t.Errorf("segment length: got %.1f, want ~100", s.Length())
	}

	top := s.A
	bottom := s.B
	if top.Y > bottom.Y {
		top, bottom = bottom, top
	}
	if math.Abs(top.X-100) > 3 || math.Abs(top.Y-20) > 5 {
		t.Errorf("top endpoint: got %+v, want ~(100,20)", top)
	}
	if math.Abs(bottom.X-100) > 3 || math.Abs(bottom.Y-120) > 5 {
		t.Errorf("bottom endpoint: got %+v, want ~(100,120)", bottom)
	}
}

func TestDetectSegments_DiagonalLine(t *testing.T) {
	mask := imaging.NewEdgeMask(200, 200)
	for i := 20; i <= 120; i++ {
		mask.Set(i, i)
	}

	suite := NewSuite()
	segments := suite.DetectSegments(mask)
	if len(segments) == 0 {
		t.Fatal("no segments detected for a diagonal line")
	}
	if math.Abs(segments[0].Length()-141.4) > 8 {
		t.Errorf("segment length: got %.1f, want ~141.4", segments[0].Length())
	}
}

func TestDetectSegments_GapSplitsCollinearRuns(t *testing.T) {
	// Two collinear runs separated by 30px: opposite hands on one line must
	// stay two segments.
	mask := imaging.NewEdgeMask(200, 200)
	for y := 20; y <= 60; y++ {
		mask.Set(100, y)
	}
	for y := 90; y <= 130; y++ {
		mask.Set(100, y)
	}

	suite := NewSuite()
	suite.Lines.MinLength = 30

	segments := suite.DetectSegments(mask)
	if len(segments) < 2 {
		t.Fatalf("got %d segments, want 2 (gap must split the line)", len(segments))
	}

	for _, s := range segments[:2] {
		if math.Abs(s.Length()-40) > 5 {
			t.Errorf("run length: got %.1f, want ~40", s.Length())
		}
	}
}

func TestDetectSegments_ShortLineFiltered(t *testing.T) {
	mask := imaging.NewEdgeMask(200, 200)
	for y := 95; y <= 105; y++ {
		mask.Set(100, y)
	}

	suite := NewSuite()
	if segments := suite.DetectSegments(mask); len(segments) != 0 {
		t.Errorf("got %d segments for a 10px line with MinLength=80, want 0", len(segments))
	}
}

func TestDetectSegments_EmptyMask(t *testing.T) {
	suite := NewSuite()
	if segments := suite.DetectSegments(imaging.NewEdgeMask(50, 50)); len(segments) != 0 {
		t.Errorf("got %d segments from an empty mask, want 0", len(segments))
	}
}

func TestRefineCenter_PicksNearestBlob(t *testing.T) {
	bw := whiteGray(200, 200)
	drawGrayDisc(bw, 120, 80, 10) // near the approximate center
	drawGrayDisc(bw, 30, 30, 8)   // decoy, farther away

	planes := &imaging.Planes{BW: bw}
	approx := geometry.Center{Point: geometry.Point{X: 100, Y: 100}, Radius: 90}

	suite := NewSuite()
	center := suite.RefineCenter(planes, approx)
	if center == nil {
		t.Fatal("RefineCenter returned nil with a valid blob present")
	}
	if math.Abs(center.Point.X-120) > 2 || math.Abs(center.Point.Y-80) > 2 {
		t.Errorf("refined center: got %+v, want ~(120,80)", center.Point)
	}
	if center.Radius < 8 || center.Radius > 12 {
		t.Errorf("refined radius: got %d, want ~10", center.Radius)
	}
}

func TestRefineCenter_RejectsElongatedComponents(t *testing.T) {
	bw := whiteGray(200, 200)
	drawGrayRect(bw, 98, 40, 102, 160, 0) // a hand-like strip, not a pivot

	planes := &imaging.Planes{BW: bw}
	approx := geometry.Center{Point: geometry.Point{X: 100, Y: 100}, Radius: 90}

	suite := NewSuite()
	if center := suite.RefineCenter(planes, approx); center != nil {
		t.Errorf("RefineCenter: got %+v, want nil (strip should fail the fill filter)", center)
	}
}

func TestRefineCenter_NoBlobs(t *testing.T) {
	planes := &imaging.Planes{BW: whiteGray(100, 100)}
	approx := geometry.Center{Point: geometry.Point{X: 50, Y: 50}, Radius: 40}

	suite := NewSuite()
	if center := suite.RefineCenter(planes, approx); center != nil {
		t.Errorf("RefineCenter on a blank plane: got %+v, want nil", center)
	}
}

func TestDetectFace(t *testing.T) {
	img := createTestImage(300, 300, color.White)
	drawDisc(img, 150, 150, 80)

	planes, err := imaging.Preprocess(img)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	suite := NewSuite()
	center := suite.DetectFace(planes)
	if center == nil {
		t.Fatal("DetectFace returned nil for a clean 80px disc")
	}
	if math.Abs(center.Point.X-150) > 8 || math.Abs(center.Point.Y-150) > 8 {
		t.Errorf("face center: got %+v, want ~(150,150)", center.Point)
	}
	if center.Radius < 70 || center.Radius > 90 {
		t.Errorf("face radius: got %d, want ~80", center.Radius)
	}
}

func TestDetectFace_NoCircle(t *testing.T) {
	planes, err := imaging.Preprocess(createTestImage(200, 200, color.White))
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	suite := NewSuite()
	if center := suite.DetectFace(planes); center != nil {
		t.Errorf("DetectFace on a blank image: got %+v, want nil", center)
	}
}

func TestDetectFace_TooSmallImage(t *testing.T) {
	// Downsampled plane smaller than the minimum radius: always a miss.
	planes, err := imaging.Preprocess(createTestImage(40, 40, color.White))
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}

	suite := NewSuite()
	if center := suite.DetectFace(planes); center != nil {
		t.Errorf("DetectFace on a tiny image: got %+v, want nil", center)
	}
}
