// Package viz renders diagnostic images for pipeline runs: candidate
// segments, classified hands, and the detected face circle drawn over the
// source photograph. Nothing here feeds back into detection; overlays are
// a side channel for debugging and demos.
package viz

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/clocksight/clocksight/internal/geometry"
	"github.com/clocksight/clocksight/internal/hands"
	"github.com/clocksight/clocksight/internal/pipeline"
)

// Overlay palette. Raw detections draw in red, accepted results in green,
// the face circle in blue, matching the original diagnostic output.
var (
	segmentColor = mustHex("#d62728")
	handColor    = mustHex("#2ca02c")
	faceColor    = mustHex("#1f77b4")
	labelColor   = mustHex("#ffffff")
)

func mustHex(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Overlay draws a run's artifacts onto a copy of the source image: the
// face circle and refined center, every raw segment thin in red, the
// classified hands thick in green, and the decoded reading (when present)
// stamped in the corner. Missing artifacts are simply skipped, so a
// partially failed run still renders whatever it got to.
func Overlay(art pipeline.Artifacts, reading *hands.ClockReading) *image.RGBA {
	if art.Planes == nil || art.Planes.Original == nil {
		return nil
	}

	base := art.Planes.Original
	out := image.NewRGBA(base.Bounds())
	draw.Draw(out, out.Bounds(), base, base.Bounds().Min, draw.Src)

	if art.Face != nil {
		drawCircle(out, *art.Face, faceColor)
	}
	if art.Center != nil {
		fillDisc(out, art.Center.Point, 4, handColor)
	}

	for _, s := range art.Segments {
		drawSegment(out, s, 1, segmentColor)
	}
	if art.Hands != nil {
		drawSegment(out, art.Hands.Hour, 2, handColor)
		drawSegment(out, art.Hands.Minute, 2, handColor)
	}

	if reading != nil {
		stampLabel(out, reading.String())
	}

	return out
}

// drawSegment draws a line between the segment's endpoints with the given
// half-thickness in pixels.
func drawSegment(img *image.RGBA, s geometry.Segment, halfWidth int, c color.RGBA) {
	length := s.Length()
	if length == 0 {
		fillDisc(img, s.A, halfWidth, c)
		return
	}

	steps := int(length) * 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := s.A.X + t*(s.B.X-s.A.X)
		y := s.A.Y + t*(s.B.Y-s.A.Y)
		fillDisc(img, geometry.Point{X: x, Y: y}, halfWidth, c)
	}
}

// drawCircle draws the circle outline of a detected center.
func drawCircle(img *image.RGBA, c geometry.Center, col color.RGBA) {
	r := float64(c.Radius)
	circumference := 2 * math.Pi * r
	steps := int(circumference) + 8
	for i := 0; i < steps; i++ {
		rad := 2 * math.Pi * float64(i) / float64(steps)
		x := c.Point.X + r*math.Cos(rad)
		y := c.Point.Y + r*math.Sin(rad)
		img.Set(int(x), int(y), col)
	}
}

// fillDisc fills a small disc centered on p.
func fillDisc(img *image.RGBA, p geometry.Point, radius int, c color.RGBA) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.Set(int(p.X)+dx, int(p.Y)+dy, c)
			}
		}
	}
}

// stampLabel writes text in the top-left corner over a dark backing strip.
func stampLabel(img *image.RGBA, text string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}
	w := d.MeasureString(text).Ceil()

	backing := image.Rect(4, 4, 4+w+8, 22)
	draw.Draw(img, backing, image.NewUniform(color.RGBA{A: 200}), image.Point{}, draw.Over)

	d.Dot = fixed.P(8, 17)
	d.DrawString(text)
}
