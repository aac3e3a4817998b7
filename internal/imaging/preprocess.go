package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Default preprocessing parameters. The blur radius approximates a 5x5
// Gaussian kernel; the threshold splits an 8-bit plane down the middle.
const (
	DefaultBlurRadius = 1.4
	DefaultThreshold  = 127
)

// Planes holds the prepared variants of the source photograph. Downstream
// stages treat every plane as read-only.
type Planes struct {
	// Original is the unmodified source image, kept for overlay rendering.
	Original image.Image

	// Grayscale is the luminance-only copy of the original.
	Grayscale *image.NRGBA

	// Blurred is the Gaussian-blurred grayscale plane. Circle detection
	// runs on it; blurring suppresses dial texture and numerals.
	Blurred *image.RGBA

	// BW is the binary threshold of the blurred plane. Edge and blob
	// detection run on it.
	BW *image.Gray
}

// Preprocess prepares the grayscale, blurred, and binary planes for a
// pipeline run.
//
// The chain is grayscale conversion, Gaussian blur (radius
// DefaultBlurRadius), then a fixed binary threshold at DefaultThreshold.
// Fails only for a nil or zero-sized input image.
func Preprocess(img image.Image) (*Planes, error) {
	if img == nil {
		return nil, errors.New("preprocess: nil image")
	}
	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, errors.Errorf("preprocess: empty image %dx%d", bounds.Dx(), bounds.Dy())
	}

	gray := imaging.Grayscale(img)
	blurred := blur.Gaussian(gray, DefaultBlurRadius)
	bw := segment.Threshold(blurred, DefaultThreshold)

	return &Planes{
		Original:  img,
		Grayscale: gray,
		Blurred:   blurred,
		BW:        bw,
	}, nil
}

// Downsample returns the image scaled to half size in each dimension.
// Circle detection runs on a downsampled plane to cut the Hough search
// space, then scales its answer back up.
func Downsample(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	return imaging.Resize(img, bounds.Dx()/2, bounds.Dy()/2, imaging.Box)
}
