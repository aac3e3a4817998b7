package viz

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/clocksight/clocksight/internal/pipeline"
)

// Stage image filenames written by SaveStages.
const (
	BlurredFile = "blurred_image.png"
	EdgesFile   = "edges.png"
	OverlayFile = "detected_lines.png"
)

// SaveStages writes the intermediate images of a run into dir, creating it
// if needed: the blurred plane, the edge mask, and the overlay (when
// non-nil). Artifacts a failed run never produced are skipped.
func SaveStages(dir string, art pipeline.Artifacts, overlay image.Image) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}

	if art.Planes != nil {
		if err := writePNG(filepath.Join(dir, BlurredFile), art.Planes.Blurred); err != nil {
			return err
		}
	}
	if art.Edges != nil {
		if err := writePNG(filepath.Join(dir, EdgesFile), art.Edges.Gray()); err != nil {
			return err
		}
	}
	if overlay != nil {
		if err := writePNG(filepath.Join(dir, OverlayFile), overlay); err != nil {
			return err
		}
	}

	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return nil
}
