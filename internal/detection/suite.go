package detection

// Suite bundles the three detectors with their parameters. It satisfies the
// pipeline's Detectors interface and carries no per-run state: the same
// Suite may serve any number of pipeline runs, concurrently if desired.
type Suite struct {
	Face  FaceParams
	Blobs BlobParams
	Lines LineParams
}

// NewSuite returns a Suite with default parameters for all detectors.
func NewSuite() *Suite {
	return &Suite{
		Face:  DefaultFaceParams(),
		Blobs: DefaultBlobParams(),
		Lines: DefaultLineParams(),
	}
}
