// Package imaging provides the image preparation stages of the clock
// pipeline: loading, preprocessing, and edge detection.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Processing Chain
//
// A pipeline run prepares three planes from the source photograph:
//
//   - Grayscale: luminance-only copy of the original
//   - Blurred: Gaussian-blurred grayscale, input to circle detection
//   - BW: fixed-threshold binary plane, input to edge and blob detection
//
// DetectEdges then derives a binary EdgeMask from the BW plane using Canny
// edge detection. The mask is the input contract for line detection.
//
// # Thread Safety
//
// The Cache type is safe for concurrent use. Preprocess and DetectEdges are
// stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Preprocess returns an error only for nil or empty input; DetectEdges
// always succeeds and may return an empty mask for feature-free images.
// File I/O errors surface from Cache.Load.
package imaging
