package provider

import (
	"context"
	"image"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
)

// FaceDetector locates faces in a grayscale image.
type FaceDetector interface {
	// DetectFaces returns face boxes in detector order. An image without faces
	// yields an empty slice and a nil error.
	DetectFaces(ctx context.Context, gray *image.Gray, params DetectionParams) ([]domain.BoundingBox, error)

	// Name identifies the backend in logs and readiness output.
	Name() string
}

// EmotionClassifier runs one inference over a normalized face patch.
type EmotionClassifier interface {
	// Classify returns one score per entry of domain.EmotionLabels, in the
	// same order.
	Classify(ctx context.Context, patch domain.FacePatch) ([]float32, error)

	Name() string
}

// Closer is implemented by providers that hold native or network resources.
type Closer interface {
	Close() error
}

// DetectionParams mirrors the tuning knobs of a cascade face detector.
type DetectionParams struct {
	ScaleFactor  float64 // window growth per pyramid level
	MinNeighbors int     // overlapping hits required to keep a detection
	MinSize      int     // smallest face side in pixels
}

// DefaultDetectionParams are the fixed parameters used for every request.
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		ScaleFactor:  1.1,
		MinNeighbors: 5,
		MinSize:      30,
	}
}
