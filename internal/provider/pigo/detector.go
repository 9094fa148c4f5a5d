// Package pigo implements provider.FaceDetector with the pure Go pigo
// cascade classifier.
package pigo

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
	"github.com/saturnino-fabrica-de-software/emotion-api/models"
)

var ErrInvalidCascade = errors.New("invalid pigo cascade file")

// Config holds the pigo-specific knobs not covered by provider.DetectionParams.
type Config struct {
	CascadePath  string  // empty selects the embedded facefinder cascade
	ShiftFactor  float64 // sliding window step as a fraction of window size
	IoUThreshold float64 // overlap above which detections are merged
}

// DefaultConfig returns the settings recommended by the pigo authors.
func DefaultConfig() Config {
	return Config{
		ShiftFactor:  0.1,
		IoUThreshold: 0.2,
	}
}

// Detector runs the unpacked cascade. The classifier is read-only after
// unpacking and is shared across goroutines.
type Detector struct {
	classifier *pigo.Pigo
	config     Config
}

// NewDetector loads and unpacks the cascade file at cfg.CascadePath, or the
// embedded facefinder cascade when no path is set.
func NewDetector(cfg Config) (*Detector, error) {
	if cfg.CascadePath == "" {
		return NewDetectorFromBytes(models.Facefinder, cfg)
	}
	cascade, err := os.ReadFile(cfg.CascadePath)
	if err != nil {
		return nil, fmt.Errorf("read cascade %s: %w", cfg.CascadePath, err)
	}
	return NewDetectorFromBytes(cascade, cfg)
}

// NewDetectorFromBytes unpacks an in-memory cascade.
func NewDetectorFromBytes(cascade []byte, cfg Config) (d *Detector, err error) {
	defaults := DefaultConfig()
	if cfg.ShiftFactor <= 0 {
		cfg.ShiftFactor = defaults.ShiftFactor
	}
	if cfg.IoUThreshold <= 0 {
		cfg.IoUThreshold = defaults.IoUThreshold
	}

	// Unpack indexes into the packet without length checks.
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, fmt.Errorf("%w: %v", ErrInvalidCascade, r)
		}
	}()

	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCascade, err)
	}

	return &Detector{classifier: classifier, config: cfg}, nil
}

func (d *Detector) Name() string { return "pigo" }

// DetectFaces runs the cascade over gray. MinNeighbors is applied as the
// minimum summed score of a detection cluster.
func (d *Detector) DetectFaces(ctx context.Context, gray *image.Gray, params provider.DetectionParams) ([]domain.BoundingBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := gray.Bounds()
	rows, cols := b.Dy(), b.Dx()
	maxSize := min(rows, cols)
	if maxSize < params.MinSize {
		return nil, nil
	}

	cp := pigo.CascadeParams{
		MinSize:     params.MinSize,
		MaxSize:     maxSize,
		ShiftFactor: d.config.ShiftFactor,
		ScaleFactor: params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: compactPixels(gray),
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(cp, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.config.IoUThreshold)

	return toBoxes(dets, float32(params.MinNeighbors), b.Min), nil
}

// compactPixels returns the pixel buffer with stride equal to width.
func compactPixels(gray *image.Gray) []uint8 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	if gray.Stride == w && b.Min == (image.Point{}) {
		return gray.Pix[:w*h]
	}
	out := make([]uint8, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := gray.PixOffset(b.Min.X, y)
		out = append(out, gray.Pix[off:off+w]...)
	}
	return out
}

// toBoxes converts center/scale detections into boxes, dropping those whose
// score is below minScore. Detector order is preserved.
func toBoxes(dets []pigo.Detection, minScore float32, origin image.Point) []domain.BoundingBox {
	boxes := make([]domain.BoundingBox, 0, len(dets))
	for _, det := range dets {
		if det.Q < minScore {
			continue
		}
		half := det.Scale / 2
		boxes = append(boxes, domain.BoundingBox{
			X:      origin.X + det.Col - half,
			Y:      origin.Y + det.Row - half,
			Width:  det.Scale,
			Height: det.Scale,
		})
	}
	return boxes
}

var _ provider.FaceDetector = (*Detector)(nil)
