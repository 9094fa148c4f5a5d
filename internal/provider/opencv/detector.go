//go:build gocv

// Package opencv detects faces with an OpenCV Haar cascade through gocv.
// It is only compiled with the gocv build tag because it links against
// the OpenCV C++ libraries.
package opencv

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"gocv.io/x/gocv"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
)

var ErrCascadeLoad = errors.New("failed to load face cascade classifier")

// Detector implements provider.FaceDetector with gocv.CascadeClassifier.
// The classifier is not documented as re-entrant, so calls are serialized.
type Detector struct {
	mu         sync.Mutex
	classifier gocv.CascadeClassifier
}

// NewDetector loads a Haar cascade XML such as haarcascade_frontalface_default.xml
func NewDetector(cascadePath string) (*Detector, error) {
	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		_ = classifier.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascadeLoad, cascadePath)
	}
	return &Detector{classifier: classifier}, nil
}

func (d *Detector) Name() string { return "opencv" }

func (d *Detector) DetectFaces(ctx context.Context, gray *image.Gray, params provider.DetectionParams) ([]domain.BoundingBox, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageGrayToMatGray(gray)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	d.mu.Lock()
	rects := d.classifier.DetectMultiScaleWithParams(mat,
		params.ScaleFactor,
		params.MinNeighbors,
		0,
		image.Pt(params.MinSize, params.MinSize),
		image.Pt(0, 0),
	)
	d.mu.Unlock()

	origin := gray.Bounds().Min
	boxes := make([]domain.BoundingBox, 0, len(rects))
	for _, r := range rects {
		boxes = append(boxes, domain.BoundingBox{
			X:      origin.X + r.Min.X,
			Y:      origin.Y + r.Min.Y,
			Width:  r.Dx(),
			Height: r.Dy(),
		})
	}
	return boxes, nil
}

func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.classifier.Close()
}

var (
	_ provider.FaceDetector = (*Detector)(nil)
	_ provider.Closer       = (*Detector)(nil)
)
