package mock

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"image"
	"math"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
)

// Detector implements provider.FaceDetector for tests and local development.
// It reports one centered face on any image with some contrast and none on a
// uniform image.
type Detector struct{}

// NewDetector creates a mock detector
func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) Name() string { return "mock" }

// DetectFaces returns a box covering the central 80% of the image
func (d *Detector) DetectFaces(ctx context.Context, gray *image.Gray, params provider.DetectionParams) ([]domain.BoundingBox, error) {
	b := gray.Bounds()
	if isUniform(gray) {
		return nil, nil
	}

	box := domain.BoundingBox{
		X:      b.Min.X + b.Dx()/10,
		Y:      b.Min.Y + b.Dy()/10,
		Width:  b.Dx() * 8 / 10,
		Height: b.Dy() * 8 / 10,
	}
	if box.Width < params.MinSize || box.Height < params.MinSize {
		return nil, nil
	}

	return []domain.BoundingBox{box}, nil
}

func isUniform(gray *image.Gray) bool {
	b := gray.Bounds()
	first := gray.GrayAt(b.Min.X, b.Min.Y).Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y != first {
				return false
			}
		}
	}
	return true
}

// Classifier implements provider.EmotionClassifier with scores derived from
// a hash of the patch, so equal patches always get equal scores.
type Classifier struct{}

// NewClassifier creates a mock classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

func (c *Classifier) Name() string { return "mock" }

// Classify returns a softmax over hash-derived logits
func (c *Classifier) Classify(ctx context.Context, patch domain.FacePatch) ([]float32, error) {
	buf := make([]byte, 4*len(patch.Data))
	for i, v := range patch.Data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	hash := sha256.Sum256(buf)

	logits := make([]float64, domain.NumEmotions)
	for i := range logits {
		logits[i] = float64(hash[i]) / 32.0
	}

	return softmax(logits), nil
}

func softmax(logits []float64) []float32 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		maxLogit = math.Max(maxLogit, l)
	}

	sum := 0.0
	exps := make([]float64, len(logits))
	for i, l := range logits {
		exps[i] = math.Exp(l - maxLogit)
		sum += exps[i]
	}

	out := make([]float32, len(logits))
	for i := range exps {
		out[i] = float32(exps[i] / sum)
	}
	return out
}

var (
	_ provider.FaceDetector      = (*Detector)(nil)
	_ provider.EmotionClassifier = (*Classifier)(nil)
)
