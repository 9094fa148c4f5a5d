package rekognition

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
	// minImageDimension is the smallest width/height Rekognition analyzes
	minImageDimension = 80
)

// Detector implements provider.FaceDetector using Rekognition DetectFaces.
// ScaleFactor and MinNeighbors have no Rekognition counterpart; MinSize is
// applied to the returned boxes.
type Detector struct {
	api    DetectFacesAPI
	config Config
}

// NewDetector creates a detector backed by a real Rekognition client
func NewDetector(ctx context.Context, cfg Config) (*Detector, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create rekognition client: %w", err)
	}
	return NewDetectorWithAPI(client, cfg), nil
}

// NewDetectorWithAPI creates a detector over any DetectFacesAPI implementation
func NewDetectorWithAPI(api DetectFacesAPI, cfg Config) *Detector {
	return &Detector{api: api, config: cfg}
}

func (d *Detector) Name() string { return "rekognition" }

// DetectFaces sends the PNG-encoded grayscale image to Rekognition and
// returns pixel boxes in the order Rekognition lists them
func (d *Detector) DetectFaces(ctx context.Context, gray *image.Gray, params provider.DetectionParams) ([]domain.BoundingBox, error) {
	b := gray.Bounds()
	if b.Dx() < minImageDimension || b.Dy() < minImageDimension {
		return nil, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if buf.Len() > maxImageSize {
		return nil, fmt.Errorf("%w: image too large (%d bytes, maximum %d)", ErrInvalidImage, buf.Len(), maxImageSize)
	}

	output, err := d.api.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: buf.Bytes(),
		},
		Attributes: []types.Attribute{types.AttributeDefault},
	})
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", mapAPIError(err))
	}

	return d.toBoxes(output.FaceDetails, b, params.MinSize), nil
}

// toBoxes converts ratio bounding boxes into pixel boxes of an image with
// bounds b, dropping low-confidence and undersized faces
func (d *Detector) toBoxes(details []types.FaceDetail, b image.Rectangle, minSize int) []domain.BoundingBox {
	w, h := float32(b.Dx()), float32(b.Dy())

	boxes := make([]domain.BoundingBox, 0, len(details))
	for _, detail := range details {
		if detail.BoundingBox == nil {
			continue
		}
		if aws.ToFloat32(detail.Confidence) < d.config.MinConfidence {
			continue
		}

		bb := detail.BoundingBox
		box := domain.BoundingBox{
			X:      b.Min.X + int(aws.ToFloat32(bb.Left)*w),
			Y:      b.Min.Y + int(aws.ToFloat32(bb.Top)*h),
			Width:  int(aws.ToFloat32(bb.Width) * w),
			Height: int(aws.ToFloat32(bb.Height) * h),
		}
		if box.Width < minSize || box.Height < minSize {
			continue
		}
		boxes = append(boxes, box)
	}
	return boxes
}

var _ provider.FaceDetector = (*Detector)(nil)
