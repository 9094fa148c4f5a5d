//go:build !gocv

package face

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/config"
)

func TestNewFaceDetector_OpenCVWithoutTag(t *testing.T) {
	_, err := NewFaceDetector(context.Background(), &config.Config{
		DetectorType: config.DetectorOpenCV,
		CascadePath:  "haarcascade_frontalface_default.xml",
	})
	assert.ErrorIs(t, err, ErrOpenCVUnavailable)
}
