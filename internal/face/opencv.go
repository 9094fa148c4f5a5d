//go:build gocv

package face

import (
	"fmt"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider/opencv"
)

func newOpenCVDetector(cascadePath string) (provider.FaceDetector, error) {
	d, err := opencv.NewDetector(cascadePath)
	if err != nil {
		return nil, fmt.Errorf("create opencv detector: %w", err)
	}
	return d, nil
}
