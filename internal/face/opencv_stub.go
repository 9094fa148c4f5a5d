//go:build !gocv

package face

import (
	"errors"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
)

// ErrOpenCVUnavailable is returned when the binary was built without the gocv tag
var ErrOpenCVUnavailable = errors.New("opencv detector requires building with -tags gocv")

func newOpenCVDetector(string) (provider.FaceDetector, error) {
	return nil, ErrOpenCVUnavailable
}
