package face

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/config"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider/mock"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider/onnx"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider/pigo"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider/rekognition"
)

// NewFaceDetector creates the FaceDetector selected by DETECTOR_TYPE.
//
// Environment variables:
//   - DETECTOR_TYPE: "pigo", "opencv", "rekognition" or "mock" (default: "pigo")
//   - CASCADE_PATH: cascade file for opencv, optional for pigo (default: embedded facefinder)
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: via the AWS SDK credential chain
func NewFaceDetector(ctx context.Context, cfg *config.Config) (provider.FaceDetector, error) {
	switch cfg.DetectorType {
	case config.DetectorPigo, "":
		pigoConfig := pigo.DefaultConfig()
		pigoConfig.CascadePath = cfg.CascadePath

		d, err := pigo.NewDetector(pigoConfig)
		if err != nil {
			return nil, fmt.Errorf("create pigo detector: %w", err)
		}
		return d, nil

	case config.DetectorOpenCV:
		return newOpenCVDetector(cfg.CascadePath)

	case config.DetectorRekognition:
		rekogConfig := rekognition.DefaultConfig()
		if cfg.AWSRegion != "" {
			rekogConfig.Region = cfg.AWSRegion
		}

		d, err := rekognition.NewDetector(ctx, rekogConfig)
		if err != nil {
			return nil, fmt.Errorf("create rekognition detector: %w", err)
		}
		return d, nil

	case config.DetectorMock:
		return mock.NewDetector(), nil

	default:
		return nil, fmt.Errorf("unknown detector type: %s (supported: %s, %s, %s, %s)",
			cfg.DetectorType, config.DetectorPigo, config.DetectorOpenCV, config.DetectorRekognition, config.DetectorMock)
	}
}

// NewEmotionClassifier creates the EmotionClassifier selected by CLASSIFIER_TYPE.
//
// Environment variables:
//   - CLASSIFIER_TYPE: "onnx", "deepface" or "mock" (default: "onnx")
//   - MODEL_PATH, ONNX_RUNTIME_LIB, ONNX_INPUT_NAME, ONNX_OUTPUT_NAME: ONNX model
//   - DEEPFACE_URL, DEEPFACE_TIMEOUT: DeepFace API
func NewEmotionClassifier(cfg *config.Config) (provider.EmotionClassifier, error) {
	switch cfg.ClassifierType {
	case config.ClassifierONNX, "":
		onnxConfig := onnx.DefaultConfig()
		onnxConfig.ModelPath = cfg.ModelPath
		onnxConfig.LibraryPath = cfg.ONNXRuntimeLib
		if cfg.ONNXInputName != "" {
			onnxConfig.InputName = cfg.ONNXInputName
		}
		if cfg.ONNXOutputName != "" {
			onnxConfig.OutputName = cfg.ONNXOutputName
		}

		c, err := onnx.NewClassifier(onnxConfig)
		if err != nil {
			return nil, fmt.Errorf("create onnx classifier: %w", err)
		}
		return c, nil

	case config.ClassifierDeepFace:
		return createDeepFaceClassifier(cfg), nil

	case config.ClassifierMock:
		return mock.NewClassifier(), nil

	default:
		return nil, fmt.Errorf("unknown classifier type: %s (supported: %s, %s, %s)",
			cfg.ClassifierType, config.ClassifierONNX, config.ClassifierDeepFace, config.ClassifierMock)
	}
}

// createDeepFaceClassifier creates a DeepFace classifier instance
func createDeepFaceClassifier(cfg *config.Config) provider.EmotionClassifier {
	deepfaceConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		deepfaceConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceTimeout > 0 {
		deepfaceConfig.Timeout = cfg.DeepFaceTimeout
	}

	return deepface.NewClassifier(deepfaceConfig)
}

// CloseProvider releases resources of providers that hold any
func CloseProvider(p any) error {
	if c, ok := p.(provider.Closer); ok {
		return c.Close()
	}
	return nil
}
