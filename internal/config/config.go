package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Supported provider names.
const (
	DetectorPigo        = "pigo"
	DetectorOpenCV      = "opencv"
	DetectorRekognition = "rekognition"
	DetectorMock        = "mock"

	ClassifierONNX     = "onnx"
	ClassifierDeepFace = "deepface"
	ClassifierMock     = "mock"
)

type Config struct {
	// Server
	Host          string `envconfig:"HOST" default:"0.0.0.0"`
	Port          int    `envconfig:"PORT" default:"5000"`
	Environment   string `envconfig:"ENV" default:"development"`
	MaxImageBytes int    `envconfig:"MAX_IMAGE_BYTES" default:"10485760"`
	DocsEnabled   bool   `envconfig:"DOCS_ENABLED" default:"true"`

	// Face detector
	DetectorType string `envconfig:"DETECTOR_TYPE" default:"pigo"`
	CascadePath  string `envconfig:"CASCADE_PATH"` // empty uses the embedded pigo cascade
	AWSRegion    string `envconfig:"AWS_REGION" default:"us-east-1"`

	// Emotion classifier
	ClassifierType  string        `envconfig:"CLASSIFIER_TYPE" default:"onnx"`
	ModelPath       string        `envconfig:"MODEL_PATH" default:"models/emotion_model.onnx"`
	ONNXRuntimeLib  string        `envconfig:"ONNX_RUNTIME_LIB"`
	ONNXInputName   string        `envconfig:"ONNX_INPUT_NAME" default:"input_1"`
	ONNXOutputName  string        `envconfig:"ONNX_OUTPUT_NAME" default:"dense_2"`
	DeepFaceURL     string        `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`
	DeepFaceTimeout time.Duration `envconfig:"DEEPFACE_TIMEOUT" default:"30s"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv reads the environment without validating, for callers that
// override fields before calling Validate.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects provider selections the service cannot build.
func (c *Config) Validate() error {
	switch c.DetectorType {
	case DetectorOpenCV:
		if c.CascadePath == "" {
			return fmt.Errorf("CASCADE_PATH is required for detector %q", c.DetectorType)
		}
	case DetectorPigo, DetectorRekognition, DetectorMock:
	default:
		return fmt.Errorf("unknown detector type: %q", c.DetectorType)
	}

	switch c.ClassifierType {
	case ClassifierONNX:
		if c.ModelPath == "" {
			return fmt.Errorf("MODEL_PATH is required for classifier %q", c.ClassifierType)
		}
	case ClassifierDeepFace:
		if c.DeepFaceURL == "" {
			return fmt.Errorf("DEEPFACE_URL is required for classifier %q", c.ClassifierType)
		}
	case ClassifierMock:
	default:
		return fmt.Errorf("unknown classifier type: %q", c.ClassifierType)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
