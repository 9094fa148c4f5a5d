// Package onnx runs the emotion classification model with ONNX Runtime.
package onnx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
)

var (
	ErrModelNotFound = errors.New("onnx model file not found")
	ErrInvalidPatch  = errors.New("face patch has wrong size")
	ErrClosed        = errors.New("onnx classifier closed")
)

// Config holds the model location and graph tensor names
type Config struct {
	ModelPath   string
	LibraryPath string // empty uses the platform default libonnxruntime
	InputName   string
	OutputName  string
}

// DefaultConfig returns the names of a Keras model exported with tf2onnx
func DefaultConfig() Config {
	return Config{
		ModelPath:  "models/emotion_model.onnx",
		InputName:  "input_1",
		OutputName: "dense_2",
	}
}

// The runtime environment is process wide; classifiers share it.
var (
	envMu   sync.Mutex
	envRefs int
)

func acquireEnvironment(libraryPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 && !ort.IsInitialized() {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}
	envRefs++
	return nil
}

func releaseEnvironment() error {
	envMu.Lock()
	defer envMu.Unlock()

	envRefs--
	if envRefs > 0 {
		return nil
	}
	envRefs = 0
	return ort.DestroyEnvironment()
}

// Classifier implements provider.EmotionClassifier. A single session is
// shared by all callers; every Run gets its own input and output tensors.
type Classifier struct {
	config  Config
	mu      sync.RWMutex
	session *ort.DynamicAdvancedSession
}

// NewClassifier loads the model file and creates the inference session
func NewClassifier(cfg Config) (*Classifier, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.ModelPath)
	}

	if err := acquireEnvironment(cfg.LibraryPath); err != nil {
		return nil, err
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName}, nil)
	if err != nil {
		_ = releaseEnvironment()
		return nil, fmt.Errorf("load model %s: %w", cfg.ModelPath, err)
	}

	return &Classifier{config: cfg, session: session}, nil
}

func (c *Classifier) Name() string { return "onnx" }

// Classify runs one forward pass over the patch
func (c *Classifier) Classify(ctx context.Context, patch domain.FacePatch) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(patch.Data) != domain.PatchSize*domain.PatchSize {
		return nil, fmt.Errorf("%w: %d values", ErrInvalidPatch, len(patch.Data))
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil, ErrClosed
	}

	input, err := ort.NewTensor(ort.NewShape(patch.Shape()...), patch.Data)
	if err != nil {
		return nil, fmt.Errorf("create input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(domain.NumEmotions)))
	if err != nil {
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	defer func() { _ = output.Destroy() }()

	if err := c.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return nil, fmt.Errorf("run model: %w", err)
	}

	return copyScores(output.GetData()), nil
}

// copyScores detaches the result from tensor memory freed on Destroy
func copyScores(data []float32) []float32 {
	out := make([]float32, len(data))
	copy(out, data)
	return out
}

// Close releases the session and, for the last classifier, the runtime
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	err := c.session.Destroy()
	c.session = nil
	return errors.Join(err, releaseEnvironment())
}

var (
	_ provider.EmotionClassifier = (*Classifier)(nil)
	_ provider.Closer            = (*Classifier)(nil)
)
