// Command classify runs the emotion pipeline over image files on disk and
// prints one JSON line per file.
package main

import (
	"fmt"
	"os"

	cli "github.com/spf13/cobra"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/config"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/face"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	cmd := &cli.Command{
		Use:   "classify [files...]",
		Short: "Detect the dominant emotion in image files",
		Long: "Runs face detection and emotion classification on each file and prints\n" +
			"{\"file\":...,\"emotion\":...} or {\"file\":...,\"error\":...} per line.\n" +
			"Flags default to the same environment variables the API server reads.",
		Args:          cli.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runClassify,
	}

	cmd.Flags().String("detector", "", "Face detector: pigo, opencv, rekognition or mock (default $DETECTOR_TYPE)")
	cmd.Flags().String("cascade", "", "Cascade file for pigo/opencv (default $CASCADE_PATH)")
	cmd.Flags().String("classifier", "", "Emotion classifier: onnx, deepface or mock (default $CLASSIFIER_TYPE)")
	cmd.Flags().String("model", "", "ONNX model file (default $MODEL_PATH)")
	cmd.Flags().String("onnx-lib", "", "Path to libonnxruntime (default $ONNX_RUNTIME_LIB)")
	cmd.Flags().String("deepface-url", "", "DeepFace API URL (default $DEEPFACE_URL)")
	cmd.Flags().BoolP("debug", "d", false, "Log pipeline steps to stderr.")

	return cmd
}

func runClassify(cmd *cli.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg.Environment = "production"
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Environment = "development"
	}
	logger := cfg.NewLoggerTo(cmd.ErrOrStderr())

	ctx := cmd.Context()

	detector, err := face.NewFaceDetector(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to load face detector: %w", err)
	}
	defer func() { _ = face.CloseProvider(detector) }()

	classifier, err := face.NewEmotionClassifier(cfg)
	if err != nil {
		return fmt.Errorf("failed to load emotion classifier: %w", err)
	}
	defer func() { _ = face.CloseProvider(classifier) }()

	svc := service.NewEmotionService(detector, classifier, logger)

	failed := classifyFiles(ctx, svc, args, cmd.OutOrStdout())
	if failed > 0 {
		return fmt.Errorf("%d of %d files produced no emotion", failed, len(args))
	}
	return nil
}

// loadConfig reads the environment and applies explicitly set flags on top
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	overrides := map[string]*string{
		"detector":     &cfg.DetectorType,
		"cascade":      &cfg.CascadePath,
		"classifier":   &cfg.ClassifierType,
		"model":        &cfg.ModelPath,
		"onnx-lib":     &cfg.ONNXRuntimeLib,
		"deepface-url": &cfg.DeepFaceURL,
	}
	for name, dst := range overrides {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
