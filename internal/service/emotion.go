package service

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/vision"
)

// Result is the outcome of one successful pipeline run.
type Result struct {
	Emotion domain.Emotion
	Face    domain.BoundingBox
	Scores  []float32
}

// EmotionService holds the loaded models. It is built once at startup and
// is safe for concurrent use as long as its providers are.
type EmotionService struct {
	detector   provider.FaceDetector
	classifier provider.EmotionClassifier
	params     provider.DetectionParams
	logger     *slog.Logger
}

func NewEmotionService(
	detector provider.FaceDetector,
	classifier provider.EmotionClassifier,
	logger *slog.Logger,
) *EmotionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmotionService{
		detector:   detector,
		classifier: classifier,
		params:     provider.DefaultDetectionParams(),
		logger:     logger,
	}
}

func (s *EmotionService) Detector() string   { return s.detector.Name() }
func (s *EmotionService) Classifier() string { return s.classifier.Name() }

// DetectEmotion returns the dominant emotion of the first face found in img.
// Every pipeline failure is reported as ErrNoFaceDetected or
// ErrClassificationFailed.
func (s *EmotionService) DetectEmotion(ctx context.Context, img image.Image) (domain.Emotion, error) {
	res, err := s.Analyze(ctx, img)
	if err != nil {
		return "", err
	}
	return res.Emotion, nil
}

// Analyze runs the full pipeline and keeps the intermediate face box and scores.
func (s *EmotionService) Analyze(ctx context.Context, img image.Image) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "emotion pipeline panicked",
				slog.Any("panic", r),
			)
			res = nil
			err = domain.ErrClassificationFailed.WithError(fmt.Errorf("panic: %v", r))
		}
	}()

	gray := vision.ToGray(img)

	boxes, err := s.detector.DetectFaces(ctx, gray, s.params)
	if err != nil {
		s.logger.WarnContext(ctx, "face detection failed",
			slog.String("detector", s.detector.Name()),
			slog.String("error", err.Error()),
		)
		return nil, domain.ErrNoFaceDetected.WithError(err)
	}
	if len(boxes) == 0 {
		s.logger.InfoContext(ctx, "no face detected",
			slog.String("detector", s.detector.Name()),
			slog.Int("width", gray.Rect.Dx()),
			slog.Int("height", gray.Rect.Dy()),
		)
		return nil, domain.ErrNoFaceDetected
	}

	face := boxes[0]
	s.logger.DebugContext(ctx, "face detected",
		slog.Int("faces", len(boxes)),
		slog.Any("box", face),
	)

	patch, err := vision.ExtractPatch(gray, face)
	if err != nil {
		s.logger.WarnContext(ctx, "face patch extraction failed",
			slog.Any("box", face),
			slog.String("error", err.Error()),
		)
		return nil, domain.ErrClassificationFailed.WithError(err)
	}

	scores, err := s.classifier.Classify(ctx, patch)
	if err != nil {
		s.logger.WarnContext(ctx, "emotion classification failed",
			slog.String("classifier", s.classifier.Name()),
			slog.String("error", err.Error()),
		)
		return nil, domain.ErrClassificationFailed.WithError(err)
	}

	emotion, err := domain.LabelFor(scores)
	if err != nil {
		s.logger.WarnContext(ctx, "unexpected classifier output",
			slog.String("classifier", s.classifier.Name()),
			slog.String("error", err.Error()),
		)
		return nil, domain.ErrClassificationFailed.WithError(err)
	}

	return &Result{Emotion: emotion, Face: face, Scores: scores}, nil
}
