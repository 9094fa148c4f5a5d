package main

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"os"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/vision"
)

type emotionDetector interface {
	DetectEmotion(ctx context.Context, img image.Image) (domain.Emotion, error)
}

// lineResult is one output line
type lineResult struct {
	File    string `json:"file"`
	Emotion string `json:"emotion,omitempty"`
	Error   string `json:"error,omitempty"`
}

// classifyFiles writes one JSON line per file and returns how many failed
func classifyFiles(ctx context.Context, svc emotionDetector, files []string, w io.Writer) int {
	enc := json.NewEncoder(w)
	failed := 0

	for _, file := range files {
		res := lineResult{File: file}

		emotion, err := classifyFile(ctx, svc, file)
		if err != nil {
			failed++
			res.Error = publicMessage(err)
		} else {
			res.Emotion = string(emotion)
		}

		_ = enc.Encode(res)
	}
	return failed
}

func classifyFile(ctx context.Context, svc emotionDetector, file string) (domain.Emotion, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	img, _, err := vision.DecodeImage(raw)
	if err != nil {
		return "", domain.ErrImageDecode.WithError(err)
	}

	return svc.DetectEmotion(ctx, img)
}

// publicMessage mirrors what the HTTP API would answer for err
func publicMessage(err error) string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
