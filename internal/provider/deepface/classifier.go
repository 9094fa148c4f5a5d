package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/provider"
	"github.com/saturnino-fabrica-de-software/emotion-api/internal/vision"
)

// Classifier implements provider.EmotionClassifier using the DeepFace
// emotion model behind its /analyze endpoint
type Classifier struct {
	client *Client
}

// NewClassifier creates a new DeepFace classifier
func NewClassifier(config Config) *Classifier {
	return &Classifier{
		client: NewClient(config),
	}
}

func (c *Classifier) Name() string { return "deepface" }

// Classify sends the face patch as a PNG data URI and returns the emotion
// scores reordered into domain.EmotionLabels order, normalized to sum to 1
func (c *Classifier) Classify(ctx context.Context, patch domain.FacePatch) ([]float32, error) {
	uri, err := encodePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	resp, err := c.client.AnalyzeEmotion(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	if len(resp.Results) == 0 {
		return nil, ErrNoFaceInResponse
	}

	// The patch holds one face; use the first result
	return scoresFromEmotion(resp.Results[0].Emotion)
}

func encodePatch(patch domain.FacePatch) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, vision.PatchImage(patch)); err != nil {
		return "", fmt.Errorf("encode patch: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// scoresFromEmotion maps DeepFace's lowercase emotion keys (percentages)
// onto the label set order
func scoresFromEmotion(emotion map[string]float64) ([]float32, error) {
	scores := make([]float32, domain.NumEmotions)
	var sum float64
	for i, label := range domain.EmotionLabels {
		v, ok := emotion[strings.ToLower(string(label))]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingEmotion, label)
		}
		scores[i] = float32(v)
		sum += v
	}

	if sum > 0 {
		for i := range scores {
			scores[i] = float32(float64(scores[i]) / sum)
		}
	}
	return scores, nil
}

var _ provider.EmotionClassifier = (*Classifier)(nil)
