package domain

import "fmt"

// Emotion is one of the labels the classifier can produce.
type Emotion string

const (
	EmotionAngry    Emotion = "Angry"
	EmotionDisgust  Emotion = "Disgust"
	EmotionFear     Emotion = "Fear"
	EmotionHappy    Emotion = "Happy"
	EmotionSad      Emotion = "Sad"
	EmotionSurprise Emotion = "Surprise"
	EmotionNeutral  Emotion = "Neutral"
)

// EmotionLabels maps classifier output indices to labels. The order must match
// the output layer of the loaded model exactly.
var EmotionLabels = [...]Emotion{
	EmotionAngry,
	EmotionDisgust,
	EmotionFear,
	EmotionHappy,
	EmotionSad,
	EmotionSurprise,
	EmotionNeutral,
}

// NumEmotions is the length of every score vector.
const NumEmotions = len(EmotionLabels)

// ArgMax returns the index of the highest score. Ties resolve to the lowest
// index. It returns -1 for an empty slice.
func ArgMax(scores []float32) int {
	if len(scores) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

// LabelFor picks the label of the highest score.
func LabelFor(scores []float32) (Emotion, error) {
	if len(scores) != NumEmotions {
		return "", fmt.Errorf("classifier returned %d scores, want %d", len(scores), NumEmotions)
	}
	return EmotionLabels[ArgMax(scores)], nil
}

// IsValid reports whether e belongs to the label set.
func (e Emotion) IsValid() bool {
	for _, l := range EmotionLabels {
		if l == e {
			return true
		}
	}
	return false
}
