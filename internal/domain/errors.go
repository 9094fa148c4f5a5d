package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Is matches any AppError carrying the same code, so wrapped copies made by
// WithError still satisfy errors.Is against the predefined values.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Pre-defined errors
var (
	ErrImageNotProvided = &AppError{
		Code:       "IMAGE_NOT_PROVIDED",
		Message:    "Image data not provided",
		StatusCode: 400,
	}

	// ErrImageDecode covers both malformed base64 and undecodable image bytes.
	ErrImageDecode = &AppError{
		Code:       "IMAGE_DECODE_FAILED",
		Message:    "Failed to decode the image",
		StatusCode: 400,
	}

	ErrNoFaceDetected = &AppError{
		Code:       "NO_FACE_DETECTED",
		Message:    NoEmotionMessage,
		StatusCode: 400,
	}

	// ErrClassificationFailed shares the public message of ErrNoFaceDetected;
	// only the code (visible in logs) tells them apart.
	ErrClassificationFailed = &AppError{
		Code:       "EMOTION_CLASSIFICATION_FAILED",
		Message:    NoEmotionMessage,
		StatusCode: 400,
	}
)

// NoEmotionMessage is returned to clients whenever the pipeline yields no label.
const NoEmotionMessage = "No face detected or failed to detect emotion"
