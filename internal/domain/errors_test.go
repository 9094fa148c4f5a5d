package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "error without wrapped error",
			appErr:   ErrImageNotProvided,
			expected: "Image data not provided",
		},
		{
			name: "error with wrapped error",
			appErr: &AppError{
				Code:       "TEST_ERROR",
				Message:    "Test message",
				StatusCode: 500,
				Err:        errors.New("underlying error"),
			},
			expected: "Test message: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	appErr := &AppError{
		Code:       "TEST",
		Message:    "test",
		StatusCode: 500,
		Err:        underlying,
	}

	if got := appErr.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}

	// Test with nil error
	if got := ErrImageDecode.Unwrap(); got != nil {
		t.Errorf("Unwrap() = %v, want nil", got)
	}
}

func TestAppError_WithError(t *testing.T) {
	underlying := errors.New("session destroyed")
	newErr := ErrClassificationFailed.WithError(underlying)

	if newErr.Code != ErrClassificationFailed.Code {
		t.Errorf("Code = %v, want %v", newErr.Code, ErrClassificationFailed.Code)
	}

	if newErr.StatusCode != ErrClassificationFailed.StatusCode {
		t.Errorf("StatusCode = %v, want %v", newErr.StatusCode, ErrClassificationFailed.StatusCode)
	}

	if newErr.Err != underlying {
		t.Errorf("Err = %v, want %v", newErr.Err, underlying)
	}

	if ErrClassificationFailed.Err != nil {
		t.Error("WithError must not modify the predefined error")
	}

	// Check errors.Is still works
	if !errors.Is(newErr, underlying) {
		t.Errorf("errors.Is should return true for wrapped error")
	}
}

func TestAppError_Is(t *testing.T) {
	wrapped := fmt.Errorf("pipeline: %w", ErrNoFaceDetected.WithError(errors.New("cascade failed")))

	if !errors.Is(wrapped, ErrNoFaceDetected) {
		t.Error("copy made by WithError should match its predefined error")
	}

	if errors.Is(wrapped, ErrClassificationFailed) {
		t.Error("errors with different codes must not match")
	}
}

func TestNoEmotionErrorsSharePublicMessage(t *testing.T) {
	for _, e := range []*AppError{ErrNoFaceDetected, ErrClassificationFailed} {
		if e.Message != "No face detected or failed to detect emotion" {
			t.Errorf("%s message = %q", e.Code, e.Message)
		}
		if e.StatusCode != 400 {
			t.Errorf("%s status = %d, want 400", e.Code, e.StatusCode)
		}
	}

	if ErrNoFaceDetected.Code == ErrClassificationFailed.Code {
		t.Error("codes must differ so logs can tell the cases apart")
	}
}
