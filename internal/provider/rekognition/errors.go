package rekognition

import "errors"

var (
	// ErrInvalidCredentials indicates that AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")

	// ErrInvalidImage indicates that Rekognition rejected the image bytes or dimensions
	ErrInvalidImage = errors.New("image rejected by rekognition")

	// ErrThrottled indicates that the account hit a Rekognition rate limit
	ErrThrottled = errors.New("rekognition request throttled")
)
