// Package vision turns request payloads into the grayscale rasters and face
// patches the providers consume.
package vision

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	// Registered codecs.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrInvalidBase64    = errors.New("invalid base64 payload")
	ErrUnsupportedImage = errors.New("unsupported or corrupt image encoding")
	ErrEmptyImage       = errors.New("decoded image is empty")
)

// DecodeBase64Image decodes a base64 string into an image. An optional
// "data:<mime>;base64," prefix is stripped and embedded whitespace ignored.
func DecodeBase64Image(payload string) (image.Image, string, error) {
	raw, err := DecodeBase64(payload)
	if err != nil {
		return nil, "", err
	}
	return DecodeImage(raw)
}

// DecodeBase64 decodes standard, padded base64.
func DecodeBase64(payload string) ([]byte, error) {
	s := payload
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ";base64,")
		if idx < 0 {
			return nil, fmt.Errorf("%w: data URI without base64 marker", ErrInvalidBase64)
		}
		s = s[idx+len(";base64,"):]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)

	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return raw, nil
}

// DecodeImage decodes encoded image bytes and returns the image with its
// format name.
func DecodeImage(raw []byte) (image.Image, string, error) {
	if len(raw) == 0 {
		return nil, "", fmt.Errorf("%w: no bytes", ErrUnsupportedImage)
	}
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if img == nil || img.Bounds().Empty() {
		return nil, format, ErrEmptyImage
	}
	return img, format, nil
}
