package vision

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestDecodeBase64Image(t *testing.T) {
	black := image.NewRGBA(image.Rect(0, 0, 1, 1))
	black.Set(0, 0, color.Black)
	pngBytes := encodePNG(t, black)
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	tests := []struct {
		name       string
		payload    string
		wantErr    error
		wantFormat string
	}{
		{
			name:       "plain base64 png",
			payload:    encoded,
			wantFormat: "png",
		},
		{
			name:       "data uri prefix",
			payload:    "data:image/png;base64," + encoded,
			wantFormat: "png",
		},
		{
			name:       "wrapped with newlines",
			payload:    encoded[:8] + "\n" + encoded[8:16] + "\r\n" + encoded[16:],
			wantFormat: "png",
		},
		{
			name:    "malformed base64",
			payload: "not-base64!!",
			wantErr: ErrInvalidBase64,
		},
		{
			name:    "data uri without base64 marker",
			payload: "data:image/png," + encoded,
			wantErr: ErrInvalidBase64,
		},
		{
			name:    "valid base64 but not an image",
			payload: base64.StdEncoding.EncodeToString([]byte("hello, this is plain text")),
			wantErr: ErrUnsupportedImage,
		},
		{
			name:    "empty payload",
			payload: "",
			wantErr: ErrUnsupportedImage,
		},
		{
			name:    "truncated png",
			payload: base64.StdEncoding.EncodeToString(pngBytes[:len(pngBytes)/2]),
			wantErr: ErrUnsupportedImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, format, err := DecodeBase64Image(tt.payload)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
		})
	}
}

func TestDecodeImage_NoBytes(t *testing.T) {
	_, _, err := DecodeImage(nil)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestToGray(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{G: 255, A: 255})
	src.Set(2, 0, color.NRGBA{B: 255, A: 255})

	gray := ToGray(src)

	require.Equal(t, image.Rect(0, 0, 3, 1), gray.Bounds())
	assert.InDelta(t, 76, int(gray.GrayAt(0, 0).Y), 1)
	assert.InDelta(t, 150, int(gray.GrayAt(1, 0).Y), 1)
	assert.InDelta(t, 29, int(gray.GrayAt(2, 0).Y), 1)
}

func TestToGray_OffsetSubImage(t *testing.T) {
	base := uniformGray(10, 10, 40)
	sub := base.SubImage(image.Rect(2, 2, 6, 6)).(*image.Gray)

	gray := ToGray(sub)

	assert.Equal(t, image.Rect(0, 0, 4, 4), gray.Bounds())
	assert.Equal(t, 4, gray.Stride)
	assert.Equal(t, uint8(40), gray.GrayAt(3, 3).Y)
}

func TestToGray_ReusesCompactGray(t *testing.T) {
	g := uniformGray(4, 4, 9)
	assert.Same(t, g, ToGray(g))
}

func TestExtractPatch(t *testing.T) {
	tests := []struct {
		name    string
		img     *image.Gray
		box     domain.BoundingBox
		want    float32
		wantErr error
	}{
		{
			name: "downscale uniform region",
			img:  uniformGray(200, 200, 128),
			box:  domain.BoundingBox{X: 20, Y: 30, Width: 128, Height: 128},
			want: 128.0 / 255.0,
		},
		{
			name: "upscale small face",
			img:  uniformGray(100, 100, 255),
			box:  domain.BoundingBox{X: 10, Y: 10, Width: 30, Height: 30},
			want: 1,
		},
		{
			name: "box clamped to image bounds",
			img:  uniformGray(50, 50, 0),
			box:  domain.BoundingBox{X: 30, Y: 30, Width: 100, Height: 100},
			want: 0,
		},
		{
			name:    "box outside image",
			img:     uniformGray(50, 50, 0),
			box:     domain.BoundingBox{X: 60, Y: 60, Width: 10, Height: 10},
			wantErr: ErrEmptyCrop,
		},
		{
			name:    "zero sized box",
			img:     uniformGray(50, 50, 0),
			box:     domain.BoundingBox{X: 5, Y: 5},
			wantErr: ErrEmptyCrop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := ExtractPatch(tt.img, tt.box)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, patch.Data, domain.PatchSize*domain.PatchSize)
			assert.Equal(t, []int64{1, 64, 64, 1}, patch.Shape())
			for i, v := range patch.Data {
				if !assert.InDelta(t, tt.want, v, 1e-6, "pixel %d", i) {
					break
				}
			}
		})
	}
}

func TestExtractPatch_KeepsLayout(t *testing.T) {
	// Left half black, right half white: the patch must keep that split.
	img := image.NewGray(image.Rect(0, 0, 128, 128))
	for y := 0; y < 128; y++ {
		for x := 64; x < 128; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	patch, err := ExtractPatch(img, domain.BoundingBox{Width: 128, Height: 128})
	require.NoError(t, err)

	assert.InDelta(t, 0, patch.At(0, 10), 1e-6)
	assert.InDelta(t, 0, patch.At(30, 40), 1e-6)
	assert.InDelta(t, 1, patch.At(34, 40), 1e-6)
	assert.InDelta(t, 1, patch.At(63, 63), 1e-6)
}

func TestPatchImage_RoundTrip(t *testing.T) {
	img := uniformGray(64, 64, 200)
	patch, err := ExtractPatch(img, domain.BoundingBox{Width: 64, Height: 64})
	require.NoError(t, err)

	back := PatchImage(patch)

	assert.Equal(t, image.Rect(0, 0, 64, 64), back.Bounds())
	assert.Equal(t, uint8(200), back.GrayAt(12, 40).Y)
}
