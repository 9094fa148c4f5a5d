package vision

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/saturnino-fabrica-de-software/emotion-api/internal/domain"
)

// ErrEmptyCrop is returned when a bounding box does not overlap the image.
var ErrEmptyCrop = errors.New("bounding box does not overlap image")

// ExtractPatch crops gray to box, resizes the crop to a PatchSize square with
// a box (area-averaging) filter and scales pixel values into [0, 1].
func ExtractPatch(gray *image.Gray, box domain.BoundingBox) (domain.FacePatch, error) {
	rect := box.Rect().Intersect(gray.Bounds())
	if rect.Empty() {
		return domain.FacePatch{}, fmt.Errorf("%w: box %+v, image %v", ErrEmptyCrop, box, gray.Bounds())
	}

	crop := imaging.Crop(gray, rect)
	resized := imaging.Resize(crop, domain.PatchSize, domain.PatchSize, imaging.Box)

	data := make([]float32, domain.PatchSize*domain.PatchSize)
	for y := 0; y < domain.PatchSize; y++ {
		row := resized.Pix[y*resized.Stride:]
		for x := 0; x < domain.PatchSize; x++ {
			data[y*domain.PatchSize+x] = float32(row[x*4]) / 255.0
		}
	}

	return domain.FacePatch{Data: data}, nil
}

// PatchImage renders a patch back to an 8-bit grayscale image. Remote
// classifiers that accept encoded images use it.
func PatchImage(p domain.FacePatch) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, domain.PatchSize, domain.PatchSize))
	for i, v := range p.Data {
		switch {
		case v <= 0:
			img.Pix[i] = 0
		case v >= 1:
			img.Pix[i] = 255
		default:
			img.Pix[i] = uint8(v*255 + 0.5)
		}
	}
	return img
}
