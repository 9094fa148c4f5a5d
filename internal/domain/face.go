package domain

import "image"

// PatchSize is the side length of the square face patch fed to the classifier.
const PatchSize = 64

// BoundingBox is a face rectangle in pixel coordinates of the source image.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the box to an image.Rectangle.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// FacePatch is a normalized grayscale face crop laid out as a
// 1 x PatchSize x PatchSize x 1 tensor (NHWC), values in [0, 1].
type FacePatch struct {
	Data []float32
}

// Shape returns the tensor shape of the patch.
func (FacePatch) Shape() []int64 {
	return []int64{1, PatchSize, PatchSize, 1}
}

// At returns the pixel value at column x, row y.
func (p FacePatch) At(x, y int) float32 {
	return p.Data[y*PatchSize+x]
}
