package vision

import (
	"image"

	"github.com/disintegration/imaging"
)

// ToGray converts img to an 8-bit grayscale raster anchored at (0, 0) with
// stride equal to its width. Luma uses the ITU-R 601 weights.
func ToGray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) && g.Stride == g.Rect.Dx() {
		return g
	}

	nrgba := imaging.Grayscale(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()
	gray := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dst := gray.Pix[y*gray.Stride : y*gray.Stride+w]
		for x := range dst {
			dst[x] = src[x*4]
		}
	}
	return gray
}
