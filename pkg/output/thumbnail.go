package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail returns img scaled down to width pixels, keeping the aspect ratio.
// A width <= 0 or not smaller than the source returns img unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}
	// Height 0 lets resize preserve the aspect ratio
	return resize.Resize(uint(width), 0, img, resize.Lanczos3)
}
