package utils

import (
	"image"

	"github.com/nfnt/resize"
)

// FitWidth downsizes img to maxWidth keeping its aspect ratio.
// Images already narrow enough, or a zero maxWidth, are returned as is.
func FitWidth(img image.Image, maxWidth uint) image.Image {
	if maxWidth == 0 {
		return img
	}

	bounds := img.Bounds()
	if uint(bounds.Dx()) <= maxWidth {
		return img
	}

	// Resize using Lanczos3 for quality
	return resize.Resize(maxWidth, 0, img, resize.Lanczos3)
}
