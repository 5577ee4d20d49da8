package imaging

import (
	"image"

	"github.com/nfnt/resize"
)

// fitWithin scales img down to fit inside maxWidth x maxHeight while
// preserving aspect ratio. Images already inside the box are returned as-is;
// variants never upscale.
func fitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() <= maxWidth && bounds.Dy() <= maxHeight {
		return img
	}
	return resize.Thumbnail(uint(maxWidth), uint(maxHeight), img, resize.Lanczos3)
}

// FitDimensions reports the dimensions fitWithin would produce for a source
// of width x height, without decoding anything.
func FitDimensions(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	// Match resize.Thumbnail: scale by the tighter axis.
	scaleW := float64(maxWidth) / float64(width)
	scaleH := float64(maxHeight) / float64(height)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	outW := int(float64(width)*scale + 0.5)
	outH := int(float64(height)*scale + 0.5)
	if outW < 1 {
		outW = 1
	}
	if outH < 1 {
		outH = 1
	}
	return outW, outH
}
