package output

import (
	"image"

	"golang.org/x/image/draw"
)

// Downscale resamples img to width x height with a Catmull-Rom filter. Images already at that size are
// returned unchanged.
//
// Parameters:
//   - img: the supersampled frame
//   - width: target width in pixels
//   - height: target height in pixels
//
// Returns:
//   - *image.RGBA: the resized frame
func Downscale(img *image.RGBA, width, height int) *image.RGBA {
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
