package renderer

import "image"

// copyRowAlignment is the required row pitch alignment of texture-to-buffer copies.
const copyRowAlignment uint32 = 256

// PaddedBytesPerRow returns the row pitch of a width-pixel RGBA8 row rounded up to the copy alignment.
//
// Parameters:
//   - width: the row width in pixels
//
// Returns:
//   - uint32: the padded row size in bytes
func PaddedBytesPerRow(width uint32) uint32 {
	return (width*4 + copyRowAlignment - 1) / copyRowAlignment * copyRowAlignment
}

// UnpadRows copies a padded readback into a contiguous RGBA image, dropping the padding at the end of each row.
//
// Parameters:
//   - data: the mapped buffer contents, at least bytesPerRow*height bytes
//   - width: image width in pixels
//   - height: image height in pixels
//   - bytesPerRow: the padded row pitch of data
//
// Returns:
//   - *image.RGBA: the image with Stride width*4
func UnpadRows(data []byte, width, height, bytesPerRow uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	rowBytes := int(width) * 4
	for y := 0; y < int(height); y++ {
		src := data[y*int(bytesPerRow) : y*int(bytesPerRow)+rowBytes]
		copy(img.Pix[y*img.Stride:y*img.Stride+rowBytes], src)
	}
	return img
}
