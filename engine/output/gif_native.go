package output

import (
	"image"
	"image/color/palette"
	"image/gif"
	"os"

	"github.com/Carmen-Shannon/termcad/common"
	"golang.org/x/image/draw"
)

// EncodeGIF encodes frames into a looping GIF in-process, without ffmpeg. Every frame is dithered onto
// the 216-color web-safe palette with Floyd-Steinberg error diffusion.
//
// Parameters:
//   - outputPath: the GIF file to create or overwrite
//   - frames: the frames in order
//   - fps: the playback rate; frame delays are rounded to hundredths of a second
//
// Returns:
//   - uint64: the size of the written GIF in bytes
//   - error: a common.KindIO error if the file cannot be written
func EncodeGIF(outputPath string, frames []*image.RGBA, fps uint32) (uint64, error) {
	anim := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: 0,
	}
	delay := FrameDelay(fps)
	for i, f := range frames {
		anim.Image[i] = Quantize(f)
		anim.Delay[i] = delay
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return 0, common.Errorf(common.KindIO, "failed to create %s: %w", outputPath, err)
	}
	if err := gif.EncodeAll(out, anim); err != nil {
		out.Close()
		return 0, common.Errorf(common.KindIO, "failed to encode %s: %w", outputPath, err)
	}
	if err := out.Close(); err != nil {
		return 0, common.Errorf(common.KindIO, "failed to close %s: %w", outputPath, err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return 0, common.Errorf(common.KindIO, "failed to read output file: %w", err)
	}
	return uint64(info.Size()), nil
}

// FrameDelay converts a frame rate into a GIF frame delay in hundredths of a second, at least 1.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - int: the delay
func FrameDelay(fps uint32) int {
	if fps == 0 {
		return 10
	}
	return max(int((100+fps/2)/fps), 1)
}

// Quantize dithers img onto the web-safe palette.
//
// Parameters:
//   - img: the source frame
//
// Returns:
//   - *image.Paletted: the paletted frame with the same bounds
func Quantize(img image.Image) *image.Paletted {
	p := image.NewPaletted(img.Bounds(), palette.WebSafe)
	draw.FloydSteinberg.Draw(p, img.Bounds(), img, img.Bounds().Min)
	return p
}
