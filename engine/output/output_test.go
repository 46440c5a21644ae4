package output

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func testFrames(n int) []*image.RGBA {
	frames := make([]*image.RGBA, n)
	for i := range frames {
		frames[i] = solid(8, 6, color.RGBA{R: uint8(i * 20), G: 255, B: 65, A: 255})
	}
	return frames
}

func TestFrameFileName(t *testing.T) {
	cases := []struct {
		index, count int
		want         string
	}{
		{0, 1, "frame_0.png"},
		{3, 10, "frame_3.png"},
		{3, 11, "frame_03.png"},
		{59, 60, "frame_59.png"},
		{7, 100, "frame_07.png"},
		{7, 101, "frame_007.png"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FrameFileName(tc.index, tc.count), "index %d of %d", tc.index, tc.count)
	}
	assert.Equal(t, "frame_%02d.png", FramePattern(60))
}

func TestWriteFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "frames")
	frames := testFrames(12)

	require.NoError(t, WriteFrames(dir, frames, WithWorkers(3)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 12)

	f, err := os.Open(filepath.Join(dir, "frame_05.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, frames[5].Bounds(), img.Bounds())
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(100)*0x101, r)
}

func TestWriteFramesIntoFileFails(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	err := WriteFrames(file, testFrames(2))
	require.Error(t, err)
	assert.Equal(t, common.KindIO, common.KindOf(err))
}

func TestFrameWriterClosed(t *testing.T) {
	w, err := NewFrameWriter(t.TempDir(), 1)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Error(t, w.Write(0, testFrames(1)[0]))
}

func TestEncodeGIF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.gif")
	size, err := EncodeGIF(out, testFrames(4), 30)
	require.NoError(t, err)
	assert.Positive(t, size)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	g, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, g.Image, 4)
	assert.Equal(t, []int{3, 3, 3, 3}, g.Delay)
	assert.Equal(t, 0, g.LoopCount)
}

func TestFrameDelay(t *testing.T) {
	assert.Equal(t, 100, FrameDelay(1))
	assert.Equal(t, 4, FrameDelay(24))
	assert.Equal(t, 3, FrameDelay(30))
	assert.Equal(t, 2, FrameDelay(60))
	assert.Equal(t, 1, FrameDelay(120))
}

func TestDownscale(t *testing.T) {
	big := solid(16, 12, color.RGBA{R: 10, G: 200, B: 30, A: 255})

	small := Downscale(big, 8, 6)
	assert.Equal(t, image.Rect(0, 0, 8, 6), small.Bounds())
	assert.Equal(t, big.RGBAAt(0, 0), small.RGBAAt(4, 3))

	assert.Same(t, big, Downscale(big, 16, 12))
}

func TestTempFrameDirIsUnique(t *testing.T) {
	a, err := TempFrameDir()
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(a) })
	b, err := TempFrameDir()
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(b) })

	assert.NotEqual(t, a, b)
	assert.DirExists(t, a)
	assert.DirExists(t, b)
	assert.Contains(t, filepath.Base(a), "termcad_")
}

func TestAssembleGIF(t *testing.T) {
	if !FFmpegAvailable() {
		t.Skip("ffmpeg not installed")
	}
	out := filepath.Join(t.TempDir(), "out.gif")
	size, err := AssembleGIF(context.Background(), out, testFrames(5), 10)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(info.Size()), size)
}

func TestAssembleGIFWithoutFFmpeg(t *testing.T) {
	if FFmpegAvailable() {
		t.Skip("ffmpeg installed")
	}
	_, err := AssembleGIF(context.Background(), filepath.Join(t.TempDir(), "out.gif"), testFrames(1), 10)
	require.ErrorIs(t, err, ErrFFmpegNotFound)
	assert.Equal(t, 4, common.ExitCode(err))
}
