package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/Carmen-Shannon/termcad/common"
)

// ErrFFmpegNotFound reports that the ffmpeg executable is not on PATH.
var ErrFFmpegNotFound = errors.New("ffmpeg not found. Please install ffmpeg and ensure it's in your PATH")

const (
	paletteFilter = "palettegen=stats_mode=full"
	paletteUse    = "paletteuse=dither=bayer:bayer_scale=5:diff_mode=rectangle"
)

// FFmpegAvailable reports whether ffmpeg can be found on PATH.
//
// Returns:
//   - bool: true when ffmpeg is installed
func FFmpegAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// AssembleGIF writes frames to a temporary PNG sequence and encodes them into a looping GIF with ffmpeg,
// using a two-pass palette for quality.
//
// Parameters:
//   - ctx: cancels the ffmpeg processes
//   - outputPath: the GIF file to create or overwrite
//   - frames: the frames in order
//   - fps: the playback rate
//   - options: functional options for the temporary frame writer
//
// Returns:
//   - uint64: the size of the written GIF in bytes
//   - error: common.KindDependencyMissing when ffmpeg is absent, otherwise common.KindIO
func AssembleGIF(ctx context.Context, outputPath string, frames []*image.RGBA, fps uint32, options ...FrameWriterBuilderOption) (uint64, error) {
	if !FFmpegAvailable() {
		return 0, common.Wrap(common.KindDependencyMissing, ErrFFmpegNotFound)
	}

	tempDir, err := TempFrameDir()
	if err != nil {
		return 0, err
	}
	defer os.RemoveAll(tempDir)

	if err := WriteFrames(tempDir, frames, options...); err != nil {
		return 0, err
	}
	return AssembleGIFFromDir(ctx, outputPath, tempDir, len(frames), fps)
}

// TempFrameDir creates a fresh directory for an intermediate PNG sequence. Every call returns a new
// directory, so concurrent renders never share frames. The caller removes it.
//
// Returns:
//   - string: the directory path
//   - error: a common.KindIO error if the directory cannot be created
func TempFrameDir() (string, error) {
	dir, err := os.MkdirTemp("", "termcad_*")
	if err != nil {
		return "", common.Errorf(common.KindIO, "failed to create temporary directory: %w", err)
	}
	return dir, nil
}

// AssembleGIFFromDir encodes a PNG sequence written by a FrameWriter into a looping GIF with ffmpeg.
//
// Parameters:
//   - ctx: cancels the ffmpeg processes
//   - outputPath: the GIF file to create or overwrite
//   - dir: the directory holding the sequence
//   - count: the number of frames in the sequence
//   - fps: the playback rate
//
// Returns:
//   - uint64: the size of the written GIF in bytes
//   - error: common.KindDependencyMissing when ffmpeg is absent, otherwise common.KindIO
func AssembleGIFFromDir(ctx context.Context, outputPath, dir string, count int, fps uint32) (uint64, error) {
	if !FFmpegAvailable() {
		return 0, common.Wrap(common.KindDependencyMissing, ErrFFmpegNotFound)
	}

	pattern := filepath.Join(dir, FramePattern(count))
	palette := filepath.Join(dir, "palette.png")
	rate := strconv.FormatUint(uint64(fps), 10)

	if err := runFFmpeg(ctx,
		"-y",
		"-framerate", rate,
		"-i", pattern,
		"-vf", paletteFilter,
		palette,
	); err != nil {
		return 0, common.Errorf(common.KindIO, "Palette generation failed: %w", err)
	}

	if err := runFFmpeg(ctx,
		"-y",
		"-framerate", rate,
		"-i", pattern,
		"-i", palette,
		"-lavfi", paletteUse,
		"-loop", "0",
		outputPath,
	); err != nil {
		return 0, common.Errorf(common.KindIO, "GIF creation failed: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return 0, common.Errorf(common.KindIO, "failed to read output file: %w", err)
	}
	return uint64(info.Size()), nil
}

func runFFmpeg(ctx context.Context, args ...string) error {
	common.Logger().Debug("running ffmpeg", "args", args)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}
