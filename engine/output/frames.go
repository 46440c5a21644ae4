// Package output writes rendered frames to disk as PNG sequences and assembles them into GIFs.
package output

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/termcad/common"
)

// FrameDigits returns the zero-padded width of frame numbers for a sequence of count frames:
// the number of decimal digits of count-1, at least 1.
//
// Parameters:
//   - count: the number of frames in the sequence
//
// Returns:
//   - int: the digit width
func FrameDigits(count int) int {
	if count <= 1 {
		return 1
	}
	return len(strconv.Itoa(count - 1))
}

// FrameFileName returns the file name of frame index in a sequence of count frames, e.g. frame_07.png.
//
// Parameters:
//   - index: the frame index
//   - count: the number of frames in the sequence
//
// Returns:
//   - string: the file name
func FrameFileName(index, count int) string {
	return fmt.Sprintf("frame_%0*d.png", FrameDigits(count), index)
}

// FramePattern returns the printf-style pattern matching every FrameFileName of a count-frame sequence.
//
// Parameters:
//   - count: the number of frames in the sequence
//
// Returns:
//   - string: the pattern, e.g. frame_%02d.png
func FramePattern(count int) string {
	return fmt.Sprintf("frame_%%0%dd.png", FrameDigits(count))
}

type frameWriter struct {
	dir   string
	count int

	workers int
	pool    worker.DynamicWorkerPool
	wg      sync.WaitGroup

	mu     sync.Mutex
	err    error
	closed bool
}

// FrameWriter encodes frames to PNG files in a directory on a pool of workers.
// Frames may be submitted in any order; each lands in the file named for its index.
type FrameWriter interface {
	// Dir returns the directory frames are written to.
	//
	// Returns:
	//   - string: the output directory
	Dir() string

	// Write queues img for encoding as frame index. The image must not be modified afterwards.
	//
	// Parameters:
	//   - index: the frame index
	//   - img: the frame
	//
	// Returns:
	//   - error: the first error of an earlier write, or an error if the writer is closed
	Write(index int, img image.Image) error

	// Close waits for every queued frame to be written.
	//
	// Returns:
	//   - error: the first write error, tagged common.KindIO
	Close() error
}

var _ FrameWriter = &frameWriter{}

// FrameWriterBuilderOption is a functional option applied to a frame writer during construction via NewFrameWriter.
type FrameWriterBuilderOption func(*frameWriter)

// WithWorkers sets the number of concurrent PNG encoders. Defaults to NumCPU-1, at least 1.
//
// Parameters:
//   - n: the worker count; values below 1 are treated as 1
//
// Returns:
//   - FrameWriterBuilderOption: a function that applies the worker option to a frame writer
func WithWorkers(n int) FrameWriterBuilderOption {
	return func(w *frameWriter) {
		w.workers = max(n, 1)
	}
}

// NewFrameWriter creates dir and returns a writer for a sequence of count frames.
//
// Parameters:
//   - dir: the output directory, created with parents when missing
//   - count: the number of frames in the sequence, used for file name padding
//   - options: functional options to configure the writer
//
// Returns:
//   - FrameWriter: the writer
//   - error: a common.KindIO error if the directory cannot be created
func NewFrameWriter(dir string, count int, options ...FrameWriterBuilderOption) (FrameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, common.Errorf(common.KindIO, "failed to create directory %s: %w", dir, err)
	}
	w := &frameWriter{
		dir:     dir,
		count:   count,
		workers: max(runtime.NumCPU()-1, 1),
	}
	for _, option := range options {
		option(w)
	}
	w.pool = worker.NewDynamicWorkerPool(w.workers, max(count, 1), 1*time.Second)
	return w, nil
}

func (w *frameWriter) Dir() string {
	return w.dir
}

func (w *frameWriter) Write(index int, img image.Image) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return common.Errorf(common.KindIO, "frame writer for %s is closed", w.dir)
	}
	if w.err != nil {
		err := w.err
		w.mu.Unlock()
		return err
	}
	w.mu.Unlock()

	path := filepath.Join(w.dir, FrameFileName(index, w.count))
	w.wg.Add(1)
	w.pool.SubmitTask(worker.Task{
		ID: index,
		Do: func() (any, error) {
			defer w.wg.Done()
			if err := writePNG(path, img); err != nil {
				w.fail(common.Errorf(common.KindIO, "failed to write frame %s: %w", path, err))
			}
			return nil, nil
		},
	})
	return nil
}

func (w *frameWriter) fail(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}

func (w *frameWriter) Close() error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	w.wg.Wait()

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// WriteFrames writes frames to dir as a numbered PNG sequence.
//
// Parameters:
//   - dir: the output directory, created when missing
//   - frames: the frames in order
//   - options: functional options to configure the underlying writer
//
// Returns:
//   - error: a common.KindIO error if the directory or any frame cannot be written
func WriteFrames(dir string, frames []*image.RGBA, options ...FrameWriterBuilderOption) error {
	w, err := NewFrameWriter(dir, len(frames), options...)
	if err != nil {
		return err
	}
	for i, f := range frames {
		if err := w.Write(i, f); err != nil {
			break
		}
	}
	return w.Close()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
