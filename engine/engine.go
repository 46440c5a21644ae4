package engine

import (
	"context"
	"image"
	"os"
	"time"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/output"
	"github.com/Carmen-Shannon/termcad/engine/profiler"
	"github.com/Carmen-Shannon/termcad/engine/renderer"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"golang.org/x/sync/errgroup"
)

// OutputFormat selects what Render writes.
type OutputFormat int

const (
	// FormatGIF assembles the frames into a looping GIF.
	FormatGIF OutputFormat = iota

	// FormatFrames writes the frames as a numbered PNG sequence into a directory.
	FormatFrames
)

func (f OutputFormat) String() string {
	switch f {
	case FormatFrames:
		return "frames"
	default:
		return "gif"
	}
}

// Result describes a finished render.
type Result struct {
	Output    string
	Format    OutputFormat
	Frames    uint32
	SizeBytes uint64
	Elapsed   time.Duration
}

// indexedFrame carries a rendered frame from the render goroutine to the writer goroutine.
type indexedFrame struct {
	index uint32
	img   *image.RGBA
}

// engine implements the Engine interface.
// Coordinates the render goroutine, which owns the GPU, and the output goroutine.
type engine struct {
	profiler         *profiler.Profiler
	profilingEnabled bool

	progress common.ProgressFunc

	format      OutputFormat
	nativeGIF   bool
	supersample uint32
	workers     int
	queueDepth  int

	rendererOptions []renderer.RendererBuilderOption
}

// Engine is the main entry point for rendering a scene to disk.
// It validates the scene, renders every frame in order on a dedicated goroutine, and hands frames to
// the output stage as they complete.
type Engine interface {
	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetProgressCallback registers the function that receives progress events.
	//
	// Parameters:
	//   - callback: the observer, or nil to stop reporting
	SetProgressCallback(callback common.ProgressFunc)

	// Render validates sc, renders all of its frames and writes them to outputPath.
	//
	// Progress is reported as {rendering, 0, total}, then {rendering, i+1, total} after each frame, then
	// {assembling} for GIF output, then {complete}.
	//
	// Parameters:
	//   - ctx: cancels rendering between frames and any running ffmpeg process
	//   - sc: the scene to render
	//   - outputPath: the GIF file or the frame directory
	//
	// Returns:
	//   - Result: what was written
	//   - error: an error tagged with a common.Kind
	Render(ctx context.Context, sc *scene.Scene, outputPath string) (Result, error)
}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (format, profiling, workers, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		format:      FormatGIF,
		supersample: 1,
		workers:     profiler.RecommendedWorkers(profiler.Host{CPUCount: numCPU()}),
		queueDepth:  4,
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetProgressCallback(callback common.ProgressFunc) {
	e.progress = callback
}

func (e *engine) Render(ctx context.Context, sc *scene.Scene, outputPath string) (Result, error) {
	start := time.Now()
	if err := scene.Validate(sc); err != nil {
		return Result{}, common.Wrap(common.KindInvalidScene, err)
	}

	total := sc.TotalFrames()
	res := Result{Output: outputPath, Format: e.format, Frames: total}
	if e.profilingEnabled {
		e.profiler = profiler.NewProfiler()
	}

	// frames is only filled for the native GIF encoder; every other path streams to disk.
	var frames []*image.RGBA
	var writer output.FrameWriter
	switch {
	case e.format == FormatFrames:
		w, err := output.NewFrameWriter(outputPath, int(total), output.WithWorkers(e.workers))
		if err != nil {
			return Result{}, err
		}
		writer = w
	case !e.nativeGIF:
		if !output.FFmpegAvailable() {
			return Result{}, common.Wrap(common.KindDependencyMissing, output.ErrFFmpegNotFound)
		}
		tempDir, err := output.TempFrameDir()
		if err != nil {
			return Result{}, err
		}
		defer os.RemoveAll(tempDir)
		w, err := output.NewFrameWriter(tempDir, int(total), output.WithWorkers(e.workers))
		if err != nil {
			return Result{}, err
		}
		writer = w
	default:
		frames = make([]*image.RGBA, total)
	}

	e.progress.Emit(common.ProgressEvent{Status: common.StatusRendering, Frame: 0, Total: total})

	queue := make(chan indexedFrame, e.queueDepth)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		return e.produce(gctx, sc, queue)
	})

	g.Go(func() error {
		for f := range queue {
			if writer != nil {
				if err := writer.Write(int(f.index), f.img); err != nil {
					return err
				}
				continue
			}
			frames[f.index] = f.img
		}
		return nil
	})

	err := g.Wait()
	if writer != nil {
		if closeErr := writer.Close(); err == nil {
			err = closeErr
		}
	}
	if err != nil {
		return Result{}, err
	}

	if e.format == FormatGIF {
		e.progress.Emit(common.ProgressEvent{Status: common.StatusAssembling})
		var size uint64
		if e.nativeGIF {
			size, err = output.EncodeGIF(outputPath, frames, sc.FPS)
		} else {
			size, err = output.AssembleGIFFromDir(ctx, outputPath, writer.Dir(), int(total), sc.FPS)
		}
		if err != nil {
			return Result{}, err
		}
		res.SizeBytes = size
	}

	res.Elapsed = time.Since(start)
	if e.profiler != nil {
		e.profiler.Summary().Log(common.Logger())
	}
	e.progress.Emit(common.ProgressEvent{
		Status:    common.StatusComplete,
		Output:    res.Output,
		Frames:    res.Frames,
		SizeBytes: res.SizeBytes,
	})
	return res, nil
}

// produce creates the renderer on the calling goroutine, which the GPU backend locks to its OS thread,
// and streams every frame into queue in order.
func (e *engine) produce(ctx context.Context, sc *scene.Scene, queue chan<- indexedFrame) error {
	opts := append([]renderer.RendererBuilderOption{renderer.WithSupersample(e.supersample)}, e.rendererOptions...)
	r, err := renderer.NewRenderer(sc, opts...)
	if err != nil {
		return err
	}
	defer r.Release()
	common.Logger().Info("rendering",
		"adapter", r.AdapterName(),
		"frames", r.TotalFrames(),
		"width", r.Width(),
		"height", r.Height(),
	)

	width, height := int(sc.Canvas.Width), int(sc.Canvas.Height)
	return r.Stream(ctx, e.progress, func(frame uint32, img *image.RGBA) error {
		if e.supersample > 1 {
			img = output.Downscale(img, width, height)
		}
		if e.profiler != nil {
			e.profiler.Tick()
		}
		select {
		case queue <- indexedFrame{index: frame, img: img}:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}
