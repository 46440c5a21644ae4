package engine

import (
	"runtime"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/renderer"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProgress registers the progress observer.
//
// Parameters:
//   - callback: receives every progress event; may be nil
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProgress(callback common.ProgressFunc) EngineBuilderOption {
	return func(e *engine) {
		e.progress = callback
	}
}

// WithFormat selects GIF (default) or PNG sequence output.
//
// Parameters:
//   - format: the output format
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFormat(format OutputFormat) EngineBuilderOption {
	return func(e *engine) {
		e.format = format
	}
}

// WithNativeGIF encodes GIFs in-process instead of with ffmpeg.
//
// Parameters:
//   - native: true to skip ffmpeg
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithNativeGIF(native bool) EngineBuilderOption {
	return func(e *engine) {
		e.nativeGIF = native
	}
}

// WithSupersample renders at factor times the canvas size and downscales each frame before output.
// Values below 1 are treated as 1.
//
// Parameters:
//   - factor: the per-axis supersampling factor
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSupersample(factor uint32) EngineBuilderOption {
	return func(e *engine) {
		e.supersample = max(factor, 1)
	}
}

// WithWorkers sets the number of concurrent PNG encoders. Values below 1 keep the default of NumCPU-1.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// WithQueueDepth sets how many rendered frames may wait for the output stage before rendering pauses.
//
// Parameters:
//   - n: the queue capacity; values below 1 are treated as 1
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithQueueDepth(n int) EngineBuilderOption {
	return func(e *engine) {
		e.queueDepth = max(n, 1)
	}
}

// WithRendererOptions forwards options to every renderer the engine creates.
//
// Parameters:
//   - options: the renderer options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRendererOptions(options ...renderer.RendererBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.rendererOptions = append(e.rendererOptions, options...)
	}
}

func numCPU() int {
	return runtime.NumCPU()
}
