// Package profiler reports render throughput and memory statistics, and describes the host machine.
package profiler

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/c2h5oh/datasize"
)

// Profiler tracks frame rate and memory statistics while frames render.
// Logs stats at a configurable interval and accumulates totals for a final summary.
type Profiler struct {
	logger         *slog.Logger
	frameCount     int
	totalFrames    int
	start          time.Time
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	peakHeap       uint64
}

// Summary holds the totals of a profiled render.
type Summary struct {
	Frames       int
	Elapsed      time.Duration
	FramesPerSec float64
	PeakHeap     datasize.ByteSize
	NumGC        uint32
}

// ProfilerBuilderOption is a functional option applied to a Profiler during construction via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often Tick logs statistics. Defaults to 1 second.
//
// Parameters:
//   - d: the logging interval
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval option to a profiler
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithLogger sets the logger statistics are written to. Defaults to common.Logger().
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logger option to a profiler
func WithLogger(l *slog.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.logger = l
	}
}

// NewProfiler creates a new Profiler. The clock starts immediately.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	now := time.Now()
	p := &Profiler{
		logger:         common.Logger(),
		start:          now,
		lastTime:       now,
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick should be called once per rendered frame.
// Logs performance statistics when the update interval has elapsed: frames/sec, heap usage,
// allocation rate, GC count and pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	p.totalFrames++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)
	p.peakHeap = max(p.peakHeap, p.memStats.HeapAlloc)

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRate := datasize.ByteSize(float64(allocDelta) / elapsed.Seconds())

	gcCount := p.memStats.NumGC
	var lastPause, maxPause time.Duration
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		lastPause = time.Duration(p.memStats.PauseNs[(gcCount-1)%256])
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPause = max(maxPause, time.Duration(p.memStats.PauseNs[i%256]))
		}
	}

	p.logger.Info("profiler",
		"fps", fps,
		"heap", datasize.ByteSize(p.memStats.HeapAlloc).HumanReadable(),
		"alloc_rate", allocRate.HumanReadable()+"/s",
		"gc", gcCount,
		"gc_last_pause", lastPause,
		"gc_max_pause", maxPause,
		"sys", datasize.ByteSize(p.memStats.Sys).HumanReadable(),
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Summary returns the totals since NewProfiler.
//
// Returns:
//   - Summary: frame count, elapsed time, mean frames/sec, peak heap and GC count
func (p *Profiler) Summary() Summary {
	runtime.ReadMemStats(&p.memStats)
	elapsed := time.Since(p.start)
	s := Summary{
		Frames:   p.totalFrames,
		Elapsed:  elapsed,
		PeakHeap: datasize.ByteSize(max(p.peakHeap, p.memStats.HeapAlloc)),
		NumGC:    p.memStats.NumGC,
	}
	if elapsed > 0 {
		s.FramesPerSec = float64(p.totalFrames) / elapsed.Seconds()
	}
	return s
}

// Log writes the summary at info level.
func (s Summary) Log(l *slog.Logger) {
	l.Info("render profile",
		"frames", s.Frames,
		"elapsed", s.Elapsed.Round(time.Millisecond),
		"fps", s.FramesPerSec,
		"peak_heap", s.PeakHeap.HumanReadable(),
		"gc", s.NumGC,
	)
}
