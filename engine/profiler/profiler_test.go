package profiler

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickLogsAfterInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(
		WithInterval(time.Nanosecond),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	time.Sleep(time.Millisecond)

	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), "fps=")
	assert.Contains(t, buf.String(), "heap=")
}

func TestTickWaitsForInterval(t *testing.T) {
	p := NewProfiler(WithInterval(time.Hour))
	for i := 0; i < 5; i++ {
		assert.False(t, p.Tick())
	}
	s := p.Summary()
	assert.Equal(t, 5, s.Frames)
	assert.Positive(t, s.FramesPerSec)
	assert.Positive(t, uint64(s.PeakHeap))
}

func TestHostInfo(t *testing.T) {
	h := HostInfo(context.Background())
	assert.NotEmpty(t, h.OS)
	assert.NotEmpty(t, h.Arch)
	assert.Positive(t, h.CPUCount)
	assert.GreaterOrEqual(t, RecommendedWorkers(h), 1)
}

func TestRecommendedWorkers(t *testing.T) {
	assert.Equal(t, 1, RecommendedWorkers(Host{CPUCount: 1}))
	assert.Equal(t, 7, RecommendedWorkers(Host{CPUCount: 8}))
}
