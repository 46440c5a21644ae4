package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/renderer"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallScene() *scene.Scene {
	sc := scene.New()
	sc.Canvas = scene.Canvas{Width: 32, Height: 24, Background: "#0a0a0a"}
	sc.Duration = 1
	sc.FPS = 4
	sc.Add(scene.NewGrid(), scene.NewWireframe(), scene.NewAxes())
	return sc
}

// render skips the test on machines without a usable GPU adapter.
func render(t *testing.T, e Engine, sc *scene.Scene, out string) Result {
	t.Helper()
	res, err := e.Render(context.Background(), sc, out)
	if renderer.IsGPUUnavailable(err) {
		t.Skipf("no GPU adapter: %v", err)
	}
	require.NoError(t, err)
	return res
}

func TestRenderRejectsInvalidScene(t *testing.T) {
	sc := smallScene()
	sc.FPS = 0

	_, err := NewEngine().Render(context.Background(), sc, filepath.Join(t.TempDir(), "out.gif"))
	require.Error(t, err)
	assert.Equal(t, common.KindInvalidScene, common.KindOf(err))
	assert.Equal(t, 1, common.ExitCode(err))
}

func TestRenderFrames(t *testing.T) {
	var events []common.ProgressEvent
	e := NewEngine(
		WithFormat(FormatFrames),
		WithWorkers(2),
		WithProgress(func(ev common.ProgressEvent) { events = append(events, ev) }),
	)
	out := filepath.Join(t.TempDir(), "frames")
	res := render(t, e, smallScene(), out)

	assert.Equal(t, uint32(4), res.Frames)
	assert.Zero(t, res.SizeBytes)
	for i := 0; i < 4; i++ {
		assert.FileExists(t, filepath.Join(out, "frame_"+string(rune('0'+i))+".png"))
	}

	require.Len(t, events, 6)
	assert.Equal(t, common.ProgressEvent{Status: common.StatusRendering, Frame: 0, Total: 4}, events[0])
	for i := 1; i <= 4; i++ {
		assert.Equal(t, uint32(i), events[i].Frame)
	}
	assert.Equal(t, common.StatusComplete, events[5].Status)
	assert.Equal(t, out, events[5].Output)
}

func TestRenderNativeGIF(t *testing.T) {
	var statuses []common.ProgressStatus
	e := NewEngine(
		WithNativeGIF(true),
		WithSupersample(2),
		WithProgress(func(ev common.ProgressEvent) { statuses = append(statuses, ev.Status) }),
	)
	out := filepath.Join(t.TempDir(), "out.gif")
	res := render(t, e, smallScene(), out)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, uint64(info.Size()), res.SizeBytes)
	assert.Contains(t, statuses, common.StatusAssembling)
	assert.Equal(t, common.StatusComplete, statuses[len(statuses)-1])
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEngine(WithFormat(FormatFrames))
	_, err := e.Render(ctx, smallScene(), filepath.Join(t.TempDir(), "frames"))
	if renderer.IsGPUUnavailable(err) {
		t.Skipf("no GPU adapter: %v", err)
	}
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputFormatString(t *testing.T) {
	assert.Equal(t, "gif", FormatGIF.String())
	assert.Equal(t, "frames", FormatFrames.String())
}
