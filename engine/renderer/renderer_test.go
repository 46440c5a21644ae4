package renderer

import (
	"context"
	"image"
	"testing"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScene() *scene.Scene {
	sc := scene.New()
	sc.Canvas = scene.Canvas{Width: 64, Height: 48, Background: "#102030"}
	sc.Duration = 0.1
	sc.FPS = 30
	sc.Add(scene.NewGrid(), scene.NewWireframe())
	return sc
}

// newTestRenderer skips the test on machines without a usable GPU adapter.
func newTestRenderer(t *testing.T, sc *scene.Scene, options ...RendererBuilderOption) Renderer {
	t.Helper()
	r, err := NewRenderer(sc, options...)
	if IsGPUUnavailable(err) {
		t.Skipf("no GPU adapter: %v", err)
	}
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func TestRenderAllFrameCountAndSize(t *testing.T) {
	sc := testScene()
	r := newTestRenderer(t, sc)

	var events []common.ProgressEvent
	frames, err := r.RenderAll(context.Background(), func(ev common.ProgressEvent) {
		events = append(events, ev)
	})
	require.NoError(t, err)

	require.Len(t, frames, int(sc.TotalFrames()))
	for _, f := range frames {
		assert.Equal(t, image.Rect(0, 0, 64, 48), f.Bounds())
		assert.Len(t, f.Pix, 64*48*4)
	}
	require.Len(t, events, len(frames))
	for i, ev := range events {
		assert.Equal(t, common.StatusRendering, ev.Status)
		assert.Equal(t, uint32(i+1), ev.Frame)
		assert.Equal(t, sc.TotalFrames(), ev.Total)
	}
}

func TestRenderFrameIsDeterministic(t *testing.T) {
	r := newTestRenderer(t, testScene())

	a, err := r.RenderFrame(1)
	require.NoError(t, err)
	b, err := r.RenderFrame(1)
	require.NoError(t, err)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestEmptySceneIsBackground(t *testing.T) {
	sc := scene.New()
	sc.Canvas = scene.Canvas{Width: 8, Height: 8, Background: "#ff0000"}
	sc.Duration = 1
	sc.FPS = 1
	r := newTestRenderer(t, sc)

	img, err := r.RenderFrame(0)
	require.NoError(t, err)
	for i := 0; i < len(img.Pix); i += 4 {
		assert.Equal(t, []byte{255, 0, 0, 255}, img.Pix[i:i+4])
	}
}

func TestRenderAllHonorsCancellation(t *testing.T) {
	r := newTestRenderer(t, testScene())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.RenderAll(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSupersampleScalesFrames(t *testing.T) {
	r := newTestRenderer(t, testScene(), WithSupersample(2))

	assert.Equal(t, uint32(128), r.Width())
	assert.Equal(t, uint32(96), r.Height())
	img, err := r.RenderFrame(0)
	require.NoError(t, err)
	assert.Equal(t, 128*4, img.Stride)
}

func TestPostProcessedFrameDiffers(t *testing.T) {
	plain := newTestRenderer(t, testScene())
	sc := testScene()
	sc.Post.Vignette = 1
	sc.Post.CRTCurvature = 0.3
	processed := newTestRenderer(t, sc)

	a, err := plain.RenderFrame(0)
	require.NoError(t, err)
	b, err := processed.RenderFrame(0)
	require.NoError(t, err)
	assert.NotEqual(t, a.Pix, b.Pix)
}

// countThreadPins replaces the OS thread hooks for the duration of the test.
func countThreadPins(t *testing.T) (locks, unlocks *int) {
	t.Helper()
	locks, unlocks = new(int), new(int)
	prevLock, prevUnlock := lockOSThread, unlockOSThread
	lockOSThread = func() { *locks++ }
	unlockOSThread = func() { *unlocks++ }
	t.Cleanup(func() {
		lockOSThread, unlockOSThread = prevLock, prevUnlock
	})
	return locks, unlocks
}

func TestProbeAdapterUnpinsThread(t *testing.T) {
	locks, unlocks := countThreadPins(t)

	for range 2 {
		_, err := ProbeAdapter(false)
		if err != nil && !IsGPUUnavailable(err) {
			require.NoError(t, err)
		}
	}
	assert.Equal(t, 2, *locks)
	assert.Equal(t, *locks, *unlocks)
}

func TestRendererReleaseUnpinsThread(t *testing.T) {
	locks, unlocks := countThreadPins(t)

	r, err := NewRenderer(testScene())
	if err == nil {
		r.Release()
		r.Release()
	}
	assert.Equal(t, 1, *locks)
	assert.Equal(t, 1, *unlocks)
}

func TestUnknownBackendType(t *testing.T) {
	locks, _ := countThreadPins(t)

	_, err := NewRenderer(testScene(), WithBackendType(RendererBackendType(99)))
	require.Error(t, err)
	assert.True(t, IsGPUUnavailable(err))
	assert.Contains(t, err.Error(), "unknown backend type 99")
	assert.Zero(t, *locks)

	var ce *common.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, common.KindRender, ce.Kind)
}
