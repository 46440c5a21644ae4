package renderer

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/camera"
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/primitives"
	"github.com/Carmen-Shannon/termcad/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/termcad/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/termcad/engine/renderer/post"
	"github.com/Carmen-Shannon/termcad/engine/renderer/shader"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// LinePipelineKey is the cache key of the line rasterization pipeline.
const LinePipelineKey = "line"

// cameraBinding is the binding of the CameraUniform in group 0 of the line shader.
const cameraBinding = 0

// lineShaderSource is the line pass WGSL without the CameraUniform struct.
//
//go:embed assets/line.wgsl
var lineShaderSource string

// defaultBackground is used when the canvas background does not parse.
var defaultBackground = [4]float32{0.04, 0.04, 0.04, 1}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	supersample          uint32

	scene       *scene.Scene
	width       uint32
	height      uint32
	totalFrames uint32
	background  wgpu.Color

	camera      camera.Camera
	target      *common.RenderTarget
	post        post.PostProcessor
	readback    *wgpu.Buffer
	bytesPerRow uint32
}

// Renderer defines the interface for the headless frame renderer.
//
// A Renderer owns a GPU device, the line pipeline, an offscreen render target, the post processor and
// a readback buffer for one scene. Frames are rasterized one at a time and returned as RGBA images.
// The backend locks the OS thread of the goroutine that called NewRenderer; every method must be
// called from that goroutine.
type Renderer interface {
	// Width returns the width of rendered frames in pixels, including any supersampling.
	//
	// Returns:
	//   - uint32: the frame width
	Width() uint32

	// Height returns the height of rendered frames in pixels, including any supersampling.
	//
	// Returns:
	//   - uint32: the frame height
	Height() uint32

	// TotalFrames returns the number of frames in the scene's animation.
	//
	// Returns:
	//   - uint32: the frame count, at least 1
	TotalFrames() uint32

	// AdapterName describes the GPU adapter frames are rendered on.
	//
	// Returns:
	//   - string: the adapter description
	AdapterName() string

	// Camera returns the scene camera.
	//
	// Returns:
	//   - camera.Camera: the camera whose view-projection is uploaded each frame
	Camera() camera.Camera

	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU render pipeline of each Pipeline via the backend and caches it
	// by PipelineKey. Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an ErrShader error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// RenderFrame rasterizes a single frame and reads it back.
	//
	// Parameters:
	//   - frame: the frame index, in [0, TotalFrames)
	//
	// Returns:
	//   - *image.RGBA: the frame, Width x Height with a contiguous stride
	//   - error: an ErrBuffer or ErrCapture error on GPU failure
	RenderFrame(frame uint32) (*image.RGBA, error)

	// RenderAll renders every frame in order, reporting progress after each one.
	//
	// Parameters:
	//   - ctx: cancels rendering between frames
	//   - progress: receives {rendering, i+1, total} after frame i; may be nil
	//
	// Returns:
	//   - []*image.RGBA: TotalFrames images in frame order
	//   - error: the first render error or the context's error
	RenderAll(ctx context.Context, progress common.ProgressFunc) ([]*image.RGBA, error)

	// Stream renders every frame in order and hands each to yield before rendering the next.
	//
	// Parameters:
	//   - ctx: cancels rendering between frames
	//   - progress: receives {rendering, i+1, total} after frame i; may be nil
	//   - yield: consumes a frame; a non-nil error stops the stream and is returned
	//
	// Returns:
	//   - error: the first render or yield error, or the context's error
	Stream(ctx context.Context, progress common.ProgressFunc, yield func(frame uint32, img *image.RGBA) error) error

	// Release frees every GPU object the renderer owns, then the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a headless renderer for a validated scene.
//
// Parameters:
//   - sc: the scene to render
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: a common.KindRender error wrapping ErrGPUInit, ErrShader or ErrBuffer
func NewRenderer(sc *scene.Scene, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   BackendTypeWGPU,
		supersample:   1,
		scene:         sc,
		totalFrames:   sc.TotalFrames(),
	}
	for _, option := range options {
		option(r)
	}
	r.width = sc.Canvas.Width * r.supersample
	r.height = sc.Canvas.Height * r.supersample
	bg := scene.ColorOr(sc.Canvas.Background, defaultBackground)
	r.background = wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: float64(bg[3])}

	if err := r.init(); err != nil {
		r.Release()
		return nil, err
	}
	common.Logger().Debug("renderer ready",
		"adapter", r.AdapterName(),
		"width", r.width,
		"height", r.height,
		"frames", r.totalFrames,
		"post", r.post.Enabled(),
	)
	return r, nil
}

func (r *renderer) init() error {
	switch r.backendType {
	case BackendTypeWGPU:
		b, err := newWGPURendererBackend(r.forceFallbackAdapter)
		if err != nil {
			return renderError(ErrGPUInit, err)
		}
		r.backend = b
	default:
		return renderError(ErrGPUInit, fmt.Errorf("unknown backend type %d", r.backendType))
	}

	s, err := shader.NewShader(LinePipelineKey, camera.GPUCameraUniformSource+lineShaderSource,
		shader.WithVisibility(wgpu.ShaderStageVertex),
	)
	if err != nil {
		return renderError(ErrShader, err)
	}
	line := pipeline.NewPipeline(LinePipelineKey,
		pipeline.WithShader(s),
		pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
		pipeline.WithBlendEnabled(true),
	)
	if err := r.RegisterPipelines(line); err != nil {
		return err
	}

	r.target, err = r.backend.CreateRenderTarget(common.TextureStagingData{
		Label:  "frame",
		Width:  r.width,
		Height: r.height,
		Format: wgpu.TextureFormatRGBA8Unorm,
		Usage:  wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return renderError(ErrGPUInit, err)
	}

	r.camera = camera.FromScene(r.scene.Camera, r.scene.Canvas.Width, r.scene.Canvas.Height)
	if err := r.backend.InitBindGroup(r.camera.BindGroupProvider(), line, 0); err != nil {
		return renderError(ErrBuffer, err)
	}

	r.post, err = post.NewPostProcessor(r.backend, r.scene.Post, r.target,
		post.WithLabel("post"),
		post.WithOutputFormat(r.target.Format),
	)
	if err != nil {
		return renderError(ErrShader, err)
	}

	r.bytesPerRow = PaddedBytesPerRow(r.width)
	r.readback, err = r.backend.CreateReadbackBuffer("readback", uint64(r.bytesPerRow)*uint64(r.height))
	if err != nil {
		return renderError(ErrBuffer, err)
	}
	return nil
}

// ProbeAdapter opens a backend only to describe the adapter it would render on.
//
// Parameters:
//   - forceFallbackAdapter: request the software fallback adapter
//
// Returns:
//   - string: the adapter description
//   - error: an ErrGPUInit error when no adapter is available
func ProbeAdapter(forceFallbackAdapter bool) (string, error) {
	b, err := newWGPURendererBackend(forceFallbackAdapter)
	if err != nil {
		return "", renderError(ErrGPUInit, err)
	}
	defer b.Release()
	return b.AdapterName(), nil
}

func (r *renderer) Width() uint32 {
	return r.width
}

func (r *renderer) Height() uint32 {
	return r.height
}

func (r *renderer) TotalFrames() uint32 {
	return r.totalFrames
}

func (r *renderer) AdapterName() string {
	if r.backend == nil {
		return ""
	}
	return r.backend.AdapterName()
}

func (r *renderer) Camera() camera.Camera {
	return r.camera
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range pipelines {
		if _, exists := r.pipelineCache[p.PipelineKey()]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return renderError(ErrShader, fmt.Errorf("pipeline %s: %w", p.PipelineKey(), err))
		}
		r.pipelineCache[p.PipelineKey()] = p
	}
	return nil
}

func (r *renderer) RenderFrame(frame uint32) (*image.RGBA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx := expression.NewContext(frame, r.totalFrames)
	vertices, err := primitives.Collect(r.scene.Elements, ctx)
	if err != nil {
		return nil, common.Wrap(common.KindInvalidScene, err)
	}

	lines := r.camera.BindGroupProvider()
	if err := r.backend.UploadVertices(lines, primitives.VertexBytes(vertices), primitives.LineVertexSize); err != nil {
		return nil, renderError(ErrBuffer, err)
	}
	uniform := r.camera.Uniform(r.width, r.height)
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: lines, Binding: cameraBinding, Data: uniform.Marshal()},
	})

	if err := r.backend.BeginFrame(); err != nil {
		return nil, renderError(ErrCapture, err)
	}
	r.backend.BeginPass(r.target.View, r.background)
	r.backend.Draw(r.pipelineCache[LinePipelineKey], lines.VertexCount(), lines,
		[]bind_group_provider.BindGroupProvider{lines},
	)
	r.backend.EndPass()

	final := r.post.Process(ctx)
	r.backend.CopyTargetToBuffer(final, r.readback, r.bytesPerRow)
	if err := r.backend.EndFrame(); err != nil {
		return nil, renderError(ErrCapture, err)
	}

	data, err := r.backend.ReadBuffer(r.readback, uint64(r.bytesPerRow)*uint64(r.height))
	if err != nil {
		return nil, renderError(ErrCapture, err)
	}
	common.Logger().Debug("frame rendered", "frame", frame, "vertices", len(vertices))
	return UnpadRows(data, r.width, r.height, r.bytesPerRow), nil
}

func (r *renderer) RenderAll(ctx context.Context, progress common.ProgressFunc) ([]*image.RGBA, error) {
	frames := make([]*image.RGBA, 0, r.totalFrames)
	err := r.Stream(ctx, progress, func(_ uint32, img *image.RGBA) error {
		frames = append(frames, img)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return frames, nil
}

func (r *renderer) Stream(ctx context.Context, progress common.ProgressFunc, yield func(frame uint32, img *image.RGBA) error) error {
	for i := uint32(0); i < r.totalFrames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		img, err := r.RenderFrame(i)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		progress.Emit(common.ProgressEvent{
			Status: common.StatusRendering,
			Frame:  i + 1,
			Total:  r.totalFrames,
		})
		if err := yield(i, img); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.post != nil {
		r.post.Release()
		r.post = nil
	}
	if r.camera != nil {
		r.camera.BindGroupProvider().Release()
	}
	if r.readback != nil {
		r.readback.Release()
		r.readback = nil
	}
	if r.target != nil {
		r.target.Release()
		r.target = nil
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}

// IsGPUUnavailable reports whether err is a GPU initialization failure, as on machines without an adapter.
//
// Parameters:
//   - err: the error returned by NewRenderer
//
// Returns:
//   - bool: true when err wraps ErrGPUInit
func IsGPUUnavailable(err error) bool {
	return errors.Is(err, ErrGPUInit)
}
