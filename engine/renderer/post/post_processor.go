package post

import (
	"fmt"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/termcad/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/termcad/engine/renderer/shader"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

const (
	textureBinding = 0
	samplerBinding = 1
	uniformBinding = 2

	// fullScreenVertices is the vertex count of the two triangles the vertex stage generates.
	fullScreenVertices = 6
)

// Backend is the subset of the renderer backend the post processor records its pass with.
type Backend interface {
	RegisterRenderPipeline(p pipeline.Pipeline) error
	CreateRenderTarget(stagingData common.TextureStagingData) (*common.RenderTarget, error)
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error
	InitBindGroup(provider bind_group_provider.BindGroupProvider, p pipeline.Pipeline, group int) error
	WriteBuffers(writes []bind_group_provider.BufferWrite)
	BeginPass(target *wgpu.TextureView, clear wgpu.Color)
	Draw(p pipeline.Pipeline, vertexCount uint32, vertices bind_group_provider.BindGroupProvider, bindGroups []bind_group_provider.BindGroupProvider)
	EndPass()
}

type postProcessor struct {
	backend  Backend
	settings scene.PostProcessing
	enabled  bool

	label        string
	outputFormat wgpu.TextureFormat

	input    *common.RenderTarget
	output   *common.RenderTarget
	pipeline pipeline.Pipeline
	provider bind_group_provider.BindGroupProvider
}

// PostProcessor applies the scene's full-screen effects to a rendered frame.
//
// When no effect is enabled the processor is a pass-through: Process returns the input target and
// no GPU objects are ever created.
type PostProcessor interface {
	// Enabled reports whether any effect is active.
	//
	// Returns:
	//   - bool: true when Process records a GPU pass
	Enabled() bool

	// Process records the post pass for one frame into the backend's open frame.
	//
	// Parameters:
	//   - ctx: the frame's evaluation context; its T drives time-varying effects
	//
	// Returns:
	//   - *common.RenderTarget: the target holding the final image, the input itself when disabled
	Process(ctx expression.Context) *common.RenderTarget

	// Output returns the target Process renders into.
	//
	// Returns:
	//   - *common.RenderTarget: the output target, or the input when disabled
	Output() *common.RenderTarget

	// Release frees the output texture, sampler, uniform buffer, bind group and pipeline.
	Release()
}

var _ PostProcessor = &postProcessor{}

// Enabled reports whether settings turn on any effect.
// Bloom, chromatic aberration, noise, vignette and CRT curvature must all be zero and scanlines absent
// for the pass to be skipped.
//
// Parameters:
//   - settings: the scene's post-processing settings
//
// Returns:
//   - bool: true when at least one effect is active
func Enabled(settings scene.PostProcessing) bool {
	return settings.Bloom > 0 ||
		settings.Scanlines != nil ||
		settings.ChromaticAberration > 0 ||
		settings.Noise > 0 ||
		settings.Vignette > 0 ||
		settings.CRTCurvature > 0
}

// NewPostProcessor creates a post processor sampling input. When the settings enable no effect the
// backend is not touched and may be nil.
//
// Parameters:
//   - backend: the backend used to create GPU objects and record passes
//   - settings: the scene's post-processing settings
//   - input: the render target holding the rasterized lines
//   - options: functional options to configure the processor
//
// Returns:
//   - PostProcessor: the processor
//   - error: an error if the shader, pipeline, output texture or bind group cannot be created
func NewPostProcessor(backend Backend, settings scene.PostProcessing, input *common.RenderTarget, options ...PostProcessorBuilderOption) (PostProcessor, error) {
	p := &postProcessor{
		backend:      backend,
		settings:     settings,
		enabled:      Enabled(settings),
		label:        "post",
		outputFormat: wgpu.TextureFormatRGBA8Unorm,
		input:        input,
	}
	for _, option := range options {
		option(p)
	}
	if !p.enabled {
		return p, nil
	}

	if err := p.init(); err != nil {
		p.Release()
		return nil, err
	}
	return p, nil
}

func (p *postProcessor) init() error {
	s, err := shader.NewShader(p.label, ShaderSource, shader.WithVisibility(wgpu.ShaderStageFragment))
	if err != nil {
		return fmt.Errorf("post shader: %w", err)
	}

	p.pipeline = pipeline.NewPipeline(p.label,
		pipeline.WithShader(s),
		pipeline.WithTopology(wgpu.PrimitiveTopologyTriangleList),
		pipeline.WithTargetFormat(p.outputFormat),
	)
	if err := p.backend.RegisterRenderPipeline(p.pipeline); err != nil {
		return fmt.Errorf("post pipeline: %w", err)
	}

	p.output, err = p.backend.CreateRenderTarget(common.TextureStagingData{
		Label:  p.label + " output",
		Width:  p.input.Width,
		Height: p.input.Height,
		Format: p.outputFormat,
		Usage:  wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("post output texture: %w", err)
	}

	p.provider = bind_group_provider.NewBindGroupProvider(p.label,
		bind_group_provider.WithTextureView(textureBinding, p.input.View),
	)
	if err := p.backend.InitSampler(p.provider, samplerBinding, common.SamplerStagingData{}); err != nil {
		return fmt.Errorf("post sampler: %w", err)
	}
	if err := p.backend.InitBindGroup(p.provider, p.pipeline, 0); err != nil {
		return fmt.Errorf("post bind group: %w", err)
	}
	return nil
}

func (p *postProcessor) Enabled() bool {
	return p.enabled
}

func (p *postProcessor) Process(ctx expression.Context) *common.RenderTarget {
	if !p.enabled {
		return p.input
	}

	uniforms := NewGPUPostUniforms(p.settings, p.output.Width, p.output.Height, ctx)
	p.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: p.provider, Binding: uniformBinding, Data: uniforms.Marshal()},
	})

	p.backend.BeginPass(p.output.View, wgpu.Color{R: 0, G: 0, B: 0, A: 1})
	p.backend.Draw(p.pipeline, fullScreenVertices, nil, []bind_group_provider.BindGroupProvider{p.provider})
	p.backend.EndPass()
	return p.output
}

func (p *postProcessor) Output() *common.RenderTarget {
	if !p.enabled {
		return p.input
	}
	return p.output
}

func (p *postProcessor) Release() {
	if p.provider != nil {
		p.provider.Release()
		p.provider = nil
	}
	if p.output != nil {
		p.output.Release()
		p.output = nil
	}
	if p.pipeline != nil {
		p.pipeline.Release()
		p.pipeline = nil
	}
}
