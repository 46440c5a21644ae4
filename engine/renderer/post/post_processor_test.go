package post

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/termcad/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/termcad/engine/renderer/shader"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	cases := []struct {
		name     string
		settings scene.PostProcessing
		want     bool
	}{
		{"all zero", scene.PostProcessing{}, false},
		{"bloom", scene.PostProcessing{Bloom: 0.2}, true},
		{"scanlines", scene.PostProcessing{Scanlines: &scene.Scanlines{Intensity: 0, Count: 1}}, true},
		{"aberration", scene.PostProcessing{ChromaticAberration: 0.01}, true},
		{"noise", scene.PostProcessing{Noise: 0.1}, true},
		{"vignette", scene.PostProcessing{Vignette: 0.5}, true},
		{"crt", scene.PostProcessing{CRTCurvature: 0.1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Enabled(tc.settings))
		})
	}
}

func TestDisabledIsPassThrough(t *testing.T) {
	input := &common.RenderTarget{Width: 4, Height: 2}

	p, err := NewPostProcessor(nil, scene.PostProcessing{}, input)
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	assert.Same(t, input, p.Process(expression.NewContext(3, 10)))
	assert.Same(t, input, p.Output())
	assert.NotPanics(t, p.Release)
}

func TestUniformLayout(t *testing.T) {
	settings := scene.PostProcessing{
		Bloom:               0.5,
		Scanlines:           &scene.Scanlines{Intensity: 0.1, Count: 300},
		ChromaticAberration: 0.02,
		Noise:               0.05,
		Vignette:            0.3,
		CRTCurvature:        0.2,
	}
	u := NewGPUPostUniforms(settings, 800, 600, expression.NewContext(1, 3))
	b := u.Marshal()
	require.Len(t, b, 48)

	at := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
	}
	assert.Equal(t, float32(800), at(0))
	assert.Equal(t, float32(600), at(4))
	assert.Equal(t, float32(0.5), at(8))
	assert.Equal(t, float32(0.5), at(12))
	assert.Equal(t, float32(0.1), at(16))
	assert.Equal(t, float32(300), at(20))
	assert.Equal(t, float32(0.02), at(24))
	assert.Equal(t, float32(0.05), at(28))
	assert.Equal(t, float32(0.3), at(32))
	assert.Equal(t, float32(0.2), at(36))
	assert.Zero(t, at(40))
	assert.Zero(t, at(44))
}

func TestUniformWithoutScanlines(t *testing.T) {
	u := NewGPUPostUniforms(scene.PostProcessing{Vignette: 1}, 10, 10, expression.NewContext(0, 1))
	assert.Zero(t, u.ScanlineIntensity)
	assert.Zero(t, u.ScanlineCount)
	assert.Zero(t, u.Time)
}

func TestShaderMatchesUniformSize(t *testing.T) {
	s, err := shader.NewShader("post", ShaderSource)
	require.NoError(t, err)

	desc := s.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 3)
	var u GPUPostUniforms
	assert.Equal(t, uint64(u.Size()), desc.Entries[2].Buffer.MinBindingSize)
}

// recordingBackend records what the processor asks of the GPU without creating anything.
type recordingBackend struct {
	pipelines []pipeline.Pipeline
	targets   []common.TextureStagingData
	writes    []bind_group_provider.BufferWrite
	passes    []*wgpu.TextureView
	draws     []uint32
	ended     int
}

func (b *recordingBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	b.pipelines = append(b.pipelines, p)
	return nil
}

func (b *recordingBackend) CreateRenderTarget(stagingData common.TextureStagingData) (*common.RenderTarget, error) {
	b.targets = append(b.targets, stagingData)
	return &common.RenderTarget{Width: stagingData.Width, Height: stagingData.Height, Format: stagingData.Format}, nil
}

func (b *recordingBackend) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (b *recordingBackend) InitBindGroup(bind_group_provider.BindGroupProvider, pipeline.Pipeline, int) error {
	return nil
}

func (b *recordingBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	b.writes = append(b.writes, writes...)
}

func (b *recordingBackend) BeginPass(target *wgpu.TextureView, _ wgpu.Color) {
	b.passes = append(b.passes, target)
}

func (b *recordingBackend) Draw(_ pipeline.Pipeline, vertexCount uint32, _ bind_group_provider.BindGroupProvider, _ []bind_group_provider.BindGroupProvider) {
	b.draws = append(b.draws, vertexCount)
}

func (b *recordingBackend) EndPass() {
	b.ended++
}

func TestEnabledProcessorRecordsOnePass(t *testing.T) {
	backend := &recordingBackend{}
	input := &common.RenderTarget{Width: 64, Height: 48, Format: wgpu.TextureFormatRGBA8Unorm}

	p, err := NewPostProcessor(backend, scene.PostProcessing{Vignette: 0.5}, input,
		WithLabel("crt"),
		WithOutputFormat(wgpu.TextureFormatBGRA8Unorm),
	)
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	require.Len(t, backend.pipelines, 1)
	assert.Equal(t, "crt", backend.pipelines[0].PipelineKey())
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, backend.pipelines[0].TargetFormat())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, backend.pipelines[0].Topology())
	require.Len(t, backend.targets, 1)
	assert.Equal(t, "crt output", backend.targets[0].Label)
	assert.Equal(t, wgpu.TextureFormatBGRA8Unorm, backend.targets[0].Format)

	out := p.Process(expression.NewContext(2, 5))
	assert.NotSame(t, input, out)
	assert.Same(t, p.Output(), out)
	assert.Equal(t, uint32(64), out.Width)
	assert.Equal(t, []uint32{fullScreenVertices}, backend.draws)
	assert.Equal(t, 1, backend.ended)
	require.Len(t, backend.writes, 1)
	assert.Equal(t, uniformBinding, backend.writes[0].Binding)
	assert.Len(t, backend.writes[0].Data, 48)

	assert.NotPanics(t, p.Release)
}
