package shader

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineSource = `
struct CameraUniform {
    view_proj: mat4x4<f32>,
    resolution: vec2<f32>,
    _pad: vec2<f32>,
};

@group(0) @binding(0) var<uniform> camera: CameraUniform;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) color: vec4<f32>,
};

// @vertex fn commented_out() {}
@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip_position = camera.view_proj * vec4<f32>(in.position, 1.0);
    out.color = in.color;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color;
}
`

const postSource = `
struct PostUniforms {
    resolution: vec2<f32>,
    time: f32,
    bloom: f32,
    scanline_intensity: f32,
    scanline_count: f32,
    chromatic_aberration: f32,
    noise: f32,
    vignette: f32,
    crt_curvature: f32,
    _pad: vec2<f32>,
};

/* bindings /* nested */ below */
@group(0) @binding(2) var<uniform> post: PostUniforms;
@group(0) @binding(0) var source_texture: texture_2d<f32>;
@group(0) @binding(1) var source_sampler: sampler;

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> @builtin(position) vec4<f32> {
    return vec4<f32>(0.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return textureSample(source_texture, source_sampler, vec2<f32>(0.0));
}
`

func TestLineShaderLayouts(t *testing.T) {
	s, err := NewShader("line", lineSource, WithVisibility(wgpu.ShaderStageVertex))
	require.NoError(t, err)

	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Equal(t, "line", s.Module().Label)

	layouts := s.VertexLayouts()
	require.Len(t, layouts, 1)
	assert.Equal(t, uint64(28), layouts[0].ArrayStride)
	require.Len(t, layouts[0].Attributes, 2)
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0}, layouts[0].Attributes[0])
	assert.Equal(t, wgpu.VertexAttribute{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, layouts[0].Attributes[1])

	desc := s.BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 1)
	assert.Equal(t, wgpu.BufferBindingTypeUniform, desc.Entries[0].Buffer.Type)
	assert.Equal(t, uint64(80), desc.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex, desc.Entries[0].Visibility)
	assert.Equal(t, "camera", s.BindingVarName(0, 0))
}

func TestPostShaderLayouts(t *testing.T) {
	s, err := NewShader("post", postSource, WithVisibility(wgpu.ShaderStageFragment))
	require.NoError(t, err)

	assert.Empty(t, s.VertexLayouts())

	entries := s.BindGroupLayoutDescriptor(0).Entries
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, uint32(i), e.Binding)
		assert.Equal(t, wgpu.ShaderStageFragment, e.Visibility)
	}
	assert.Equal(t, wgpu.TextureSampleTypeFloat, entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, entries[1].Sampler.Type)
	assert.Equal(t, uint64(48), entries[2].Buffer.MinBindingSize)

	binding, ok := s.BindingFromVarName(0, "post")
	assert.True(t, ok)
	assert.Equal(t, 2, binding)
	_, ok = s.BindingFromVarName(1, "post")
	assert.False(t, ok)
}

func TestMissingEntryPoints(t *testing.T) {
	_, err := NewShader("frag-only", "@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }")
	assert.ErrorIs(t, err, ErrNoVertexEntry)

	_, err = NewShader("vert-only", "// @fragment\n@vertex fn vs() -> @builtin(position) vec4<f32> { return vec4<f32>(1.0); }")
	assert.ErrorIs(t, err, ErrNoFragmentEntry)
}

func TestUnsupportedVertexType(t *testing.T) {
	src := `struct In { @location(0) m: mat4x4<f32>, };
@vertex fn vs(in: In) -> @builtin(position) vec4<f32> { return vec4<f32>(1.0); }
@fragment fn fs() -> @location(0) vec4<f32> { return vec4<f32>(1.0); }`
	_, err := NewShader("bad", src)
	assert.ErrorContains(t, err, "unsupported type mat4x4<f32>")
}

func TestStructSizes(t *testing.T) {
	structs := parseStructBlocks(stripComments(`
struct Inner { a: vec3<f32>, b: f32, };
struct Outer { inner: Inner, items: array<vec2<f32>, 3>, c: u32, };
`))
	sizes := computeStructSizes(structs)
	assert.Equal(t, wgslTypeLayout{16, 16}, sizes["Inner"])
	// 16 for Inner, 24 for the array, 4 for c, rounded up to 16
	assert.Equal(t, wgslTypeLayout{48, 16}, sizes["Outer"])
}
