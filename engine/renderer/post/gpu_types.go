package post

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
)

// ShaderSource is the WGSL source of the full-screen post-processing pass.
//
//go:embed assets/post.wgsl
var ShaderSource string

// GPUPostUniforms is the GPU-aligned representation of the post pass uniform buffer.
// Matches the WGSL PostUniforms struct layout exactly.
// Size: 48 bytes.
type GPUPostUniforms struct {
	Resolution          [2]float32 // offset  0
	Time                float32    // offset  8
	Bloom               float32    // offset 12
	ScanlineIntensity   float32    // offset 16
	ScanlineCount       float32    // offset 20
	ChromaticAberration float32    // offset 24
	Noise               float32    // offset 28
	Vignette            float32    // offset 32
	CRTCurvature        float32    // offset 36
	_pad                [2]float32 // offset 40
}

// NewGPUPostUniforms builds the uniform block for one frame.
// Scanline intensity and count are zero when scanlines are disabled.
//
// Parameters:
//   - settings: the scene's post-processing settings
//   - width: render target width in pixels
//   - height: render target height in pixels
//   - ctx: the frame's evaluation context; Time is ctx.T
//
// Returns:
//   - GPUPostUniforms: the populated uniform block
func NewGPUPostUniforms(settings scene.PostProcessing, width, height uint32, ctx expression.Context) GPUPostUniforms {
	u := GPUPostUniforms{
		Resolution:          [2]float32{float32(width), float32(height)},
		Time:                ctx.T,
		Bloom:               settings.Bloom,
		ChromaticAberration: settings.ChromaticAberration,
		Noise:               settings.Noise,
		Vignette:            settings.Vignette,
		CRTCurvature:        settings.CRTCurvature,
	}
	if settings.Scanlines != nil {
		u.ScanlineIntensity = settings.Scanlines.Intensity
		u.ScanlineCount = float32(settings.Scanlines.Count)
	}
	return u
}

// Size returns the size of the GPUPostUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUPostUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPostUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUPostUniforms) Marshal() []byte {
	buf := make([]byte, g.Size())
	common.PutFloat32s(buf, 0,
		g.Resolution[0], g.Resolution[1],
		g.Time,
		g.Bloom,
		g.ScanlineIntensity,
		g.ScanlineCount,
		g.ChromaticAberration,
		g.Noise,
		g.Vignette,
		g.CRTCurvature,
		0, 0,
	)
	return buf
}
