// package common contains common types and helpers used throughout the engine. They are not interface-wrapped structs, just plain structs
// and functions that express commonly used data-types, math and error classification.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// TextureStagingData describes an offscreen texture pending GPU creation.
// Render targets and post-processing outputs are created from this description.
type TextureStagingData struct {
	// Label names the texture in GPU debug output.
	Label string
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
	// Format is the texel format. Defaults to RGBA8Unorm when zero.
	Format wgpu.TextureFormat
	// Usage is the set of usages the texture is created with.
	Usage wgpu.TextureUsage
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
// Zero fields are replaced with clamp-to-edge addressing and linear filtering.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify the addressing mode for texture coordinates outside the [0, 1] range.
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp specify the minimum and maximum level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy specifies the maximum anisotropy level.
	MaxAnisotropy uint16
}

// RenderTarget is an offscreen color texture and the view passes render into or sample from.
type RenderTarget struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Width   uint32
	Height  uint32
	Format  wgpu.TextureFormat
}

// Release frees the view and the texture. Safe on a zero RenderTarget.
func (t *RenderTarget) Release() {
	if t.View != nil {
		t.View.Release()
		t.View = nil
	}
	if t.Texture != nil {
		t.Texture.Release()
		t.Texture = nil
	}
}
