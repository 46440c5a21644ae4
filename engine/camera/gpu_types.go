package camera

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/termcad/common"
)

// GPUCameraUniformSource is the canonical WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (80 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniform is the GPU-aligned representation of the line pass uniform buffer.
// Matches the WGSL CameraUniform struct layout exactly (see GPUCameraUniformSource).
// Size: 80 bytes.
type GPUCameraUniform struct {
	ViewProj   [16]float32 // offset  0: column-major view-projection matrix (mat4x4<f32>)
	Resolution [2]float32  // offset 64: render target size in pixels (vec2<f32>)
	_pad       [2]float32  // offset 72: padding to 80 bytes
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	off := common.PutFloat32s(buf, 0, g.ViewProj[:]...)
	common.PutFloat32s(buf, off, g.Resolution[0], g.Resolution[1], 0, 0)
	return buf
}
