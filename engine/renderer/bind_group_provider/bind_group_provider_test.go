package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("camera_0")

	assert.Equal(t, "camera_0", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(0))
	assert.Nil(t, p.Sampler(1))
	assert.Nil(t, p.VertexBuffer())
	assert.Zero(t, p.VertexCapacity())
	assert.Zero(t, p.VertexCount())
}

func TestVertexCountAndRelease(t *testing.T) {
	p := NewBindGroupProvider("lines", WithBuffer(0, nil), WithTextureView(1, nil))
	p.SetVertexCount(24)
	assert.Equal(t, uint32(24), p.VertexCount())

	p.Release()
	assert.Zero(t, p.VertexCount())
	assert.Nil(t, p.Buffer(0))

	// a released provider can be filled again
	p.SetVertexCount(2)
	assert.Equal(t, uint32(2), p.VertexCount())
}
