package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaddedBytesPerRow(t *testing.T) {
	cases := map[uint32]uint32{
		1:   256,
		64:  256,
		65:  512,
		800: 3328,
		100: 512,
	}
	for width, want := range cases {
		got := PaddedBytesPerRow(width)
		assert.Equal(t, want, got, "width %d", width)
		assert.Zero(t, got%256)
		assert.GreaterOrEqual(t, got, width*4)
	}
}

func TestUnpadRows(t *testing.T) {
	const w, h = 3, 2
	bpr := PaddedBytesPerRow(w)
	data := make([]byte, bpr*h)
	for y := uint32(0); y < h; y++ {
		for i := uint32(0); i < bpr; i++ {
			data[y*bpr+i] = 0xEE
		}
		for x := uint32(0); x < w*4; x++ {
			data[y*bpr+x] = byte(y*16 + x)
		}
	}

	img := UnpadRows(data, w, h, bpr)
	require.Len(t, img.Pix, w*h*4)
	assert.Equal(t, w*4, img.Stride)
	for y := 0; y < h; y++ {
		for x := 0; x < w*4; x++ {
			assert.Equal(t, byte(y*16+x), img.Pix[y*img.Stride+x])
		}
	}
	assert.NotContains(t, img.Pix, byte(0xEE))
}
