package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestLookAtMapsTargetOntoNegativeZ(t *testing.T) {
	var view [16]float32
	eye := [3]float32{5, 5, 5}
	LookAt(view[:], eye, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})

	p := TransformPoint(view, [3]float32{0, 0, 0})
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, -eyeDistance, p[2], 1e-4)
	assert.InDelta(t, 1, p[3], 1e-6)

	e := TransformPoint(view, eye)
	assert.InDelta(t, 0, e[0], 1e-5)
	assert.InDelta(t, 0, e[1], 1e-5)
	assert.InDelta(t, 0, e[2], 1e-5)
}

// eyeDistance is the distance from (5,5,5) to the origin.
const eyeDistance = 8.660254

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	near, far := float32(0.1), float32(1000)
	Perspective(proj[:], Radians(45), 800.0/600.0, near, far)

	n := TransformPoint(proj, [3]float32{0, 0, -near})
	assert.InDelta(t, 0, n[2]/n[3], 1e-5)

	f := TransformPoint(proj, [3]float32{0, 0, -far})
	assert.InDelta(t, 1, f[2]/f[3], 1e-4)
}

func TestRotations(t *testing.T) {
	v := [3]float32{1, 0, 0}
	r := RotateY(v, Radians(90))
	assert.InDelta(t, 0, r[0], 1e-6)
	assert.InDelta(t, -1, r[2], 1e-6)

	r = RotateZ(v, Radians(90))
	assert.InDelta(t, 1, r[1], 1e-6)

	r = RotateX([3]float32{0, 1, 0}, Radians(90))
	assert.InDelta(t, 1, r[2], 1e-6)
}

func TestVectorHelpers(t *testing.T) {
	assert.Equal(t, [3]float32{0, 0, 1}, Cross([3]float32{1, 0, 0}, [3]float32{0, 1, 0}))
	assert.Equal(t, float32(32), Dot([3]float32{1, 2, 3}, [3]float32{4, 5, 6}))
	assert.Equal(t, [3]float32{0, 0, 0}, Normalize([3]float32{}))
	assert.Equal(t, [3]float32{2, 4, 6}, Mul([3]float32{1, 2, 3}, [3]float32{2, 2, 2}))
}

func TestClampAndCoalesce(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(float32(1.5), 0, 1))
	assert.Equal(t, float32(0), Clamp(float32(-2), 0, 1))
	assert.Equal(t, 7, Clamp(7, 0, 10))
	assert.Equal(t, float32(0), Clamp(float32(math.NaN()), 0, 1))
	assert.Equal(t, 0.5, Clamp(math.NaN(), 0.5, 1))
	assert.Equal(t, "b", Coalesce("", "b", "c"))
}

func TestPutFloat32s(t *testing.T) {
	buf := make([]byte, 8)
	off := PutFloat32s(buf, 0, 1, 2)
	assert.Equal(t, 8, off)
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f, 0, 0, 0, 0x40}, buf)
}
