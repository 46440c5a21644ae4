package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention), so the flat
// layout of out is the transpose of the row-major product a * b.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			buf[col*4+row] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a right-handed perspective projection matrix mapping depth into [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a right-handed view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up [3]float32) {
	f := Normalize(Sub(center, eye))
	s := Normalize(Cross(f, up))
	u := Cross(s, f)

	out[0], out[4], out[8], out[12] = s[0], s[1], s[2], -Dot(s, eye)
	out[1], out[5], out[9], out[13] = u[0], u[1], u[2], -Dot(u, eye)
	out[2], out[6], out[10], out[14] = -f[0], -f[1], -f[2], Dot(f, eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// TransformPoint multiplies the homogeneous point (p, 1) by a column-major matrix.
//
// Parameters:
//   - m: the 4x4 column-major matrix
//   - p: the point to transform
//
// Returns:
//   - [4]float32: the transformed homogeneous coordinates (x, y, z, w)
func TransformPoint(m [16]float32, p [3]float32) [4]float32 {
	var r [4]float32
	for row := 0; row < 4; row++ {
		r[row] = m[row]*p[0] + m[4+row]*p[1] + m[8+row]*p[2] + m[12+row]
	}
	return r
}

// Sub returns a - b.
func Sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Add returns a + b.
func Add(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Mul returns the component-wise product of a and b.
func Mul(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// Dot returns the dot product of a and b.
func Dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a x b.
func Cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
func Normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(Dot(v, v))
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * (math32.Pi / 180)
}

// RotateX rotates v around the X axis by angle radians.
func RotateX(v [3]float32, angle float32) [3]float32 {
	s, c := math32.Sincos(angle)
	return [3]float32{v[0], v[1]*c - v[2]*s, v[1]*s + v[2]*c}
}

// RotateY rotates v around the Y axis by angle radians.
func RotateY(v [3]float32, angle float32) [3]float32 {
	s, c := math32.Sincos(angle)
	return [3]float32{v[0]*c + v[2]*s, v[1], -v[0]*s + v[2]*c}
}

// RotateZ rotates v around the Z axis by angle radians.
func RotateZ(v [3]float32, angle float32) [3]float32 {
	s, c := math32.Sincos(angle)
	return [3]float32{v[0]*c - v[1]*s, v[0]*s + v[1]*c, v[2]}
}
