// Package primitives turns scene elements into colored line-list vertices for a single frame.
//
// Every producer is pure: the same element and expression.Context always yield the same vertices.
package primitives

import (
	"fmt"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
)

// LineVertexSize is the packed size of a LineVertex: a vec3f position followed by a vec4f color.
const LineVertexSize = 28

// fallbackColor is used when an element's color fails to parse.
var fallbackColor = [4]float32{0, 1, 0.25, 1}

// LineVertex is one endpoint of a line segment. Consecutive pairs form the segments of a line list.
type LineVertex struct {
	Position [3]float32
	Color    [4]float32
}

// Put packs v little-endian into buf at offset and returns the offset after it.
//
// Parameters:
//   - buf: the destination, at least offset+LineVertexSize bytes
//   - offset: the byte offset to write at
//
// Returns:
//   - int: offset + LineVertexSize
func (v LineVertex) Put(buf []byte, offset int) int {
	offset = common.PutFloat32s(buf, offset, v.Position[:]...)
	return common.PutFloat32s(buf, offset, v.Color[:]...)
}

// VertexBytes packs vertices into a tightly strided vertex buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * LineVertexSize bytes
func VertexBytes(vertices []LineVertex) []byte {
	buf := make([]byte, len(vertices)*LineVertexSize)
	offset := 0
	for _, v := range vertices {
		offset = v.Put(buf, offset)
	}
	return buf
}

// Primitive produces the vertices of one element for one frame.
type Primitive interface {
	// Vertices returns the line-list vertices for ctx.
	//
	// Parameters:
	//   - ctx: the frame context
	//
	// Returns:
	//   - []LineVertex: an even number of vertices, two per segment
	Vertices(ctx expression.Context) []LineVertex
}

// FromElement builds the producer for e.
//
// Parameters:
//   - e: a scene element
//
// Returns:
//   - Primitive: the producer
//   - error: an error if e is nil or of an unknown type
func FromElement(e scene.Element) (Primitive, error) {
	switch el := e.(type) {
	case *scene.Grid:
		return NewGrid(el), nil
	case *scene.Wireframe:
		return NewWireframe(el), nil
	case *scene.Glyph:
		return NewGlyph(el), nil
	case *scene.Line:
		return NewLine(el), nil
	case *scene.Particles:
		return NewParticles(el), nil
	case *scene.Axes:
		return NewAxes(el), nil
	case nil:
		return nil, fmt.Errorf("nil element")
	default:
		return nil, fmt.Errorf("unsupported element type %T", e)
	}
}

// Collect concatenates the vertices of every element in order, so later elements draw over earlier ones.
//
// Parameters:
//   - elements: the scene elements in draw order
//   - ctx: the frame context
//
// Returns:
//   - []LineVertex: the frame's vertices
//   - error: an error if an element has no producer
func Collect(elements []scene.Element, ctx expression.Context) ([]LineVertex, error) {
	var out []LineVertex
	for i, e := range elements {
		p, err := FromElement(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, p.Vertices(ctx)...)
	}
	return out, nil
}

func opacityOf(v scene.AnimatedValue, ctx expression.Context) float32 {
	return common.Clamp(v.Evaluate(ctx), 0, 1)
}

func withAlpha(c [4]float32, a float32) [4]float32 {
	return [4]float32{c[0], c[1], c[2], a}
}
