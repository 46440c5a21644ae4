package primitives

import (
	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
)

// Wireframe draws the edges of a parametric solid after scale, rotation and translation.
type Wireframe struct {
	geometry Geometry
	position [3]float32
	rotation scene.Rotation
	scale    scene.Scale
	color    [4]float32
	opacity  scene.AnimatedValue
}

// NewWireframe builds the producer for a wireframe element.
func NewWireframe(e *scene.Wireframe) *Wireframe {
	return &Wireframe{
		geometry: GenerateGeometry(e.Geometry),
		position: e.Position,
		rotation: e.Rotation,
		scale:    e.Scale,
		color:    scene.ColorOr(e.Color, fallbackColor),
		opacity:  e.Opacity,
	}
}

func (w *Wireframe) Vertices(ctx expression.Context) []LineVertex {
	c := withAlpha(w.color, opacityOf(w.opacity, ctx))
	xf := w.transform(ctx)

	out := make([]LineVertex, 0, 2*len(w.geometry.Edges))
	for _, e := range w.geometry.Edges {
		out = append(out,
			LineVertex{xf(w.geometry.Vertices[e[0]]), c},
			LineVertex{xf(w.geometry.Vertices[e[1]]), c},
		)
	}
	return out
}

// transform resolves the frame's scale and angles once and returns the per-vertex transform.
// Rotation applies Y, then X, then Z.
func (w *Wireframe) transform(ctx expression.Context) func([3]float32) [3]float32 {
	scale := w.scale.Vec3(ctx)
	deg := w.rotation.Degrees(ctx)
	rx, ry, rz := common.Radians(deg[0]), common.Radians(deg[1]), common.Radians(deg[2])

	return func(p [3]float32) [3]float32 {
		p = common.Mul(p, scale)
		p = common.RotateY(p, ry)
		p = common.RotateX(p, rx)
		p = common.RotateZ(p, rz)
		return common.Add(p, w.position)
	}
}
