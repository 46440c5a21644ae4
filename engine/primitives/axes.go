package primitives

import (
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
)

// Axes draws an arrow along each positive axis from an origin.
type Axes struct {
	origin  [3]float32
	length  float32
	colors  [3][4]float32
	opacity scene.AnimatedValue
}

// NewAxes builds the producer for an axes element.
func NewAxes(e *scene.Axes) *Axes {
	return &Axes{
		origin: e.Position,
		length: e.Length,
		colors: [3][4]float32{
			scene.ColorOr(e.Colors.X, [4]float32{1, 0, 0, 1}),
			scene.ColorOr(e.Colors.Y, [4]float32{0, 1, 0, 1}),
			scene.ColorOr(e.Colors.Z, [4]float32{0, 0, 1, 1}),
		},
		opacity: e.Opacity,
	}
}

func (a *Axes) Vertices(ctx expression.Context) []LineVertex {
	opacity := opacityOf(a.opacity, ctx)
	o := a.origin
	l := a.length
	arrow := l * 0.15
	wing := arrow * 0.5

	var c [3][4]float32
	for i, base := range a.colors {
		c[i] = withAlpha(base, base[3]*opacity)
	}

	tipX := [3]float32{o[0] + l, o[1], o[2]}
	tipY := [3]float32{o[0], o[1] + l, o[2]}
	tipZ := [3]float32{o[0], o[1], o[2] + l}

	return []LineVertex{
		{o, c[0]}, {tipX, c[0]},
		{o, c[1]}, {tipY, c[1]},
		{o, c[2]}, {tipZ, c[2]},

		{tipX, c[0]}, {[3]float32{tipX[0] - arrow, o[1] + wing, o[2]}, c[0]},
		{tipX, c[0]}, {[3]float32{tipX[0] - arrow, o[1] - wing, o[2]}, c[0]},

		{tipY, c[1]}, {[3]float32{o[0] + wing, tipY[1] - arrow, o[2]}, c[1]},
		{tipY, c[1]}, {[3]float32{o[0] - wing, tipY[1] - arrow, o[2]}, c[1]},

		{tipZ, c[2]}, {[3]float32{o[0], o[1] + wing, tipZ[2] - arrow}, c[2]},
		{tipZ, c[2]}, {[3]float32{o[0], o[1] - wing, tipZ[2] - arrow}, c[2]},
	}
}
