package primitives

import (
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
)

// Line draws one segment per consecutive pair of points, plus a closing segment when closed.
type Line struct {
	points  [][3]float32
	closed  bool
	color   [4]float32
	opacity scene.AnimatedValue
}

// NewLine builds the producer for a line element.
func NewLine(e *scene.Line) *Line {
	return &Line{
		points:  e.Points,
		closed:  e.Closed,
		color:   scene.ColorOr(e.Color, fallbackColor),
		opacity: e.Opacity,
	}
}

func (l *Line) Vertices(ctx expression.Context) []LineVertex {
	n := len(l.points)
	if n < 2 {
		return nil
	}
	c := withAlpha(l.color, opacityOf(l.opacity, ctx))

	out := make([]LineVertex, 0, 2*n)
	for i := 0; i < n-1; i++ {
		out = append(out, LineVertex{l.points[i], c}, LineVertex{l.points[i+1], c})
	}
	// a closing segment on two points would retrace the only segment
	if l.closed && n > 2 {
		out = append(out, LineVertex{l.points[n-1], c}, LineVertex{l.points[0], c})
	}
	return out
}
