package primitives

import (
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/chewxy/math32"
)

// Grid draws divisions+1 lines along each of X and Z across a square of side FadeDistance centered on the origin.
type Grid struct {
	divisions    uint32
	fadeDistance float32
	color        [4]float32
	opacity      scene.AnimatedValue
}

// NewGrid builds the producer for a grid element.
func NewGrid(e *scene.Grid) *Grid {
	return &Grid{
		divisions:    e.Divisions,
		fadeDistance: e.FadeDistance,
		color:        scene.ColorOr(e.Color, fallbackColor),
		opacity:      e.Opacity,
	}
}

func (g *Grid) Vertices(ctx expression.Context) []LineVertex {
	if g.divisions == 0 {
		return nil
	}
	opacity := opacityOf(g.opacity, ctx)
	half := g.fadeDistance / 2
	step := half * 2 / float32(g.divisions)

	out := make([]LineVertex, 0, 4*(g.divisions+1))
	for i := uint32(0); i <= g.divisions; i++ {
		z := -half + float32(i)*step
		c := withAlpha(g.color, opacity*fade(z, half))
		out = append(out, LineVertex{[3]float32{-half, 0, z}, c}, LineVertex{[3]float32{half, 0, z}, c})
	}
	for i := uint32(0); i <= g.divisions; i++ {
		x := -half + float32(i)*step
		c := withAlpha(g.color, opacity*fade(x, half))
		out = append(out, LineVertex{[3]float32{x, 0, -half}, c}, LineVertex{[3]float32{x, 0, half}, c})
	}
	return out
}

// fade is 1 at the center and 0 at the edge, falling off quadratically.
func fade(d, half float32) float32 {
	r := math32.Abs(d) / half
	return math32.Max(1-r*r, 0)
}
