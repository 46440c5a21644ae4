package primitives

import (
	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/chewxy/math32"
)

const (
	defaultParticleSeed = 12345
	lcgMultiplier       = 1103515245
	lcgIncrement        = 12345

	// particleScale converts the element's size into a world-space half extent.
	particleScale = 0.02
)

// Particles draws a seeded point cloud where each point is a small cross.
type Particles struct {
	positions [][3]float32
	color     [4]float32
	opacity   scene.AnimatedValue
	halfSize  float32
	depthFade bool
	bounds    [3]float32
}

// NewParticles builds the producer for a particles element and generates its positions.
func NewParticles(e *scene.Particles) *Particles {
	return &Particles{
		positions: ParticlePositions(e.Count, e.Bounds, e.Seed),
		color:     scene.ColorOr(e.Color, fallbackColor),
		opacity:   e.Opacity,
		halfSize:  e.Size * particleScale,
		depthFade: e.DepthFade,
		bounds:    e.Bounds,
	}
}

// ParticlePositions generates count points inside the box of size bounds centered on the origin.
// A seed of 0 uses the default seed.
//
// Parameters:
//   - count: the number of points
//   - bounds: the box extents along X, Y and Z
//   - seed: the generator seed
//
// Returns:
//   - [][3]float32: the points, identical for identical arguments
func ParticlePositions(count uint32, bounds [3]float32, seed uint64) [][3]float32 {
	if seed == 0 {
		seed = defaultParticleSeed
	}
	next := func(extent float32) float32 {
		seed = seed*lcgMultiplier + lcgIncrement
		return (float32((seed>>16)&0xFFFF)/65535 - 0.5) * extent
	}

	out := make([][3]float32, count)
	for i := range out {
		x := next(bounds[0])
		y := next(bounds[1])
		z := next(bounds[2])
		out[i] = [3]float32{x, y, z}
	}
	return out
}

func (p *Particles) Vertices(ctx expression.Context) []LineVertex {
	base := opacityOf(p.opacity, ctx)
	h := p.halfSize
	maxZ := p.bounds[2] / 2

	out := make([]LineVertex, 0, 4*len(p.positions))
	for _, pos := range p.positions {
		opacity := base
		if p.depthFade && maxZ > 0 {
			opacity *= 1 - math32.Min(math32.Abs(pos[2])/maxZ, 1)*0.7
		}
		c := withAlpha(p.color, opacity)
		out = append(out,
			LineVertex{[3]float32{pos[0] - h, pos[1], pos[2]}, c},
			LineVertex{[3]float32{pos[0] + h, pos[1], pos[2]}, c},
			LineVertex{[3]float32{pos[0], pos[1] - h, pos[2]}, c},
			LineVertex{[3]float32{pos[0], pos[1] + h, pos[2]}, c},
		)
	}
	return out
}
