package primitives

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGeometryCounts(t *testing.T) {
	cases := []struct {
		g        scene.GeometryType
		vertices int
		edges    int
	}{
		{scene.GeometryCube, 8, 12},
		{scene.GeometrySphere, 13 * 16, 13*16 + 12*16},
		{scene.GeometryTorus, 24 * 12, 2 * 24 * 12},
		{scene.GeometryIco, 12, 30},
		{scene.GeometryCylinder, 32, 48},
	}
	for _, tc := range cases {
		t.Run(string(tc.g), func(t *testing.T) {
			g := GenerateGeometry(tc.g)
			assert.Len(t, g.Vertices, tc.vertices)
			assert.Len(t, g.Edges, tc.edges)
			for _, e := range g.Edges {
				assert.True(t, e[0] >= 0 && e[0] < len(g.Vertices))
				assert.True(t, e[1] >= 0 && e[1] < len(g.Vertices))
			}
			assert.Equal(t, g, GenerateGeometry(tc.g))
		})
	}
	assert.Empty(t, GenerateGeometry("teapot").Edges)
}

func TestIcosahedronEdgesAreEqualLength(t *testing.T) {
	g := GenerateGeometry(scene.GeometryIco)
	want := edgeLength(g, g.Edges[0])
	for _, e := range g.Edges {
		assert.InDelta(t, want, edgeLength(g, e), 1e-5)
	}
	assert.InDelta(t, 0.6, want, 1e-5)
}

func edgeLength(g Geometry, e [2]int) float32 {
	a, b := g.Vertices[e[0]], g.Vertices[e[1]]
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math32.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestGridFadesTowardEdges(t *testing.T) {
	el := scene.NewGrid()
	el.Opacity = scene.Static(0.8)
	ctx := expression.NewContext(0, 1)

	v := NewGrid(el).Vertices(ctx)
	require.Len(t, v, 4*21)

	first, center := v[0], v[20]
	assert.Equal(t, float32(-25), first.Position[2])
	assert.Equal(t, float32(0), first.Color[3])
	assert.Equal(t, float32(0), center.Position[2])
	assert.Equal(t, float32(0.8), center.Color[3])
	for _, vert := range v {
		assert.Equal(t, float32(0), vert.Position[1])
	}

	el.Opacity = scene.Expr("5")
	v = NewGrid(el).Vertices(ctx)
	assert.Equal(t, float32(1), v[20].Color[3])
}

func TestWireframeFullTurnCoincides(t *testing.T) {
	el := scene.NewWireframe()
	el.Position = [3]float32{0, 0.5, 0}
	el.Rotation.Y = scene.Expr("t * 360")
	w := NewWireframe(el)

	first := w.Vertices(expression.NewContext(0, 60))
	last := w.Vertices(expression.NewContext(59, 60))
	require.Len(t, first, 24)
	require.Len(t, last, 24)
	for i := range first {
		for k := 0; k < 3; k++ {
			assert.InDelta(t, first[i].Position[k], last[i].Position[k], 1e-4)
		}
	}

	mid := w.Vertices(expression.NewContext(15, 61))
	assert.InDelta(t, -0.5, mid[0].Position[0], 1e-5)
	assert.InDelta(t, 0, mid[0].Position[1], 1e-5)
	assert.InDelta(t, 0.5, mid[0].Position[2], 1e-5)
}

func TestWireframeTransformOrder(t *testing.T) {
	el := scene.NewWireframe()
	el.Scale = scene.VectorScale(2, 1, 1)
	el.Rotation = scene.Rotation{Y: scene.Static(90)}
	el.Position = [3]float32{10, 0, 0}

	v := NewWireframe(el).Vertices(expression.NewContext(0, 1))
	// (-0.5,-0.5,-0.5) scaled to (-1,-0.5,-0.5), turned 90 degrees about Y to (-0.5,-0.5,1), then moved.
	assert.InDelta(t, 9.5, v[0].Position[0], 1e-5)
	assert.InDelta(t, -0.5, v[0].Position[1], 1e-5)
	assert.InDelta(t, 1, v[0].Position[2], 1e-5)
}

func TestLineSegments(t *testing.T) {
	ctx := expression.NewContext(0, 1)
	pts := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	cases := []struct {
		name   string
		points [][3]float32
		closed bool
		want   int
	}{
		{"no points", pts[:0], false, 0},
		{"no points closed", pts[:0], true, 0},
		{"single point", pts[:1], false, 0},
		{"single point closed", pts[:1], true, 0},
		{"two points", pts[:2], false, 2},
		{"two points closed", pts[:2], true, 2},
		{"three points closed", pts[:3], true, 6},
		{"four points open", pts, false, 6},
		{"four points closed", pts, true, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := scene.NewLine(tc.points...)
			el.Closed = tc.closed
			v := NewLine(el).Vertices(ctx)
			assert.Len(t, v, tc.want)
		})
	}

	el := scene.NewLine(pts...)
	el.Closed = true
	v := NewLine(el).Vertices(ctx)
	assert.Equal(t, pts[3], v[6].Position)
	assert.Equal(t, pts[0], v[7].Position)
}

func TestOpacityStaysInUnitRange(t *testing.T) {
	ctx := expression.NewContext(15, 31)
	pts := [][3]float32{{0, 0, 0}, {1, 0, 0}}

	cases := []struct {
		opacity scene.AnimatedValue
		want    float32
	}{
		{scene.Expr("0 / 0"), 0},
		{scene.Expr("sqrt(-1)"), 0},
		{scene.Expr("1.0 / 0.0"), 0},
		{scene.Expr("t * 4"), 1},
		{scene.Expr("-t"), 0},
		{scene.Expr("frame / 30"), 0},
		{scene.Static(0.25), 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.opacity.Expression(), func(t *testing.T) {
			el := scene.NewLine(pts...)
			el.Opacity = tc.opacity
			v := NewLine(el).Vertices(ctx)
			require.Len(t, v, 2)
			assert.Equal(t, tc.want, v[0].Color[3])
		})
	}
}

func TestParticlesAreDeterministicAndBounded(t *testing.T) {
	bounds := [3]float32{4, 6, 8}
	a := ParticlePositions(200, bounds, 0)
	b := ParticlePositions(200, bounds, 12345)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, ParticlePositions(200, bounds, 7))

	for _, p := range a {
		for k := 0; k < 3; k++ {
			assert.LessOrEqual(t, math32.Abs(p[k]), bounds[k]/2)
		}
	}

	el := scene.NewParticles()
	el.Count = 10
	v := NewParticles(el).Vertices(expression.NewContext(0, 1))
	assert.Len(t, v, 40)
}

func TestParticleFirstDraw(t *testing.T) {
	seed := uint64(12345)*1103515245 + 12345
	want := (float32((seed>>16)&0xFFFF)/65535 - 0.5) * 10
	got := ParticlePositions(1, [3]float32{10, 10, 10}, 0)
	assert.Equal(t, want, got[0][0])
}

func TestParticleDepthFade(t *testing.T) {
	el := scene.NewParticles()
	el.Count = 50
	p := NewParticles(el)
	ctx := expression.NewContext(0, 1)
	v := p.Vertices(ctx)
	for i, pos := range p.positions {
		want := 1 - math32.Min(math32.Abs(pos[2])/5, 1)*0.7
		assert.InDelta(t, want, v[i*4].Color[3], 1e-6)
	}

	el.DepthFade = false
	for _, vert := range NewParticles(el).Vertices(ctx) {
		assert.Equal(t, float32(1), vert.Color[3])
	}
}

func TestAxes(t *testing.T) {
	el := scene.NewAxes()
	el.Length = 2
	el.Position = [3]float32{1, 1, 1}
	el.Opacity = scene.Static(0.5)

	v := NewAxes(el).Vertices(expression.NewContext(0, 1))
	require.Len(t, v, 18)
	assert.Equal(t, [3]float32{3, 1, 1}, v[1].Position)
	assert.Equal(t, [3]float32{1, 3, 1}, v[3].Position)
	assert.Equal(t, [3]float32{1, 1, 3}, v[5].Position)
	assert.Equal(t, [4]float32{1, 0, 0, 0.5}, v[0].Color)
	assert.Equal(t, [4]float32{0, 0, 1, 0.5}, v[17].Color)
	assert.InDelta(t, 3-0.3, v[7].Position[0], 1e-6)
	assert.InDelta(t, 1+0.15, v[7].Position[1], 1e-6)
}

func TestGlyphTypeAnimation(t *testing.T) {
	el := scene.NewGlyph("HELLO")
	el.Animation = scene.GlyphAnimationType
	g := NewGlyph(el)

	assert.Equal(t, "", g.VisibleText(expression.NewContext(0, 11)))
	assert.Empty(t, g.Vertices(expression.NewContext(0, 11)))
	assert.Equal(t, "HE", g.VisibleText(expression.NewContext(4, 11)))
	assert.Equal(t, "HELLO", g.VisibleText(expression.NewContext(10, 11)))
}

func TestGlyphFlickerRange(t *testing.T) {
	el := scene.NewGlyph("X")
	el.Animation = scene.GlyphAnimationFlicker
	el.Opacity = scene.Static(0.5)
	g := NewGlyph(el)

	for f := uint32(0); f < 30; f++ {
		o := g.Opacity(expression.NewContext(f, 30))
		assert.GreaterOrEqual(t, o, float32(0.35))
		assert.LessOrEqual(t, o, float32(0.5))
	}
	frame := float32(3)
	want := float32(0.5) * ((math32.Sin(frame*7.3)*0.5+0.5)*0.3 + 0.7)
	assert.Equal(t, want, g.Opacity(expression.NewContext(3, 30)))
}

func TestGlyphLayout(t *testing.T) {
	ctx := expression.NewContext(0, 1)

	upper := NewGlyph(scene.NewGlyph("AB")).Vertices(ctx)
	lower := NewGlyph(scene.NewGlyph("ab")).Vertices(ctx)
	assert.Equal(t, upper, lower)

	// unknown characters fall back to a four-segment box
	box := NewGlyph(scene.NewGlyph("~")).Vertices(ctx)
	assert.Len(t, box, 8)
	assert.False(t, GlyphSupported('~'))
	assert.True(t, GlyphSupported('q'))
	assert.Empty(t, NewGlyph(scene.NewGlyph(" ")).Vertices(ctx))

	el := scene.NewGlyph("L")
	el.Position = [3]float32{1, 2, 3}
	v := NewGlyph(el).Vertices(ctx)
	require.Len(t, v, 4)
	// 'L' starts at the top-left of its cell, which sits half an advance left of the position
	assert.InDelta(t, 1-0.3, v[0].Position[0], 1e-6)
	assert.InDelta(t, 3, v[0].Position[1], 1e-6)
	assert.Equal(t, float32(3), v[0].Position[2])
}

func TestVertexBytes(t *testing.T) {
	v := []LineVertex{
		{Position: [3]float32{1, 2, 3}, Color: [4]float32{0.1, 0.2, 0.3, 0.4}},
		{Position: [3]float32{-1, 0, 5}, Color: [4]float32{1, 1, 1, 1}},
	}
	b := VertexBytes(v)
	require.Len(t, b, 2*LineVertexSize)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(b[8:])))
	assert.Equal(t, float32(0.4), math.Float32frombits(binary.LittleEndian.Uint32(b[24:])))
	assert.Equal(t, float32(-1), math.Float32frombits(binary.LittleEndian.Uint32(b[28:])))
}

func TestCollectKeepsElementOrder(t *testing.T) {
	line := scene.NewLine([3]float32{0, 0, 0}, [3]float32{1, 0, 0})
	axes := scene.NewAxes()
	ctx := expression.NewContext(0, 1)

	v, err := Collect([]scene.Element{line, axes}, ctx)
	require.NoError(t, err)
	require.Len(t, v, 2+18)
	assert.Equal(t, [3]float32{1, 0, 0}, v[1].Position)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, v[2].Color)

	_, err = Collect([]scene.Element{nil}, ctx)
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	docs := Catalog()
	require.Len(t, docs, len(scene.ElementTypes))
	for i, d := range docs {
		assert.Equal(t, scene.ElementTypes[i], d.Name)
		assert.NotEmpty(t, d.Params)
	}
	_, err := Lookup("sprite")
	assert.EqualError(t, err, "Unknown primitive: sprite")
}
