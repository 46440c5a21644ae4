package primitives

import (
	"unicode/utf8"

	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/chewxy/math32"
)

const (
	// glyphAdvance is the horizontal cell size relative to the font size.
	glyphAdvance = 0.6

	// glyphInk is the share of the cell the strokes occupy; the rest is spacing.
	glyphInk = 0.8
)

// Glyph draws text centered horizontally on a position using the stroke font.
type Glyph struct {
	text      []rune
	fontSize  float32
	position  [3]float32
	animation scene.GlyphAnimation
	color     [4]float32
	opacity   scene.AnimatedValue
}

// NewGlyph builds the producer for a glyph element.
func NewGlyph(e *scene.Glyph) *Glyph {
	return &Glyph{
		text:      []rune(e.Text),
		fontSize:  e.FontSize,
		position:  e.Position,
		animation: e.Animation,
		color:     scene.ColorOr(e.Color, fallbackColor),
		opacity:   e.Opacity,
	}
}

// VisibleText returns the characters shown at ctx. The type animation reveals floor(t * len) characters.
//
// Parameters:
//   - ctx: the frame context
//
// Returns:
//   - string: the visible prefix of the text
func (g *Glyph) VisibleText(ctx expression.Context) string {
	return string(g.visible(ctx))
}

func (g *Glyph) visible(ctx expression.Context) []rune {
	if g.animation != scene.GlyphAnimationType {
		return g.text
	}
	n := int(math32.Floor(ctx.T * float32(len(g.text))))
	n = max(0, min(n, len(g.text)))
	return g.text[:n]
}

// Opacity returns the clamped opacity at ctx, modulated into [0.7, 1] of it by the flicker animation.
//
// Parameters:
//   - ctx: the frame context
//
// Returns:
//   - float32: the glyph alpha
func (g *Glyph) Opacity(ctx expression.Context) float32 {
	base := opacityOf(g.opacity, ctx)
	if g.animation != scene.GlyphAnimationFlicker {
		return base
	}
	flicker := (math32.Sin(float32(ctx.Frame)*7.3)*0.5+0.5)*0.3 + 0.7
	return base * flicker
}

func (g *Glyph) Vertices(ctx expression.Context) []LineVertex {
	text := g.visible(ctx)
	c := withAlpha(g.color, g.Opacity(ctx))

	cellW := g.fontSize * glyphAdvance
	cellH := g.fontSize
	startX := g.position[0] - float32(len(text))*cellW/2
	y, z := g.position[1], g.position[2]

	var out []LineVertex
	for i, r := range text {
		x := startX + float32(i)*cellW
		for _, s := range glyphStrokes(r) {
			x0, y0, x1, y1 := s.scaled(cellW*glyphInk, cellH)
			out = append(out,
				LineVertex{[3]float32{x + x0, y + y0, z}, c},
				LineVertex{[3]float32{x + x1, y + y1, z}, c},
			)
		}
	}
	return out
}

// GlyphSupported reports whether r has a dedicated stroke pattern rather than the fallback box.
//
// Parameters:
//   - r: the character
//
// Returns:
//   - bool: true if the font defines r (case-insensitively)
func GlyphSupported(r rune) bool {
	if r >= utf8.RuneSelf {
		return false
	}
	_, ok := strokeFont[toUpperASCII(r)]
	return ok
}

func glyphStrokes(r rune) []stroke {
	if r < utf8.RuneSelf {
		if s, ok := strokeFont[toUpperASCII(r)]; ok {
			return s
		}
	}
	return boxStrokes
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
