package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ElementType is the "type" tag of a scene element.
type ElementType string

const (
	ElementGrid      ElementType = "grid"
	ElementWireframe ElementType = "wireframe"
	ElementGlyph     ElementType = "glyph"
	ElementLine      ElementType = "line"
	ElementParticles ElementType = "particles"
	ElementAxes      ElementType = "axes"
)

// ElementTypes lists every element type in documentation order.
var ElementTypes = []ElementType{ElementGrid, ElementWireframe, ElementGlyph, ElementLine, ElementParticles, ElementAxes}

// Element is the closed set of visual elements a scene can hold.
// The concrete types are *Grid, *Wireframe, *Glyph, *Line, *Particles and *Axes.
type Element interface {
	// Type returns the element's tag.
	//
	// Returns:
	//   - ElementType: the tag used in scene files
	Type() ElementType

	element()
}

// GeometryType names a parametric solid drawn by a wireframe element.
type GeometryType string

const (
	GeometryCube     GeometryType = "cube"
	GeometrySphere   GeometryType = "sphere"
	GeometryTorus    GeometryType = "torus"
	GeometryIco      GeometryType = "ico"
	GeometryCylinder GeometryType = "cylinder"
)

// GeometryTypes lists every geometry in documentation order.
var GeometryTypes = []GeometryType{GeometryCube, GeometrySphere, GeometryTorus, GeometryIco, GeometryCylinder}

func (g *GeometryType) UnmarshalText(b []byte) error {
	v := GeometryType(b)
	for _, known := range GeometryTypes {
		if v == known {
			*g = v
			return nil
		}
	}
	return fmt.Errorf("unknown geometry %q (expected cube, sphere, torus, ico or cylinder)", string(b))
}

// GlyphAnimation selects how glyph text is revealed over time.
type GlyphAnimation string

const (
	GlyphAnimationNone    GlyphAnimation = "none"
	GlyphAnimationType    GlyphAnimation = "type"
	GlyphAnimationFlicker GlyphAnimation = "flicker"
)

func (g *GlyphAnimation) UnmarshalText(b []byte) error {
	switch v := GlyphAnimation(b); v {
	case GlyphAnimationNone, GlyphAnimationType, GlyphAnimationFlicker:
		*g = v
		return nil
	}
	return fmt.Errorf("unknown glyph animation %q (expected none, type or flicker)", string(b))
}

const defaultColor = "#00ff41"

// Grid is a square ground-plane grid on y=0 that fades toward its edges.
type Grid struct {
	Divisions    uint32        `json:"divisions"`
	FadeDistance float32       `json:"fade_distance"`
	Color        string        `json:"color"`
	Opacity      AnimatedValue `json:"opacity"`
}

// Wireframe draws the edges of a parametric solid.
type Wireframe struct {
	Geometry  GeometryType  `json:"geometry"`
	Position  [3]float32    `json:"position"`
	Rotation  Rotation      `json:"rotation"`
	Scale     Scale         `json:"scale"`
	Color     string        `json:"color"`
	Thickness float32       `json:"thickness"`
	Opacity   AnimatedValue `json:"opacity"`
}

// Glyph draws text with the built-in stroke font.
type Glyph struct {
	Text      string         `json:"text"`
	FontSize  float32        `json:"font_size"`
	Position  [3]float32     `json:"position"`
	Color     string         `json:"color"`
	Animation GlyphAnimation `json:"animation"`
	Opacity   AnimatedValue  `json:"opacity"`
}

// Line draws a polyline through explicit points.
type Line struct {
	Points    [][3]float32  `json:"points"`
	Closed    bool          `json:"closed"`
	Thickness float32       `json:"thickness"`
	Glow      float32       `json:"glow"`
	Color     string        `json:"color"`
	Opacity   AnimatedValue `json:"opacity"`
}

// Particles draws a seeded pseudo-random point cloud of small crosses.
type Particles struct {
	Count     uint32        `json:"count"`
	Bounds    [3]float32    `json:"bounds"`
	Size      float32       `json:"size"`
	DepthFade bool          `json:"depth_fade"`
	Color     string        `json:"color"`
	Opacity   AnimatedValue `json:"opacity"`
	Seed      uint64        `json:"seed"`
}

// AxisColors holds the hex color of each axis.
type AxisColors struct {
	X string `json:"x"`
	Y string `json:"y"`
	Z string `json:"z"`
}

// Axes draws X, Y and Z arrows from a position.
type Axes struct {
	Length    float32       `json:"length"`
	Colors    AxisColors    `json:"colors"`
	Position  [3]float32    `json:"position"`
	Thickness float32       `json:"thickness"`
	Opacity   AnimatedValue `json:"opacity"`
}

func (*Grid) Type() ElementType      { return ElementGrid }
func (*Wireframe) Type() ElementType { return ElementWireframe }
func (*Glyph) Type() ElementType     { return ElementGlyph }
func (*Line) Type() ElementType      { return ElementLine }
func (*Particles) Type() ElementType { return ElementParticles }
func (*Axes) Type() ElementType      { return ElementAxes }

func (*Grid) element()      {}
func (*Wireframe) element() {}
func (*Glyph) element()     {}
func (*Line) element()      {}
func (*Particles) element() {}
func (*Axes) element()      {}

// NewGrid returns a Grid with default parameters.
func NewGrid() *Grid {
	return &Grid{Divisions: 20, FadeDistance: 50, Color: defaultColor, Opacity: Static(0.5)}
}

// NewWireframe returns a cube Wireframe with default parameters.
func NewWireframe() *Wireframe {
	return &Wireframe{
		Geometry:  GeometryCube,
		Scale:     UniformScale(Static(1)),
		Color:     defaultColor,
		Thickness: 2,
		Opacity:   Static(1),
	}
}

// NewGlyph returns a Glyph for text with default parameters.
func NewGlyph(text string) *Glyph {
	return &Glyph{Text: text, FontSize: 1, Color: defaultColor, Animation: GlyphAnimationNone, Opacity: Static(1)}
}

// NewLine returns a Line through points with default parameters.
func NewLine(points ...[3]float32) *Line {
	return &Line{Points: points, Thickness: 2, Glow: 0.5, Color: defaultColor, Opacity: Static(1)}
}

// NewParticles returns a Particles element with default parameters.
func NewParticles() *Particles {
	return &Particles{
		Count:     100,
		Bounds:    [3]float32{10, 10, 10},
		Size:      2,
		DepthFade: true,
		Color:     defaultColor,
		Opacity:   Static(1),
	}
}

// NewAxes returns an Axes element with default parameters.
func NewAxes() *Axes {
	return &Axes{
		Length:    1,
		Colors:    AxisColors{X: "#ff0000", Y: "#00ff00", Z: "#0000ff"},
		Thickness: 2,
		Opacity:   Static(1),
	}
}

// DecodeElement decodes one tagged element, filling unspecified fields with defaults.
//
// Parameters:
//   - raw: the JSON object including its "type" field
//
// Returns:
//   - Element: the decoded element
//   - error: an error for unknown types or malformed fields
func DecodeElement(raw []byte) (Element, error) {
	var tag struct {
		Type *ElementType `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}
	if tag.Type == nil {
		return nil, fmt.Errorf("missing field `type`")
	}

	var e Element
	switch *tag.Type {
	case ElementGrid:
		e = NewGrid()
	case ElementWireframe:
		e = NewWireframe()
	case ElementGlyph:
		e = &Glyph{FontSize: 1, Color: defaultColor, Animation: GlyphAnimationNone, Opacity: Static(1)}
	case ElementLine:
		e = NewLine()
	case ElementParticles:
		e = NewParticles()
	case ElementAxes:
		e = NewAxes()
	default:
		return nil, fmt.Errorf("unknown element type %q", string(*tag.Type))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(e); err != nil {
		return nil, fmt.Errorf("%s: %w", *tag.Type, err)
	}

	if err := checkRequired(e, raw); err != nil {
		return nil, err
	}
	return e, nil
}

// checkRequired reports fields that have no default and were omitted.
func checkRequired(e Element, raw []byte) error {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return err
	}
	var required []string
	switch e.(type) {
	case *Glyph:
		required = []string{"text"}
	case *Line:
		required = []string{"points"}
	}
	for _, k := range required {
		if _, ok := keys[k]; !ok {
			return fmt.Errorf("%s: missing field `%s`", e.Type(), k)
		}
	}
	return nil
}

// EncodeElement encodes e as a JSON object with its "type" tag first.
//
// Parameters:
//   - e: the element to encode
//
// Returns:
//   - []byte: the tagged JSON object
//   - error: an error if the element cannot be encoded
func EncodeElement(e Element) ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	tag, _ := json.Marshal(e.Type())
	out := make([]byte, 0, len(body)+len(tag)+9)
	out = append(out, `{"type":`...)
	out = append(out, tag...)
	if len(body) > 2 {
		out = append(out, ',')
		out = append(out, body[1:]...)
	} else {
		out = append(out, '}')
	}
	return out, nil
}
