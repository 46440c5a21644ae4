package primitives

import (
	"fmt"

	"github.com/Carmen-Shannon/termcad/engine/scene"
)

// ParamDoc describes one element parameter.
type ParamDoc struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Doc describes an element type for command-line help.
type Doc struct {
	Name    scene.ElementType `json:"name"`
	Summary string            `json:"summary"`
	Params  []ParamDoc        `json:"params"`
}

var catalog = []Doc{
	{scene.ElementGrid, "Infinite perspective plane", []ParamDoc{
		{"divisions", "Number of grid lines (default: 20)"},
		{"fade_distance", "Distance at which grid fades out (default: 50.0)"},
		{"color", `Hex color (default: "#00ff41")`},
		{"opacity", "0.0 to 1.0 (default: 0.5)"},
	}},
	{scene.ElementWireframe, "Edge-only geometry (cube, sphere, torus, ico, cylinder)", []ParamDoc{
		{"geometry", "Shape: cube, sphere, torus, ico, cylinder"},
		{"scale", "Uniform scale, [x, y, z] or { x, y, z }, supports expressions (default: 1.0)"},
		{"color", `Hex color (default: "#00ff41")`},
		{"thickness", "Line width in pixels (default: 2.0)"},
		{"position", "[x, y, z] (default: [0, 0, 0])"},
		{"rotation", "{ x, y, z } in degrees, supports expressions"},
		{"opacity", "0.0 to 1.0, supports expressions (default: 1.0)"},
	}},
	{scene.ElementGlyph, "Monospace text in 3D space", []ParamDoc{
		{"text", "Text string to display"},
		{"font_size", "Size in world units (default: 1.0)"},
		{"position", "[x, y, z] (default: [0, 0, 0])"},
		{"color", `Hex color (default: "#00ff41")`},
		{"animation", `"type", "flicker", or "none" (default: "none")`},
		{"opacity", "0.0 to 1.0, supports expressions (default: 1.0)"},
	}},
	{scene.ElementLine, "Vector path with glow", []ParamDoc{
		{"points", "Array of [x, y, z] coordinates"},
		{"closed", "Connect last point to first (default: false)"},
		{"thickness", "Line width in pixels (default: 2.0)"},
		{"glow", "Glow intensity 0.0-1.0 (default: 0.5)"},
		{"color", `Hex color (default: "#00ff41")`},
		{"opacity", "0.0 to 1.0, supports expressions (default: 1.0)"},
	}},
	{scene.ElementParticles, "Scattered point field", []ParamDoc{
		{"count", "Number of particles (default: 100)"},
		{"bounds", "[x, y, z] extents (default: [10, 10, 10])"},
		{"size", "Particle size in pixels (default: 2.0)"},
		{"depth_fade", "Fade based on depth (default: true)"},
		{"color", `Hex color (default: "#00ff41")`},
		{"seed", "Random seed, 0 for the default sequence (default: 0)"},
		{"opacity", "0.0 to 1.0, supports expressions (default: 1.0)"},
	}},
	{scene.ElementAxes, "XYZ indicator", []ParamDoc{
		{"length", "Axis length (default: 1.0)"},
		{"colors", "{ x, y, z } hex colors"},
		{"position", "[x, y, z] (default: [0, 0, 0])"},
		{"thickness", "Line width in pixels (default: 2.0)"},
		{"opacity", "0.0 to 1.0, supports expressions (default: 1.0)"},
	}},
}

// Catalog returns the documentation of every element type.
//
// Returns:
//   - []Doc: one entry per element type in documentation order
func Catalog() []Doc {
	out := make([]Doc, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the documentation for the named element type.
//
// Parameters:
//   - name: the element type name
//
// Returns:
//   - Doc: the documentation
//   - error: an error when name is not an element type
func Lookup(name string) (Doc, error) {
	for _, d := range catalog {
		if string(d.Name) == name {
			return d, nil
		}
	}
	return Doc{}, fmt.Errorf("Unknown primitive: %s", name)
}
