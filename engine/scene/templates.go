package scene

import (
	"fmt"
	"strings"
)

// TemplateInfo names a built-in starter scene.
type TemplateInfo struct {
	Name        string
	Description string
}

var templates = []struct {
	TemplateInfo
	build func() *Scene
}{
	{TemplateInfo{"spinning-cube", "Rotating wireframe cube over a fading grid"}, spinningCube},
	{TemplateInfo{"grid-flythrough", "Wide grid with XYZ axes from a low camera"}, gridFlythrough},
	{TemplateInfo{"text-terminal", "Typed and flickering terminal text with an underline"}, textTerminal},
}

// Templates lists the built-in starter scenes.
//
// Returns:
//   - []TemplateInfo: the template names and descriptions
func Templates() []TemplateInfo {
	out := make([]TemplateInfo, len(templates))
	for i, t := range templates {
		out[i] = t.TemplateInfo
	}
	return out
}

// Template builds a fresh copy of the named starter scene.
//
// Parameters:
//   - name: the template name
//
// Returns:
//   - *Scene: the scene
//   - error: an error naming the available templates when name is unknown
func Template(name string) (*Scene, error) {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		if t.Name == name {
			return t.build(), nil
		}
		names = append(names, t.Name)
	}
	return nil, fmt.Errorf("Unknown template: %s. Available: %s", name, strings.Join(names, ", "))
}

func spinningCube() *Scene {
	s := New()

	grid := NewGrid()
	grid.Opacity = Static(0.3)

	cube := NewWireframe()
	cube.Position = [3]float32{0, 0.5, 0}
	cube.Rotation.Y = Expr("t * 360")

	s.Add(grid, cube)
	s.Post = PostProcessing{
		Bloom:               0.3,
		Scanlines:           &Scanlines{Intensity: 0.1, Count: 300},
		ChromaticAberration: 0.002,
		Noise:               0.02,
		Vignette:            0.3,
	}
	return s
}

func gridFlythrough() *Scene {
	s := New()
	s.Camera = Camera{Position: [3]float32{0, 2, 10}, FOV: 60}
	s.Duration = 3

	grid := NewGrid()
	grid.Divisions = 40
	grid.FadeDistance = 100

	axes := NewAxes()
	axes.Length = 2
	axes.Thickness = 3

	s.Add(grid, axes)
	s.Post = PostProcessing{
		Bloom:               0.4,
		Scanlines:           &Scanlines{Intensity: 0.15, Count: 400},
		ChromaticAberration: 0.003,
		Noise:               0.03,
		Vignette:            0.4,
	}
	return s
}

func textTerminal() *Scene {
	s := New()
	s.Camera = Camera{Position: [3]float32{0, 0, 5}, FOV: 45}

	title := NewGlyph("SYSTEM ONLINE")
	title.FontSize = 0.5
	title.Position = [3]float32{0, 1, 0}
	title.Animation = GlyphAnimationType

	prompt := NewGlyph("> READY")
	prompt.FontSize = 0.3
	prompt.Animation = GlyphAnimationFlicker
	prompt.Opacity = Static(0.8)

	underline := NewLine([3]float32{-2, -1, 0}, [3]float32{2, -1, 0})
	underline.Thickness = 1
	underline.Opacity = Static(0.5)

	s.Add(title, prompt, underline)
	s.Post = PostProcessing{
		Bloom:               0.5,
		Scanlines:           &Scanlines{Intensity: 0.2, Count: 300},
		ChromaticAberration: 0.004,
		Noise:               0.05,
		Vignette:            0.5,
	}
	return s
}
