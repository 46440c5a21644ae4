package scene

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/termcad/engine/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScene = `{"canvas": {}}`

func TestParseAppliesDefaults(t *testing.T) {
	s, err := Parse([]byte(minimalScene), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, DefaultCanvas(), s.Canvas)
	assert.Equal(t, DefaultCamera(), s.Camera)
	assert.Equal(t, float32(2), s.Duration)
	assert.Equal(t, uint32(30), s.FPS)
	assert.True(t, s.Loop)
	assert.Empty(t, s.Elements)
	assert.Nil(t, s.Post.Scanlines)
	assert.Equal(t, uint32(60), s.TotalFrames())
}

func TestParseRequiresCanvas(t *testing.T) {
	_, err := Parse([]byte(`{"duration": 1}`), FormatJSON)
	assert.ErrorContains(t, err, "canvas")
}

func TestParsePartialNestedDefaults(t *testing.T) {
	doc := `{
		"canvas": {"width": 320},
		"camera": {"fov": 60},
		"post": {"scanlines": {"count": 120}},
		"elements": [
			{"type": "axes", "colors": {"x": "#ffffff"}},
			{"type": "grid"}
		]
	}`
	s, err := Parse([]byte(doc), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, uint32(320), s.Canvas.Width)
	assert.Equal(t, uint32(600), s.Canvas.Height)
	assert.Equal(t, [3]float32{5, 5, 5}, s.Camera.Position)
	assert.Equal(t, float32(60), s.Camera.FOV)
	require.NotNil(t, s.Post.Scanlines)
	assert.Equal(t, Scanlines{Intensity: 0.1, Count: 120}, *s.Post.Scanlines)

	require.Len(t, s.Elements, 2)
	axes := s.Elements[0].(*Axes)
	assert.Equal(t, AxisColors{X: "#ffffff", Y: "#00ff00", Z: "#0000ff"}, axes.Colors)
	assert.Equal(t, NewGrid(), s.Elements[1])
}

func TestDecodeElementVariants(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want Element
	}{
		{"grid", `{"type":"grid","divisions":4}`, &Grid{Divisions: 4, FadeDistance: 50, Color: "#00ff41", Opacity: Static(0.5)}},
		{"glyph", `{"type":"glyph","text":"HI","animation":"type"}`, &Glyph{Text: "HI", FontSize: 1, Color: "#00ff41", Animation: GlyphAnimationType, Opacity: Static(1)}},
		{"line", `{"type":"line","points":[[0,0,0],[1,0,0]],"closed":true}`, &Line{Points: [][3]float32{{0, 0, 0}, {1, 0, 0}}, Closed: true, Thickness: 2, Glow: 0.5, Color: "#00ff41", Opacity: Static(1)}},
		{"particles", `{"type":"particles","seed":7,"opacity":"t"}`, &Particles{Count: 100, Bounds: [3]float32{10, 10, 10}, Size: 2, DepthFade: true, Color: "#00ff41", Opacity: Expr("t"), Seed: 7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := DecodeElement([]byte(tc.doc))
			require.NoError(t, err)
			assert.Equal(t, tc.want, e)
		})
	}
}

func TestDecodeElementErrors(t *testing.T) {
	for _, doc := range []string{
		`{"divisions": 3}`,
		`{"type": "sprite"}`,
		`{"type": "wireframe", "geometry": "teapot"}`,
		`{"type": "glyph", "animation": "spin", "text": "x"}`,
		`{"type": "glyph"}`,
		`{"type": "line"}`,
		`{"type": "grid", "opacity": true}`,
	} {
		_, err := DecodeElement([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestScaleVariants(t *testing.T) {
	ctx := expression.NewContext(0, 2)

	var w Wireframe
	require.NoError(t, json.Unmarshal([]byte(`{"scale": 2}`), &w))
	assert.Equal(t, ScaleUniform, w.Scale.Kind())
	assert.Equal(t, [3]float32{2, 2, 2}, w.Scale.Vec3(ctx))

	require.NoError(t, json.Unmarshal([]byte(`{"scale": "1 + t"}`), &w))
	assert.Equal(t, ScaleUniform, w.Scale.Kind())
	assert.Equal(t, [3]float32{1, 1, 1}, w.Scale.Vec3(ctx))

	require.NoError(t, json.Unmarshal([]byte(`{"scale": [1, 2, 3]}`), &w))
	assert.Equal(t, ScaleVector, w.Scale.Kind())
	assert.Equal(t, [3]float32{1, 2, 3}, w.Scale.Vec3(ctx))

	require.NoError(t, json.Unmarshal([]byte(`{"scale": {"y": "2"}}`), &w))
	assert.Equal(t, ScalePerAxis, w.Scale.Kind())
	assert.Equal(t, [3]float32{1, 2, 1}, w.Scale.Vec3(ctx))

	assert.Error(t, json.Unmarshal([]byte(`{"scale": [1, 2]}`), &w))
}

func TestAnimatedValueEvaluateFallsBackToZero(t *testing.T) {
	ctx := expression.NewContext(3, 10)
	assert.Equal(t, float32(0.25), Static(0.25).Evaluate(ctx))
	assert.Equal(t, float32(0), Expr("nope(").Evaluate(ctx))

	_, err := Expr("nope(").TryEvaluate(ctx)
	assert.Error(t, err)
}

func TestTotalFrames(t *testing.T) {
	cases := []struct {
		duration float32
		fps      uint32
		want     uint32
	}{
		{2, 30, 60},
		{0.1, 30, 3},
		{1.01, 30, 31},
		{0.01, 1, 1},
	}
	for _, tc := range cases {
		s := New()
		s.Duration, s.FPS = tc.duration, tc.fps
		assert.Equal(t, tc.want, s.TotalFrames(), "%v*%v", tc.duration, tc.fps)
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	for _, info := range Templates() {
		src, err := Template(info.Name)
		require.NoError(t, err)

		for _, f := range []Format{FormatJSON, FormatYAML, FormatTOML} {
			t.Run(info.Name+"/"+string(f), func(t *testing.T) {
				data, err := Encode(src, f)
				require.NoError(t, err)

				got, err := Parse(data, f)
				require.NoError(t, err)
				assert.Equal(t, src, got)
			})
		}
	}
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "scene.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("canvas:\n  width: 64\n  height: 32\nelements:\n  - type: grid\n    divisions: 8\n"), 0o644))

	s, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, uint32(64), s.Canvas.Width)
	require.Len(t, s.Elements, 1)
	assert.Equal(t, uint32(8), s.Elements[0].(*Grid).Divisions)

	tomlPath := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte("fps = 12\n\n[canvas]\nwidth = 10\n\n[[elements]]\ntype = \"axes\"\n"), 0o644))

	s, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, uint32(12), s.FPS)
	require.Len(t, s.Elements, 1)
	assert.IsType(t, &Axes{}, s.Elements[0])

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestTemplates(t *testing.T) {
	names := []string{}
	for _, info := range Templates() {
		names = append(names, info.Name)
		s, err := Template(info.Name)
		require.NoError(t, err)
		assert.NoError(t, s.Validate(), info.Name)
	}
	assert.Equal(t, []string{"spinning-cube", "grid-flythrough", "text-terminal"}, names)

	s, _ := Template("spinning-cube")
	cube := s.Elements[1].(*Wireframe)
	assert.Equal(t, "t * 360", cube.Rotation.Y.Expression())

	_, err := Template("donut")
	assert.EqualError(t, err, "Unknown template: donut. Available: spinning-cube, grid-flythrough, text-terminal")
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, c)

	c, err = ParseHexColor("00FF00")
	require.NoError(t, err)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, c)

	for _, bad := range []string{"", "#fff", "#gg0000", "#ff00000"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, [4]float32{1, 1, 1, 1}, ColorOr("bad", [4]float32{1, 1, 1, 1}))
}
