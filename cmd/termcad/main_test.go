package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/termcad/common"
	"github.com/Carmen-Shannon/termcad/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeScene(t *testing.T, name string, sc *scene.Scene, format scene.Format) string {
	t.Helper()
	doc, err := scene.Encode(sc, format)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, doc, 0o644))
	return path
}

func TestValidate(t *testing.T) {
	sc, err := scene.Template("spinning-cube")
	require.NoError(t, err)
	path := writeScene(t, "cube.yaml", sc, scene.FormatYAML)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Scene is valid\n"))
	assert.Contains(t, out, "  Canvas: 800x600\n")
	assert.Contains(t, out, "  Total frames: ")
	assert.Contains(t, out, "  Elements: 2\n")
}

func TestValidateErrors(t *testing.T) {
	_, err := execute(t, "validate", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, 3, common.ExitCode(err))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"fps": 0}`), 0o644))
	_, err = execute(t, "validate", bad)
	require.Error(t, err)
	assert.Equal(t, 1, common.ExitCode(err))
	assert.True(t, strings.HasPrefix(err.Error(), "Invalid scene: "))
}

func TestInitFormats(t *testing.T) {
	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			out, err := execute(t, "init", "--template", "text-terminal", "--format", format)
			require.NoError(t, err)

			f, err := scene.ParseFormat(format)
			require.NoError(t, err)
			sc, err := scene.Parse([]byte(out), f)
			require.NoError(t, err)
			assert.NoError(t, scene.Validate(sc))
		})
	}
}

func TestInitUnknownTemplate(t *testing.T) {
	_, err := execute(t, "init", "--template", "nope")
	require.Error(t, err)
	assert.Equal(t, 1, common.ExitCode(err))
	assert.Contains(t, err.Error(), "Unknown template: nope")
}

func TestPrimitives(t *testing.T) {
	out, err := execute(t, "primitives")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Available primitives:\n"))
	assert.Contains(t, out, "  grid        Infinite perspective plane\n")

	out, err = execute(t, "primitives", "axes")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "axes - XYZ indicator\n"))
	assert.Contains(t, out, "Parameters:\n")

	_, err = execute(t, "primitives", "teapot")
	require.Error(t, err)
	assert.Equal(t, 1, common.ExitCode(err))
}

func TestInfoJSON(t *testing.T) {
	out, err := execute(t, "info", "--json", "--gpu=false")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "termcad", got["name"])
	assert.Equal(t, version, got["version"])
	assert.Len(t, got["primitives"], 6)
	assert.Len(t, got["geometries"], 5)
	assert.Len(t, got["post_effects"], 6)
	assert.Contains(t, got, "host")
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "cube.gif", defaultOutput("scenes/cube.json", false))
	assert.Equal(t, "cube_frames", defaultOutput("scenes/cube.json", true))
	assert.Equal(t, "intro.gif", defaultOutput("intro", false))
}
