package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a scene file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat maps a format name or file extension (with or without the dot) to a Format.
//
// Parameters:
//   - name: "json", "yaml", "yml" or "toml"
//
// Returns:
//   - Format: the matching format
//   - error: an error for unsupported names
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported scene format %q (expected json, yaml or toml)", name)
}

// Load reads the scene file at path, choosing the decoder from its extension. Unknown extensions are read as JSON.
//
// Parameters:
//   - path: the scene file path
//
// Returns:
//   - *Scene: the decoded scene, not yet validated
//   - error: an error if the file cannot be read or decoded
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		format = FormatJSON
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene from data. YAML and TOML documents are normalized to JSON before decoding so all
// formats share the same defaults and element tagging.
//
// Parameters:
//   - data: the encoded scene
//   - format: the encoding of data
//
// Returns:
//   - *Scene: the decoded scene, not yet validated
//   - error: an error if data is malformed
func Parse(data []byte, format Format) (*Scene, error) {
	var doc []byte
	switch format {
	case FormatJSON:
		doc = data
	case FormatYAML:
		var m any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		b, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		doc = b
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		b, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		doc = b
	default:
		return nil, fmt.Errorf("unsupported scene format %q", format)
	}

	var s Scene
	if err := json.Unmarshal(doc, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Encode serializes s in the given format. JSON output is indented with two spaces.
//
// Parameters:
//   - s: the scene to encode
//   - format: the target encoding
//
// Returns:
//   - []byte: the encoded document
//   - error: an error if encoding fails
func Encode(s *Scene, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(s, "", "  ")
	}

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	doc := normalize(m)

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(doc)
	}
	return nil, fmt.Errorf("unsupported scene format %q", format)
}

// normalize drops nulls and converts json.Number into int64 or float64 so YAML and TOML emit plain numbers.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			if val == nil {
				continue
			}
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, val := range t {
			if val == nil {
				continue
			}
			out = append(out, normalize(val))
		}
		return out
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	default:
		return v
	}
}
