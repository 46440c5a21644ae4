package scene

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses a #RRGGBB (or bare RRGGBB) color into normalized RGBA with alpha 1.
//
// Parameters:
//   - hex: the color string
//
// Returns:
//   - [4]float32: red, green, blue in [0, 1] and alpha 1
//   - error: an error when the string is not six hex digits
func ParseHexColor(hex string) ([4]float32, error) {
	digits := strings.TrimPrefix(hex, "#")
	if len(digits) != 6 {
		return [4]float32{}, fmt.Errorf("'%s' is not a valid hex color (expected #RRGGBB)", hex)
	}
	c, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return [4]float32{}, fmt.Errorf("'%s' is not a valid hex color (expected #RRGGBB)", hex)
	}
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}, nil
}

// ColorOr parses hex and falls back to fallback when it is not a valid color.
//
// Parameters:
//   - hex: the color string
//   - fallback: the color returned on parse failure
//
// Returns:
//   - [4]float32: the parsed or fallback color
func ColorOr(hex string, fallback [4]float32) [4]float32 {
	c, err := ParseHexColor(hex)
	if err != nil {
		return fallback
	}
	return c
}
