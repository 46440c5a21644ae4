package scene

import (
	"fmt"

	"github.com/Carmen-Shannon/termcad/engine/expression"
)

// ValidationCategory classifies a ValidationError.
type ValidationCategory int

const (
	InvalidColor ValidationCategory = iota
	InvalidDimensions
	InvalidElement
	InvalidExpression
	InvalidValue
)

func (c ValidationCategory) String() string {
	switch c {
	case InvalidColor:
		return "Invalid color format"
	case InvalidDimensions:
		return "Invalid canvas dimensions"
	case InvalidElement:
		return "Invalid element configuration"
	case InvalidExpression:
		return "Invalid expression"
	default:
		return "Invalid value"
	}
}

// ValidationError describes the first range or shape violation found in a scene.
type ValidationError struct {
	Category ValidationCategory
	Message  string
}

func (e *ValidationError) Error() string {
	return e.Category.String() + ": " + e.Message
}

func invalid(c ValidationCategory, format string, args ...any) *ValidationError {
	return &ValidationError{Category: c, Message: fmt.Sprintf(format, args...)}
}

// Validate checks s against the documented ranges and returns the first violation.
//
// Returns:
//   - error: a *ValidationError, or nil when the scene is renderable
func (s *Scene) Validate() error {
	return Validate(s)
}

// Validate checks s in order: canvas, camera, timing, elements, then post-processing.
//
// Parameters:
//   - s: the scene to check
//
// Returns:
//   - error: a *ValidationError, or nil when the scene is renderable
func Validate(s *Scene) error {
	if err := validateCanvas(s.Canvas); err != nil {
		return err
	}
	if s.Camera.FOV <= 0 || s.Camera.FOV >= 180 {
		return invalid(InvalidValue, "FOV must be between 0 and 180 degrees")
	}
	if s.Duration <= 0 {
		return invalid(InvalidValue, "duration must be positive")
	}
	if s.FPS == 0 || s.FPS > 120 {
		return invalid(InvalidValue, "fps must be between 1 and 120")
	}
	for i, e := range s.Elements {
		if err := validateElement(e); err != nil {
			return invalid(InvalidElement, "Element %d: %s", i, err.Error())
		}
	}
	return validatePost(s.Post)
}

func validateCanvas(c Canvas) error {
	if c.Width == 0 || c.Width > 4096 {
		return invalid(InvalidDimensions, "width must be between 1 and 4096")
	}
	if c.Height == 0 || c.Height > 4096 {
		return invalid(InvalidDimensions, "height must be between 1 and 4096")
	}
	return validateColor(c.Background)
}

func validateElement(e Element) error {
	switch el := e.(type) {
	case *Grid:
		return firstError(
			validateColor(el.Color),
			validateOpacity(el.Opacity),
			check(el.Divisions > 0, "divisions must be positive"),
			check(el.FadeDistance > 0, "fade_distance must be positive"),
		)
	case *Wireframe:
		errs := []error{
			validateColor(el.Color),
			validateOpacity(el.Opacity),
			validateThickness(el.Thickness),
			validateAnimated(el.Rotation.X, "rotation.x"),
			validateAnimated(el.Rotation.Y, "rotation.y"),
			validateAnimated(el.Rotation.Z, "rotation.z"),
		}
		for _, v := range el.Scale.Values() {
			errs = append(errs, validateAnimated(v, "scale"))
		}
		return firstError(errs...)
	case *Glyph:
		return firstError(
			validateColor(el.Color),
			validateOpacity(el.Opacity),
			check(el.Text != "", "glyph text cannot be empty"),
			check(el.FontSize > 0, "font_size must be positive"),
		)
	case *Line:
		return firstError(
			validateColor(el.Color),
			validateOpacity(el.Opacity),
			validateThickness(el.Thickness),
			check(len(el.Points) >= 2, "line must have at least 2 points"),
			check(el.Glow >= 0 && el.Glow <= 1, "glow must be between 0.0 and 1.0"),
		)
	case *Particles:
		return firstError(
			validateColor(el.Color),
			validateOpacity(el.Opacity),
			check(el.Count > 0, "particle count must be positive"),
			check(el.Size > 0, "particle size must be positive"),
		)
	case *Axes:
		return firstError(
			validateColor(el.Colors.X),
			validateColor(el.Colors.Y),
			validateColor(el.Colors.Z),
			validateOpacity(el.Opacity),
			validateThickness(el.Thickness),
			check(el.Length > 0, "axis length must be positive"),
		)
	case nil:
		return invalid(InvalidValue, "element is nil")
	default:
		return invalid(InvalidValue, "unsupported element %T", e)
	}
}

func validatePost(p PostProcessing) error {
	err := firstError(
		check(p.Bloom >= 0 && p.Bloom <= 1, "bloom must be between 0.0 and 1.0"),
		check(p.ChromaticAberration >= 0 && p.ChromaticAberration <= 0.1, "chromatic_aberration must be between 0.0 and 0.1"),
		check(p.Noise >= 0 && p.Noise <= 1, "noise must be between 0.0 and 1.0"),
		check(p.Vignette >= 0 && p.Vignette <= 1, "vignette must be between 0.0 and 1.0"),
		check(p.CRTCurvature >= 0 && p.CRTCurvature <= 1, "crt_curvature must be between 0.0 and 1.0"),
	)
	if err != nil || p.Scanlines == nil {
		return err
	}
	return firstError(
		check(p.Scanlines.Intensity >= 0 && p.Scanlines.Intensity <= 1, "scanline intensity must be between 0.0 and 1.0"),
		check(p.Scanlines.Count > 0, "scanline count must be positive"),
	)
}

func validateColor(hex string) error {
	if _, err := ParseHexColor(hex); err != nil {
		return invalid(InvalidColor, "%s", err.Error())
	}
	return nil
}

func validateOpacity(v AnimatedValue) error {
	if !v.IsExpression() {
		return check(v.StaticValue() >= 0 && v.StaticValue() <= 1, "opacity must be between 0.0 and 1.0")
	}
	return validateAnimated(v, "opacity")
}

// validateAnimated requires expressions to evaluate at the first frame of a 30-frame animation.
func validateAnimated(v AnimatedValue, field string) error {
	if !v.IsExpression() {
		return nil
	}
	if _, err := v.TryEvaluate(expression.NewContext(0, 30)); err != nil {
		return invalid(InvalidExpression, "%s '%s': %s", field, v.Expression(), err.Error())
	}
	return nil
}

func validateThickness(t float32) error {
	return check(t > 0, "thickness must be positive")
}

func check(ok bool, msg string) error {
	if ok {
		return nil
	}
	return invalid(InvalidValue, "%s", msg)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
