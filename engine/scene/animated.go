package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/termcad/engine/expression"
)

// AnimatedValue is either a static number or an expression evaluated per frame.
// The zero value is the static value 0.
type AnimatedValue struct {
	value  float32
	expr   string
	isExpr bool
}

// Static returns an AnimatedValue that always evaluates to v.
func Static(v float32) AnimatedValue {
	return AnimatedValue{value: v}
}

// Expr returns an AnimatedValue that evaluates source every frame.
func Expr(source string) AnimatedValue {
	return AnimatedValue{expr: source, isExpr: true}
}

// IsExpression reports whether the value is an expression.
func (a AnimatedValue) IsExpression() bool {
	return a.isExpr
}

// Expression returns the expression source, or "" for static values.
func (a AnimatedValue) Expression() string {
	return a.expr
}

// StaticValue returns the static number, or 0 for expressions.
func (a AnimatedValue) StaticValue() float32 {
	return a.value
}

// TryEvaluate evaluates the value for ctx and reports expression failures.
//
// Parameters:
//   - ctx: the frame context
//
// Returns:
//   - float32: the evaluated value
//   - error: the expression error, if any
func (a AnimatedValue) TryEvaluate(ctx expression.Context) (float32, error) {
	if !a.isExpr {
		return a.value, nil
	}
	return expression.Evaluate(a.expr, ctx)
}

// Evaluate evaluates the value for ctx. Failed expressions yield 0.
//
// Parameters:
//   - ctx: the frame context
//
// Returns:
//   - float32: the evaluated value
func (a AnimatedValue) Evaluate(ctx expression.Context) float32 {
	v, err := a.TryEvaluate(ctx)
	if err != nil {
		return 0
	}
	return v
}

func (a AnimatedValue) MarshalJSON() ([]byte, error) {
	if a.isExpr {
		return json.Marshal(a.expr)
	}
	return json.Marshal(a.value)
}

func (a *AnimatedValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Expr(s)
		return nil
	}
	var f float32
	if err := json.Unmarshal(b, &f); err != nil {
		return errors.New("expected a number or an expression string")
	}
	*a = Static(f)
	return nil
}

// Rotation holds per-axis rotation angles in degrees.
type Rotation struct {
	X AnimatedValue `json:"x"`
	Y AnimatedValue `json:"y"`
	Z AnimatedValue `json:"z"`
}

// Degrees evaluates the three angles for ctx.
func (r Rotation) Degrees(ctx expression.Context) [3]float32 {
	return [3]float32{r.X.Evaluate(ctx), r.Y.Evaluate(ctx), r.Z.Evaluate(ctx)}
}

// ScaleKind identifies the variant held by a Scale.
type ScaleKind int

const (
	// ScaleUniform applies one (static or expression) factor to every axis.
	ScaleUniform ScaleKind = iota

	// ScaleVector applies fixed per-axis factors.
	ScaleVector

	// ScalePerAxis applies an animated factor per axis.
	ScalePerAxis
)

// Scale is a uniform factor, a fixed 3-vector, or three animated per-axis factors.
type Scale struct {
	kind    ScaleKind
	uniform AnimatedValue
	vector  [3]float32
	axes    [3]AnimatedValue
}

// UniformScale returns a Scale applying v to every axis.
func UniformScale(v AnimatedValue) Scale {
	return Scale{kind: ScaleUniform, uniform: v}
}

// VectorScale returns a Scale with fixed per-axis factors.
func VectorScale(x, y, z float32) Scale {
	return Scale{kind: ScaleVector, vector: [3]float32{x, y, z}}
}

// PerAxisScale returns a Scale with an animated factor per axis.
func PerAxisScale(x, y, z AnimatedValue) Scale {
	return Scale{kind: ScalePerAxis, axes: [3]AnimatedValue{x, y, z}}
}

// Kind returns the variant held by s.
func (s Scale) Kind() ScaleKind {
	return s.kind
}

// Values returns every AnimatedValue referenced by s, used for validation.
func (s Scale) Values() []AnimatedValue {
	switch s.kind {
	case ScaleUniform:
		return []AnimatedValue{s.uniform}
	case ScalePerAxis:
		return s.axes[:]
	default:
		return nil
	}
}

// Vec3 resolves the scale for ctx.
//
// Parameters:
//   - ctx: the frame context
//
// Returns:
//   - [3]float32: the per-axis scale factors
func (s Scale) Vec3(ctx expression.Context) [3]float32 {
	switch s.kind {
	case ScaleVector:
		return s.vector
	case ScalePerAxis:
		return [3]float32{s.axes[0].Evaluate(ctx), s.axes[1].Evaluate(ctx), s.axes[2].Evaluate(ctx)}
	default:
		v := s.uniform.Evaluate(ctx)
		return [3]float32{v, v, v}
	}
}

func (s Scale) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case ScaleVector:
		return json.Marshal(s.vector)
	case ScalePerAxis:
		return json.Marshal(map[string]AnimatedValue{"x": s.axes[0], "y": s.axes[1], "z": s.axes[2]})
	default:
		return json.Marshal(s.uniform)
	}
}

func (s *Scale) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return errors.New("empty scale")
	}
	switch b[0] {
	case '[':
		var vals []AnimatedValue
		if err := json.Unmarshal(b, &vals); err != nil {
			return fmt.Errorf("invalid scale vector: %w", err)
		}
		if len(vals) != 3 {
			return fmt.Errorf("scale vector must have 3 components, got %d", len(vals))
		}
		if !vals[0].isExpr && !vals[1].isExpr && !vals[2].isExpr {
			*s = VectorScale(vals[0].value, vals[1].value, vals[2].value)
			return nil
		}
		*s = PerAxisScale(vals[0], vals[1], vals[2])
		return nil
	case '{':
		axes := struct {
			X *AnimatedValue `json:"x"`
			Y *AnimatedValue `json:"y"`
			Z *AnimatedValue `json:"z"`
		}{}
		if err := json.Unmarshal(b, &axes); err != nil {
			return fmt.Errorf("invalid per-axis scale: %w", err)
		}
		one := Static(1)
		*s = PerAxisScale(derefOr(axes.X, one), derefOr(axes.Y, one), derefOr(axes.Z, one))
		return nil
	default:
		var v AnimatedValue
		if err := json.Unmarshal(b, &v); err != nil {
			return fmt.Errorf("invalid scale: %w", err)
		}
		*s = UniformScale(v)
		return nil
	}
}

func derefOr(v *AnimatedValue, fallback AnimatedValue) AnimatedValue {
	if v == nil {
		return fallback
	}
	return *v
}
