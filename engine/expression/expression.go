// Package expression evaluates the per-frame arithmetic expressions used by animated scene values.
//
// Expressions see the variables t (normalized time in [0, 1]), frame, total_frames, PI and TAU, the
// trigonometric and rounding functions, and the ease_in(t), ease_out(t) and ease_in_out(t) macros.
// Dividing two integers truncates, so frame / 4 steps once every four frames.
package expression

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

var (
	// ErrNotNumeric is returned when an expression evaluates to something other than a number.
	ErrNotNumeric = errors.New("expression did not evaluate to a number")

	// ErrNotFinite is returned when an expression evaluates to NaN or an infinity.
	ErrNotFinite = errors.New("expression did not evaluate to a finite number")

	// ErrDivisionByZero is returned when an integer is divided by zero.
	ErrDivisionByZero = errors.New("integer division by zero")
)

// Context carries the frame-dependent inputs of an expression evaluation.
type Context struct {
	// T is the normalized animation time in [0, 1].
	T float32
	// Frame is the zero-based index of the frame being rendered.
	Frame uint32
	// TotalFrames is the number of frames in the animation.
	TotalFrames uint32
}

// NewContext builds the Context for frame out of total. T is frame/(total-1) when total > 1 and 0 otherwise.
//
// Parameters:
//   - frame: the zero-based frame index
//   - total: the total number of frames
//
// Returns:
//   - Context: the evaluation context
func NewContext(frame, total uint32) Context {
	var t float32
	if total > 1 {
		t = float32(frame) / float32(total-1)
	}
	return Context{T: t, Frame: frame, TotalFrames: total}
}

// macros are substituted textually before compilation, in order. Only the literal (t) argument matches.
var macros = []struct{ from, to string }{
	{"ease_in_out(t)", "(3.0 * t * t - 2.0 * t * t * t)"},
	{"ease_in(t)", "(t * t)"},
	{"ease_out(t)", "(1.0 - (1.0 - t) * (1.0 - t))"},
}

// unaryFuncs are exposed to expressions by name and operate on float64.
var unaryFuncs = map[string]func(float64) float64{
	"sin":  math.Sin,
	"cos":  math.Cos,
	"tan":  math.Tan,
	"asin": math.Asin,
	"acos": math.Acos,
	"atan": math.Atan,
	"sinh": math.Sinh,
	"cosh": math.Cosh,
	"tanh": math.Tanh,
	"sqrt": math.Sqrt,
}

// intDivName is the function the / operator resolves to when both operands are integers.
const intDivName = "int_div"

// Program is a compiled expression that can be run against many contexts.
type Program struct {
	source  string
	program *vm.Program
}

// Expand applies the ease macros to source.
//
// Parameters:
//   - source: the raw expression
//
// Returns:
//   - string: the expression with every macro occurrence replaced
func Expand(source string) string {
	for _, m := range macros {
		source = strings.ReplaceAll(source, m.from, m.to)
	}
	return source
}

// Compile expands macros and compiles source into a reusable Program.
//
// Parameters:
//   - source: the expression text
//
// Returns:
//   - *Program: the compiled program
//   - error: an error when the expression does not parse or type-check
func Compile(source string) (*Program, error) {
	opts := []expr.Option{
		expr.Env(env(Context{})),
		expr.AsFloat64(),
		expr.Function(intDivName, intDiv, new(func(int, int) int)),
		expr.Operator("/", intDivName),
	}
	for name, fn := range unaryFuncs {
		opts = append(opts, expr.Function(name, wrapUnary(name, fn)))
	}
	p, err := expr.Compile(Expand(source), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", source, err)
	}
	return &Program{source: source, program: p}, nil
}

// Source returns the expression text the program was compiled from.
func (p *Program) Source() string {
	return p.source
}

// Run evaluates the program for ctx.
//
// Parameters:
//   - ctx: the frame context
//
// Returns:
//   - float32: the result
//   - error: an error when evaluation fails or the result is not a finite number
func (p *Program) Run(ctx Context) (float32, error) {
	out, err := expr.Run(p.program, env(ctx))
	if err != nil {
		return 0, fmt.Errorf("failed to evaluate expression %q: %w", p.source, err)
	}
	v, ok := toFloat(out)
	if !ok {
		return 0, fmt.Errorf("%q: %w", p.source, ErrNotNumeric)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q: %w", p.source, ErrNotFinite)
	}
	return float32(v), nil
}

// Evaluate compiles and runs source against ctx.
//
// Parameters:
//   - source: the expression text
//   - ctx: the frame context
//
// Returns:
//   - float32: the result
//   - error: an error when compilation or evaluation fails
func Evaluate(source string, ctx Context) (float32, error) {
	p, err := Compile(source)
	if err != nil {
		return 0, err
	}
	return p.Run(ctx)
}

func env(ctx Context) map[string]any {
	return map[string]any{
		"t":            float64(ctx.T),
		"frame":        int(ctx.Frame),
		"total_frames": int(ctx.TotalFrames),
		"PI":           math.Pi,
		"TAU":          2 * math.Pi,
	}
}

// intDiv truncates toward zero like integer division; any float operand keeps the default float division.
func intDiv(params ...any) (any, error) {
	a, b := params[0].(int), params[1].(int)
	if b == 0 {
		return nil, ErrDivisionByZero
	}
	return a / b, nil
}

func wrapUnary(name string, fn func(float64) float64) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		x, ok := toFloat(params[0])
		if !ok {
			return nil, fmt.Errorf("%s expects a number, got %T", name, params[0])
		}
		return fn(x), nil
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
