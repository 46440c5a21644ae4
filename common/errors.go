package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the command line. Each kind maps to a process exit code.
type Kind int

const (
	// KindInvalidScene covers scene files that cannot be parsed or fail validation.
	KindInvalidScene Kind = iota + 1

	// KindRender covers GPU initialization, shader, buffer and capture failures.
	KindRender

	// KindIO covers filesystem failures while reading scenes or writing output.
	KindIO

	// KindDependencyMissing covers external tools (ffmpeg) that are not installed.
	KindDependencyMissing
)

func (k Kind) String() string {
	switch k {
	case KindInvalidScene:
		return "Invalid scene"
	case KindRender:
		return "Render error"
	case KindIO:
		return "IO error"
	case KindDependencyMissing:
		return "Dependency missing"
	default:
		return "Error"
	}
}

// Error attaches a Kind to an underlying error.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap tags err with kind. A nil err yields nil.
//
// Parameters:
//   - kind: the classification to attach
//   - err: the underlying error
//
// Returns:
//   - error: the tagged error, or nil
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// Errorf formats a message and tags it with kind. Supports %w like fmt.Errorf.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the outermost Kind attached to err, or 0 when none is attached.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ExitCode maps err to the process exit status: 0 for nil, the Kind value for tagged errors
// and 1 for anything untagged.
//
// Parameters:
//   - err: the error returned by a command
//
// Returns:
//   - int: the exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if k := KindOf(err); k != 0 {
		return int(k)
	}
	return 1
}
