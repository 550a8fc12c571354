// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrExecutionFailure is wrapped by every error raised while running caller code.
var ErrExecutionFailure = errors.New("execution failed")

type (
	// Engine runs loaded code against a namespace.
	Engine interface {
		// Language reports which language the engine runs.
		Language() Language
		// Run executes src with ns as both the read and the write scope. A
		// failure raised by the code is returned as *ExecutionError.
		Run(ctx context.Context, src Source, ns *Namespace) error
	}

	// ExecutionError is a syntax or runtime error raised by caller code.
	ExecutionError struct {
		Language Language
		// Message is the one-line error message.
		Message string
		// Backtrace is the engine's full diagnostic text.
		Backtrace string
		// Err is the engine's original error.
		Err error
	}
)

// Error implements the error interface.
func (e *ExecutionError) Error() string { return e.Message }

// ErrorTrace returns the engine backtrace.
func (e *ExecutionError) ErrorTrace() string { return e.Backtrace }

// Unwrap returns ErrExecutionFailure and the engine error.
func (e *ExecutionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExecutionFailure}
	}
	return []error{ErrExecutionFailure, e.Err}
}

// NewEngine returns the engine for lang. Output printed by the code goes to stdout.
func NewEngine(lang Language, stdout io.Writer) (Engine, error) {
	if stdout == nil {
		stdout = io.Discard
	}
	switch lang {
	case Starlark:
		return &starlarkEngine{stdout: stdout}, nil
	case Expr:
		return &exprEngine{}, nil
	default:
		return nil, &UnknownLanguageError{Value: string(lang)}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
