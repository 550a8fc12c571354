// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/officeharness/officeharness/internal/report"
)

// starlarkDialect enables the Python constructs agent-written code tends to use.
var starlarkDialect = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

type starlarkEngine struct {
	stdout io.Writer
}

func (e *starlarkEngine) Language() Language { return Starlark }

func (e *starlarkEngine) Run(ctx context.Context, src Source, ns *Namespace) error {
	thread := &starlark.Thread{
		Name: src.Name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(e.stdout, msg)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	predeclared := make(starlark.StringDict, len(ns.bindings))
	for _, b := range ns.bindings {
		predeclared[b.Name] = toStarlark(b.Value)
	}

	globals, err := starlark.ExecFileOptions(starlarkDialect, thread, src.Name, src.Text, predeclared)
	if err != nil {
		return starlarkError(err)
	}

	for _, name := range globals.Keys() {
		v := globals[name]
		if name == ResultKey {
			ns.SetResult(report.Value{Data: exportResult(v), Text: str(v)})
			continue
		}
		ns.Set(name, exportArg(v))
	}
	slog.Debug("starlark run finished", "source", src.Name, "globals", len(globals))
	return nil
}

func starlarkError(err error) error {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		return &ExecutionError{
			Language:  Starlark,
			Message:   firstLine(evalErr.Msg),
			Backtrace: evalErr.Backtrace(),
			Err:       err,
		}
	}
	// Scan, parse and resolve errors carry their position in the message.
	return &ExecutionError{
		Language:  Starlark,
		Message:   firstLine(err.Error()),
		Backtrace: err.Error(),
		Err:       err,
	}
}

// str mirrors Starlark's str(): strings as-is, everything else as its repr.
func str(v starlark.Value) string {
	if s, ok := starlark.AsString(v); ok {
		return s
	}
	return v.String()
}
