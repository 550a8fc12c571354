// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/expr-lang/expr"

	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/report"
)

// exprEngine evaluates the source as one expression. A non-nil value becomes
// the result; there are no statements, so nothing else is written back.
type exprEngine struct{}

func (e *exprEngine) Language() Language { return Expr }

func (e *exprEngine) Run(ctx context.Context, src Source, ns *Namespace) error {
	if err := ctx.Err(); err != nil {
		return &ExecutionError{Language: Expr, Message: err.Error(), Backtrace: err.Error(), Err: err}
	}

	env := make(map[string]any, len(ns.bindings))
	for _, b := range ns.bindings {
		env[b.Name] = toExpr(b.Value)
	}

	program, err := expr.Compile(src.Text, expr.Env(env))
	if err != nil {
		return exprError(src, err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return exprError(src, err)
	}

	if out != nil {
		ns.SetResult(report.Value{Data: exportExpr(out), Text: report.Stringify(out)})
	}
	return nil
}

func exprError(src Source, err error) error {
	return &ExecutionError{
		Language:  Expr,
		Message:   firstLine(err.Error()),
		Backtrace: fmt.Sprintf("%s:\n%s", src.Name, err.Error()),
		Err:       err,
	}
}

// exprObject exposes an office.Object to expressions through methods:
//
//	wb.Get("Worksheets").Item(1).Get("Range", "A1").Get("Value")
//	wb.Call("Save")
type exprObject struct {
	obj office.Object
}

// Get reads a property.
func (o *exprObject) Get(name string, args ...any) (any, error) {
	v, err := o.obj.Get(name, fromExprArgs(args)...)
	return toExpr(v), err
}

// Set assigns a property; the last argument is the value. It returns true so
// it can be chained with other expressions.
func (o *exprObject) Set(name string, args ...any) (bool, error) {
	if err := o.obj.Put(name, fromExprArgs(args)...); err != nil {
		return false, err
	}
	return true, nil
}

// Call invokes a method.
func (o *exprObject) Call(name string, args ...any) (any, error) {
	v, err := o.obj.Call(name, fromExprArgs(args)...)
	return toExpr(v), err
}

// Item invokes the default member.
func (o *exprObject) Item(args ...any) (any, error) {
	v, err := o.obj.Default(fromExprArgs(args)...)
	return toExpr(v), err
}

func (o *exprObject) String() string {
	if s, ok := o.obj.(fmt.Stringer); ok {
		return s.String()
	}
	return "<office object>"
}

func toExpr(v any) any {
	switch x := v.(type) {
	case office.Object:
		return &exprObject{obj: x}
	case office.Constants:
		consts := make(map[string]any, x.Len())
		for _, name := range x.Names() {
			consts[name], _ = x.Lookup(name)
		}
		return consts
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = toExpr(e)
		}
		return out
	default:
		return v
	}
}

func fromExprArgs(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		out[i] = fromExpr(a)
	}
	return out
}

func fromExpr(v any) any {
	switch x := v.(type) {
	case *exprObject:
		return x.obj
	case []any:
		return fromExprArgs(x)
	default:
		return v
	}
}

// exportExpr converts an expression result for reporting. Maps are sorted by
// key since expr maps carry no order.
func exportExpr(v any) any {
	switch x := v.(type) {
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = exportExpr(e)
		}
		return out
	case map[string]any:
		m := make(report.OrderedMap, 0, len(x))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			m = append(m, report.Field{Key: k, Value: exportExpr(x[k])})
		}
		return m
	default:
		return v
	}
}
