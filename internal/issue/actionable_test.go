// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "attach to Excel"},
			expected: "failed to attach to Excel",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "read script", Resource: "snippet.star"},
			expected: "failed to read script: snippet.star",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "resolve workbook",
				Resource:  "Budget.xlsx",
				Cause:     errors.New("not open"),
			},
			expected: "failed to resolve workbook: Budget.xlsx: not open",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("specific error")
	wrapped := WrapWithOperation(cause, "run code")

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if WrapWithOperation(nil, "noop") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions",
			err: &ActionableError{
				Operation:   "resolve document",
				Suggestions: []string{"Pass a full path"},
			},
			contains: []string{"failed to resolve document", "• Pass a full path"},
		},
		{
			name: "error chain in verbose mode",
			err: &ActionableError{
				Operation: "run code",
				Cause:     fmt.Errorf("outer: %w", errors.New("inner")),
			},
			verbose:  true,
			contains: []string{"Error chain:", "1. outer: inner", "2. inner"},
		},
		{
			name: "no chain and no trace in non-verbose mode",
			err: &ActionableError{
				Operation: "run code",
				Trace:     "Traceback (most recent call last):",
				Cause:     errors.New("boom"),
			},
			contains: []string{"failed to run code: boom"},
			excludes: []string{"Error chain:", "Traceback"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if NewErrorContext().WithResource("x").Build() != nil {
		t.Error("Build() without operation should return nil")
	}
	if NewErrorContext().BuildError() != nil {
		t.Error("BuildError() without operation should return nil")
	}

	ae := NewErrorContext().
		WithOperation("run code").
		WithResource("<excel-agent-code>").
		WithSuggestion("Check the trace").
		WithTrace("line 1").
		Wrap(errors.New("boom")).
		Build()
	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Resource != "<excel-agent-code>" || ae.Trace != "line 1" || !ae.HasSuggestions() {
		t.Errorf("Build() lost fields: %+v", ae)
	}
}

func TestTraceOf(t *testing.T) {
	t.Parallel()

	inner := &ActionableError{Operation: "execute", Trace: "inner trace"}
	outer := fmt.Errorf("wrapped: %w", &ActionableError{Operation: "run", Cause: inner})

	if got := TraceOf(outer); got != "inner trace" {
		t.Errorf("TraceOf() = %q, want %q", got, "inner trace")
	}
	if got := TraceOf(errors.New("plain")); got != "" {
		t.Errorf("TraceOf(plain) = %q, want empty", got)
	}
	if got := TraceOf(nil); got != "" {
		t.Errorf("TraceOf(nil) = %q, want empty", got)
	}
	if got := TraceOf(fmt.Errorf("run: %w", tracedError{})); got != "Traceback: line 1" {
		t.Errorf("TraceOf(tracer) = %q", got)
	}
}

type tracedError struct{}

func (tracedError) Error() string      { return "boom" }
func (tracedError) ErrorTrace() string { return "Traceback: line 1" }
