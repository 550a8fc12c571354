// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/officeharness/officeharness/internal/config"
	"github.com/officeharness/officeharness/internal/issue"
	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/script"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()

	newServiceError(nil, 0, "")
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.ExecutionFailedId, "styled")

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q, want %q", svcErr.Error(), "underlying error")
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	plain := &ExitError{Code: 2}
	if got := plain.Error(); got != "exit status 2" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := &ExitError{Code: 1, Err: errors.New("boom")}
	if got := wrapped.Error(); got != "boom" {
		t.Errorf("Error() = %q", got)
	}

	styled := &ExitError{Code: 1, Err: newServiceError(errors.New("boom"), 0, "ERROR: boom\ntrace\n")}
	if got := styled.Error(); got != "ERROR: boom\ntrace" {
		t.Errorf("Error() = %q, want the styled message without trailing newline", got)
	}
}

func TestRenderFailure(t *testing.T) {
	t.Parallel()

	execErr := &script.ExecutionError{
		Language:  script.Starlark,
		Message:   "fail: boom",
		Backtrace: "Traceback (most recent call last):\n  <excel-agent-code>:1:5: in <toplevel>\nError: fail: boom",
	}
	sessionErr := &office.SessionNotFoundError{App: "Excel", Noun: "workbook", Err: office.ErrHostNotSupported}

	tests := []struct {
		name    string
		err     error
		verbose bool
		want    []string
		notWant []string
	}{
		{
			name: "engine backtrace follows the error line",
			err:  execErr,
			want: []string{"ERROR: fail: boom\n", "Traceback (most recent call last):", "<excel-agent-code>:1:5"},
		},
		{
			name:    "cause chain when there is no backtrace",
			err:     sessionErr,
			want:    []string{"ERROR: Could not attach to a running Excel instance.", "Caused by:", "1. session not found", "2. office automation requires Windows"},
			notWant: []string{"Things you can try"},
		},
		{
			name: "plain error has no trace",
			err:  errors.New("something broke"),
			want: []string{"ERROR: something broke\n"},
		},
		{
			name: "actionable error keeps suggestions",
			err: issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource("/tmp/config.cue").
				WithSuggestion("Fix the syntax error").
				Wrap(fmt.Errorf("unexpected token")).
				BuildError(),
			want: []string{"ERROR: failed to load configuration: /tmp/config.cue: unexpected token", "Fix the syntax error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			issueID, _ := classifyError(tt.err)
			got := renderFailure(tt.err, issueID, tt.verbose, config.ColorSchemeDark)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderFailure() missing %q in:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("renderFailure() should not contain %q in:\n%s", w, got)
				}
			}
			if !strings.HasPrefix(got, "ERROR:") {
				t.Errorf("renderFailure() must start with ERROR:, got %q", got)
			}
		})
	}
}

func TestRenderFailure_VerboseAddsIssueHelp(t *testing.T) {
	t.Parallel()

	err := &office.NotFoundError{Noun: "workbook", Identifier: "x.xlsx"}
	quiet := renderFailure(err, issue.DocumentNotFoundId, false, config.ColorSchemeDark)
	loud := renderFailure(err, issue.DocumentNotFoundId, true, config.ColorSchemeLight)

	if len(loud) <= len(quiet) {
		t.Errorf("verbose rendering should append issue help:\nquiet=%q\nloud=%q", quiet, loud)
	}
	if !strings.HasPrefix(loud, quiet) {
		t.Error("verbose rendering should extend the quiet rendering")
	}
}
