// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/officeharness/officeharness/internal/config"
	"github.com/officeharness/officeharness/internal/issue"
)

// ServiceError is an error that carries rendering information for the CLI
// layer: the issue catalog entry explaining it and the styled stderr text.
// Always create via newServiceError to enforce the Err-must-be-non-nil invariant.
type ServiceError struct {
	// Err is the underlying error (must not be nil).
	Err error
	// IssueID is the optional issue catalog ID for rendering help text.
	IssueID issue.Id
	// StyledMessage is the pre-rendered styled error text.
	StyledMessage string
}

// newServiceError creates a ServiceError with a nil-Err panic guard.
// All construction sites must use this instead of struct literals.
func newServiceError(err error, issueID issue.Id, styledMessage string) *ServiceError {
	if err == nil {
		panic("ServiceError: Err must not be nil")
	}
	return &ServiceError{
		Err:           err,
		IssueID:       issueID,
		StyledMessage: styledMessage,
	}
}

// Error implements the error interface.
func (e *ServiceError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ServiceError) Unwrap() error { return e.Err }

// renderFailure builds the stderr text for err:
//
//	ERROR: <message>
//	<engine backtrace, or the chain of wrapped causes>
//
// In verbose mode the issue catalog entry follows, rendered with glamour.
func renderFailure(err error, issueID issue.Id, verbose bool, scheme config.ColorScheme) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s %s\n", ErrorStyle.Render("ERROR:"), formatErrorForDisplay(err, verbose))

	if trace := issue.TraceOf(err); trace != "" {
		sb.WriteString(VerboseStyle.Render(strings.TrimRight(trace, "\n")))
		sb.WriteString("\n")
	} else if chain := causeChain(err); len(chain) > 0 {
		sb.WriteString(VerboseStyle.Render("Caused by:"))
		sb.WriteString("\n")
		for i, msg := range chain {
			sb.WriteString(VerboseStyle.Render(fmt.Sprintf("  %d. %s", i+1, msg)))
			sb.WriteString("\n")
		}
	}

	if !verbose || issueID == 0 {
		return sb.String()
	}

	if catalogEntry := issue.Get(issueID); catalogEntry != nil {
		rendered, renderErr := catalogEntry.Render(scheme.GlamourStyle())
		if renderErr != nil {
			slog.Warn("failed to render issue catalog entry", "issueID", issueID, "error", renderErr)
		} else {
			sb.WriteString(rendered)
		}
	}
	return sb.String()
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}

// causeChain returns the messages of the errors wrapped by err, depth first,
// skipping any that repeat the text already shown.
func causeChain(err error) []string {
	seen := map[string]bool{err.Error(): true}
	var out []string

	var walk func(error)
	walk = func(e error) {
		var next []error
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			next = u.Unwrap()
		case interface{ Unwrap() error }:
			if w := u.Unwrap(); w != nil {
				next = []error{w}
			}
		}
		for _, n := range next {
			if msg := n.Error(); !seen[msg] {
				seen[msg] = true
				out = append(out, msg)
			}
			walk(n)
		}
	}
	walk(err)
	return out
}
