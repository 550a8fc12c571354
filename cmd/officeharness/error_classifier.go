// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"

	"github.com/officeharness/officeharness/internal/config"
	"github.com/officeharness/officeharness/internal/harness"
	"github.com/officeharness/officeharness/internal/issue"
	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/script"
	"github.com/officeharness/officeharness/pkg/types"
)

// classifyError maps a failure to its issue catalog ID and exit code.
// Usage mistakes exit with types.ExitUsage; everything else with types.ExitFailure.
func classifyError(err error) (issue.Id, types.ExitCode) {
	var pathErr *fs.PathError

	switch {
	case errors.Is(err, harness.ErrMissingIdentifier):
		return 0, types.ExitUsage
	case errors.Is(err, script.ErrUnknownLanguage):
		return issue.UnknownLanguageId, types.ExitUsage
	case errors.Is(err, office.ErrHostNotSupported):
		return issue.HostNotSupportedId, types.ExitFailure
	case errors.Is(err, office.ErrSessionNotFound):
		return issue.SessionNotFoundId, types.ExitFailure
	case errors.Is(err, office.ErrNotFound):
		return issue.DocumentNotFoundId, types.ExitFailure
	case errors.Is(err, office.ErrAmbiguous):
		return issue.DocumentAmbiguousId, types.ExitFailure
	case errors.Is(err, script.ErrConflictingSource):
		return issue.ConflictingSourceId, types.ExitFailure
	case errors.Is(err, script.ErrEmptySource):
		return issue.EmptySourceId, types.ExitFailure
	case errors.Is(err, script.ErrExecutionFailure):
		return issue.ExecutionFailedId, types.ExitFailure
	case errors.Is(err, config.ErrInvalidConfig):
		return issue.ConfigLoadFailedId, types.ExitFailure
	case errors.As(err, &pathErr):
		return issue.ScriptReadFailedId, types.ExitFailure
	default:
		return 0, types.ExitFailure
	}
}

// fail converts err into the ExitError returned from a RunE handler, with
// the rendered diagnostic attached.
func (a *App) fail(err error) error {
	if err == nil {
		return nil
	}
	issueID, code := classifyError(err)
	styled := renderFailure(err, issueID, a.verbose, a.colorScheme())
	return &ExitError{Code: code, Err: newServiceError(err, issueID, styled)}
}
