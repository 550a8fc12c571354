// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/officeharness/officeharness/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError. When the wrapped error is a
// ServiceError with a styled rendering, that rendering is the message, so
// whatever prints the returned error prints the full diagnostic.
func (e *ExitError) Error() string {
	var svcErr *ServiceError
	if errors.As(e.Err, &svcErr) && svcErr.StyledMessage != "" {
		return strings.TrimRight(svcErr.StyledMessage, "\n")
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
