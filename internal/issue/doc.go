// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the operation that failed, the resource involved,
// remediation hints and an optional diagnostic trace. The issue catalog maps
// each failure class of the harness to a Markdown help page rendered with
// glamour when the CLI runs in verbose mode.
package issue
