// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// WindowsPathSeparator is the separator the host applications use in FullName.
const WindowsPathSeparator = `\`

// SupportsAutomation reports whether the current build target can attach to
// a running office application over COM.
func SupportsAutomation() bool {
	return runtime.GOOS == Windows
}

// WindowsBase returns the last element of a Windows-style path.
// Both `\` and `/` are separators; a path without separators is returned as-is.
// Trailing separators are not stripped, so "C:\docs\" yields "".
func WindowsBase(p string) string {
	if idx := strings.LastIndexAny(p, `\/`); idx != -1 {
		return p[idx+1:]
	}
	return p
}
