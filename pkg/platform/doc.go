// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// Office automation only exists on Windows, but identifiers and document paths
// reported by the host are Windows paths regardless of where the harness code
// is compiled or tested. The helpers here treat both separators the way the
// host does.
package platform
