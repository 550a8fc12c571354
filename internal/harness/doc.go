// SPDX-License-Identifier: MPL-2.0

// Package harness runs one invocation against a host application: attach,
// list or resolve the target document, load and run caller code, report the
// result, and detach.
package harness
