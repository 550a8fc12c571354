// SPDX-License-Identifier: MPL-2.0

// Package script loads caller code and runs it against a fixed namespace.
//
// Caller code runs with full trust: it can do anything the bound application
// and document objects allow. There is no sandbox, allowlist, step limit or
// timeout. The only names visible to the code are the namespace bindings and
// the engine's own builtins.
package script
