// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for officeharness.
//
// The root command carries one subcommand per supported host application
// (excel, word) plus configuration management. Each host subcommand is built
// from its office.Kind, so both share flags, error rendering and exit codes.
package cmd
