// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from config.cue in the platform configuration directory
// (%APPDATA%\officeharness on Windows, ~/Library/Application Support/officeharness
// on macOS, $XDG_CONFIG_HOME/officeharness elsewhere), falling back to a config.cue
// in the working directory, then to defaults. The file is validated against the
// embedded CUE schema (config_schema.cue) before it is merged into Viper.
package config
