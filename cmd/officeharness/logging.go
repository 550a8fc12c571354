// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"

	"github.com/officeharness/officeharness/internal/config"
)

// newLogHandler returns the slog handler for diagnostics. Everything goes to
// w (stderr); stdout is reserved for listings, printed output and the result line.
func newLogHandler(w io.Writer, level config.LogLevel, verbose bool) slog.Handler {
	lvl, err := log.ParseLevel(string(level))
	if err != nil {
		lvl = log.WarnLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: config.AppName,
		Level:  lvl,
	})
}
