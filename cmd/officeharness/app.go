// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/officeharness/officeharness/internal/config"
	"github.com/officeharness/officeharness/internal/office"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer: every Cobra handler receives an App and reaches the host
	// applications and configuration only through it.
	App struct {
		Config   config.Provider
		Attacher office.Attacher
		stdin    io.Reader
		stdout   io.Writer
		stderr   io.Writer

		// Set from global flags and the loaded configuration before any
		// subcommand runs.
		verbose    bool
		configPath string
		cfg        *config.Config
	}

	// Dependencies defines the injection points for building an App. Nil fields
	// are replaced with production defaults by NewApp. Tests supply fake
	// attachers and buffers.
	Dependencies struct {
		Config   config.Provider
		Attacher office.Attacher
		Stdin    io.Reader
		Stdout   io.Writer
		Stderr   io.Writer
	}
)

// NewApp creates the CLI composition root, filling nil dependencies with defaults.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Attacher == nil {
		deps.Attacher = office.NewAttacher()
	}

	return &App{
		Config:   deps.Config,
		Attacher: deps.Attacher,
		stdin:    deps.Stdin,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		cfg:      config.DefaultConfig(),
	}
}

// loadConfig resolves the configuration for this invocation and installs the
// log handler. A broken config file is reported as a warning and defaults are
// used, so host commands still run.
func (a *App) loadConfig(ctx context.Context) {
	cfg, path, err := a.Config.Resolve(ctx, config.LoadOptions{ConfigFilePath: a.configPath})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
		cfg = config.DefaultConfig()
	}
	a.cfg = cfg

	// Apply verbose from config if not set via flag
	if !a.verbose {
		a.verbose = cfg.UI.Verbose
	}

	slog.SetDefault(slog.New(newLogHandler(a.stderr, cfg.Log.Level, a.verbose)))
	slog.Debug("configuration loaded", "path", path, "default_language", cfg.DefaultLanguage)
}

func (a *App) colorScheme() config.ColorScheme {
	if a.cfg == nil {
		return config.ColorSchemeAuto
	}
	return a.cfg.UI.ColorScheme
}
