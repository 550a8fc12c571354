// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree over app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "officeharness",
		Short: "Run code against a document open in Excel or Word",
		Long: TitleStyle.Render("officeharness") + SubtitleStyle.Render(" - Run code against a document open in Excel or Word") + `

officeharness attaches to an already running Excel or Word, picks one open
workbook or document by name or full path, and runs Starlark code (or a
single expr expression) with the application and the document bound. A value
assigned to __result__ is printed as one JSON line prefixed with __RESULT__=.

` + SubtitleStyle.Render("Examples:") + `
  officeharness excel --list-workbooks
  officeharness excel --workbook Budget.xlsx --code '__result__ = wb.Worksheets(1).Range("A1").Value'
  officeharness word --document Report.docx --script snippet.star
  officeharness config show`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.loadConfig(cmd.Context())
		},
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: types.ExitUsage, Err: err}
	})

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "show the error chain and issue help on failure")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "config file (default is the config.cue in the user config directory)")

	for _, kind := range office.Kinds() {
		rootCmd.AddCommand(newKindCommand(app, kind))
	}
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes the CLI with args and returns the process exit code.
func Run(ctx context.Context, deps Dependencies, args []string) int {
	app := NewApp(deps)
	rootCmd := NewRootCommand(app)
	rootCmd.SetArgs(args)

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(printError),
	)
	if err == nil {
		return int(types.ExitSuccess)
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return int(exitErr.Code)
	}
	return int(types.ExitFailure)
}

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(Run(context.Background(), Dependencies{}, os.Args[1:]))
}

// printError writes the error as rendered by the command that failed.
// Failures from host commands are already styled (see App.fail).
func printError(w io.Writer, _ fang.Styles, err error) {
	fmt.Fprintln(w, err.Error())
}
