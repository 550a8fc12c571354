// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/officeharness/officeharness/internal/harness"
	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/script"
)

// kindFlags holds the flag values of one host subcommand.
type kindFlags struct {
	identifier string
	list       bool
	code       string
	scriptPath string
	lang       string
}

// newKindCommand creates the subcommand driving one host application.
func newKindCommand(app *App, kind office.Kind) *cobra.Command {
	var flags kindFlags
	selector := harness.SelectorFlag(kind)
	listFlag := harness.ListFlag(kind)

	cmd := &cobra.Command{
		Use:   kind.Name,
		Short: fmt.Sprintf("Run code against a %s open in %s", kind.Noun, kind.App),
		Long: fmt.Sprintf(`Run code against a %[1]s that is already open in a running %[2]s.

The %[1]s is picked by --%[3]s, matched case-insensitively against each open
%[1]s's name and full path, and also by base name. Exactly one %[1]s must match.

Code comes from --code, --script, or stdin. It runs with these names bound:
  %-12[4]s the %[2]s application
  %-12[5]s the resolved %[1]s
  consts       %[2]s enumeration constants
  __result__   assign to report a value as a __RESULT__= JSON line`,
			kind.Noun, kind.App, selector, kind.AppBinding, kind.DocBinding),
		Example: fmt.Sprintf(`  officeharness %[1]s --%[2]s
  officeharness %[1]s --%[3]s Example --code '__result__ = %[4]s.FullName'
  echo 'print(%[4]s.Name)' | officeharness %[1]s --%[3]s Example`,
			kind.Name, listFlag, selector, kind.DocBinding),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runKindCommand(cmd, app, kind, flags)
		},
	}

	cmd.Flags().StringVar(&flags.identifier, selector, "", fmt.Sprintf("name or full path of an open %s", kind.Noun))
	cmd.Flags().BoolVar(&flags.list, listFlag, false, fmt.Sprintf("list the open %ss and exit", kind.Noun))
	cmd.Flags().StringVar(&flags.code, "code", "", "inline code to run")
	cmd.Flags().StringVar(&flags.scriptPath, "script", "", "path of a file holding the code to run")
	cmd.Flags().StringVar(&flags.lang, "lang", "", "code language: starlark or expr (default from config)")

	return cmd
}

func runKindCommand(cmd *cobra.Command, app *App, kind office.Kind, flags kindFlags) error {
	lang, err := app.language(flags.lang)
	if err != nil {
		return app.fail(err)
	}

	opts := harness.Options{
		Kind:       kind,
		Identifier: flags.identifier,
		List:       flags.list,
		Source: script.SourceOptions{
			Code:       flags.code,
			CodeSet:    cmd.Flags().Changed("code"),
			ScriptPath: flags.scriptPath,
			Stdin:      cmd.InOrStdin(),
		},
		Language: lang,
		Stdout:   cmd.OutOrStdout(),
	}

	return app.fail(harness.New(app.Attacher).Run(cmd.Context(), opts))
}

// language resolves the --lang flag, falling back to the configured default.
func (a *App) language(flag string) (script.Language, error) {
	if flag == "" {
		flag = a.cfg.DefaultLanguage.String()
	}
	return script.ParseLanguage(flag)
}
