// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/officeharness/officeharness/internal/office/officetest"
)

// fixtureEnv names the fixture file the in-process binary attaches to.
// Without it the platform attacher is used.
const fixtureEnv = "OFFICEHARNESS_FIXTURE"

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"officeharness": func() { os.Exit(runWithFixture()) },
	})
}

func runWithFixture() int {
	var deps Dependencies
	if path := os.Getenv(fixtureEnv); path != "" {
		fa, err := officetest.LoadFixture(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			return 1
		}
		deps.Attacher = fa
	}
	return Run(context.Background(), deps, os.Args[1:])
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			cfgHome := filepath.Join(env.WorkDir, ".config")
			env.Setenv("XDG_CONFIG_HOME", cfgHome)
			env.Setenv("APPDATA", cfgHome)
			env.Setenv("HOME", env.WorkDir)
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}
