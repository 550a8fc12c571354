// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snippet.star")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "__result__ = 1\n")

	tests := []struct {
		name string
		opts SourceOptions
		want string
	}{
		{
			name: "inline",
			opts: SourceOptions{Code: "x = 1", CodeSet: true, Stdin: strings.NewReader("ignored")},
			want: "x = 1",
		},
		{
			name: "script file",
			opts: SourceOptions{ScriptPath: script, Stdin: strings.NewReader("ignored")},
			want: "__result__ = 1\n",
		},
		{
			name: "stdin",
			opts: SourceOptions{Stdin: strings.NewReader("print('hi')\n")},
			want: "print('hi')\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Load(tt.opts)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Load() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_ConflictingSource(t *testing.T) {
	t.Parallel()

	script := writeScript(t, "x = 1")

	// Content never matters, not even an empty inline string.
	for _, code := range []string{"x = 2", "", "   "} {
		_, err := Load(SourceOptions{Code: code, CodeSet: true, ScriptPath: script})
		if !errors.Is(err, ErrConflictingSource) {
			t.Errorf("Load(code=%q, script) error = %v, want ErrConflictingSource", code, err)
		}
		if err != nil && err.Error() != "Use only one of --script or --code" {
			t.Errorf("unexpected message %q", err.Error())
		}
	}

	_, err := Load(SourceOptions{Code: "x", CodeSet: true, ScriptPath: filepath.Join(t.TempDir(), "missing")})
	if !errors.Is(err, ErrConflictingSource) {
		t.Errorf("conflict must be reported before reading the file, got %v", err)
	}
}

func TestLoad_EmptySource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts SourceOptions
	}{
		{name: "empty inline", opts: SourceOptions{Code: "", CodeSet: true}},
		{name: "whitespace inline", opts: SourceOptions{Code: " \n\t ", CodeSet: true}},
		{name: "empty stdin", opts: SourceOptions{Stdin: strings.NewReader("")}},
		{name: "no stdin", opts: SourceOptions{}},
		{name: "whitespace file", opts: SourceOptions{ScriptPath: writeScript(t, "\n\n  \n")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(tt.opts)
			if !errors.Is(err, ErrEmptySource) {
				t.Fatalf("Load() error = %v, want ErrEmptySource", err)
			}
			for _, origin := range []string{"--script", "--code", "stdin"} {
				if !strings.Contains(err.Error(), origin) {
					t.Errorf("message %q should mention %s", err.Error(), origin)
				}
			}
		})
	}
}

func TestLoad_ScriptErrors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.star")
	_, err := Load(SourceOptions{ScriptPath: missing})
	if err == nil || !strings.Contains(err.Error(), missing) {
		t.Errorf("error should name the script path, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}

	invalid := writeScript(t, "x = '\xff'")
	if _, err := Load(SourceOptions{ScriptPath: invalid}); err == nil || !strings.Contains(err.Error(), "UTF-8") {
		t.Errorf("expected UTF-8 error, got %v", err)
	}
}
