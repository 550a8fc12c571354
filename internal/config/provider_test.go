// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestProvider_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.cue")
	if err := os.WriteFile(path, []byte(`ui: color_scheme: "dark"`), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewProvider()

	cfg, err := p.Load(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("ColorScheme = %s, want dark", cfg.UI.ColorScheme)
	}

	_, resolved, err := p.Resolve(context.Background(), LoadOptions{ConfigFilePath: path})
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if resolved != path {
		t.Errorf("Resolve() path = %q, want %q", resolved, path)
	}
}

func TestProvider_LoadError(t *testing.T) {
	t.Parallel()

	_, err := NewProvider().Load(context.Background(), LoadOptions{ConfigFilePath: filepath.Join(t.TempDir(), "missing.cue")})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
