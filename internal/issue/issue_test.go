// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestId_Constants(t *testing.T) {
	t.Parallel()

	ids := []Id{
		SessionNotFoundId,
		HostNotSupportedId,
		DocumentNotFoundId,
		DocumentAmbiguousId,
		ConflictingSourceId,
		EmptySourceId,
		ScriptReadFailedId,
		ExecutionFailedId,
		UnknownLanguageId,
		ConfigLoadFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if SessionNotFoundId != 1 {
		t.Errorf("SessionNotFoundId = %d, want 1", SessionNotFoundId)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{SessionNotFoundId, false, "No running office application"},
		{HostNotSupportedId, false, "Host not supported"},
		{DocumentNotFoundId, false, "Document not found"},
		{DocumentAmbiguousId, false, "More than one document"},
		{ConflictingSourceId, false, "Conflicting code sources"},
		{EmptySourceId, false, "No code provided"},
		{ScriptReadFailedId, false, "Could not read the script"},
		{ExecutionFailedId, false, "Code execution failed"},
		{UnknownLanguageId, false, "Unknown script language"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			t.Parallel()

			got := Get(tt.id)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}
			if got == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if got.Id() != tt.id {
				t.Errorf("Id() = %d, want %d", got.Id(), tt.id)
			}
			if !strings.Contains(string(got.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Parallel()

	all := Values()
	if len(all) != 10 {
		t.Errorf("Values() returned %d issues, want 10", len(all))
	}
	for _, i := range all {
		if i.Id() == 0 {
			t.Error("found issue with ID 0")
		}
	}
}

func TestIssue_ExtLinksClone(t *testing.T) {
	t.Parallel()

	i := Get(SessionNotFoundId)
	links := i.ExtLinks()
	if len(links) == 0 {
		t.Fatal("SessionNotFound issue should carry an external link")
	}
	original := links[0]
	links[0] = "modified"
	if i.ExtLinks()[0] != original {
		t.Error("ExtLinks() should return a clone")
	}
}

// Render tests swap the package-level renderer and therefore do not run in parallel.
func TestIssue_Render_WithLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(SessionNotFoundId).Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "See also") {
		t.Error("Render() with links should contain 'See also'")
	}
	if !strings.Contains(rendered, "GetActiveObject") {
		t.Error("Render() should list the external link")
	}
}

func TestIssue_Render_NoLinks(t *testing.T) {
	originalRender := render
	defer func() { render = originalRender }()

	render = func(in string, stylePath string) (string, error) {
		return in, nil
	}

	rendered, err := Get(EmptySourceId).Render("dark")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}
