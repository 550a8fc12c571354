// SPDX-License-Identifier: MPL-2.0

package platform

import "testing"

func TestWindowsBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare name", "Budget.xlsx", "Budget.xlsx"},
		{"backslash path", `C:\x\Budget.xlsx`, "Budget.xlsx"},
		{"forward slash path", "C:/x/Budget.xlsx", "Budget.xlsx"},
		{"mixed separators", `C:\x/y\Report.docx`, "Report.docx"},
		{"trailing separator", `C:\x\`, ""},
		{"empty", "", ""},
		{"unsaved document name", "Document1", "Document1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WindowsBase(tt.input); got != tt.expected {
				t.Errorf("WindowsBase(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
