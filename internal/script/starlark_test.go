// SPDX-License-Identifier: MPL-2.0

package script

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/report"
)

func TestStarlark_Result(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     string
		wantJSON string
		wantText string
	}{
		{
			name:     "property chain",
			code:     `__result__ = wb.Sheets(1).Name`,
			wantJSON: `"Sheet1"`,
			wantText: "Sheet1",
		},
		{
			name:     "dict keeps insertion order",
			code:     `__result__ = {"sheet": wb.Sheets[1].Name, "count": wb.Sheets.Count, "ok": True, "none": None}`,
			wantJSON: `{"sheet": "Sheet1", "count": 1, "ok": true, "none": null}`,
		},
		{
			name:     "floats keep a fractional part",
			code:     `__result__ = [1.0, 2.5, 1e20]`,
			wantJSON: `[1.0, 2.5, 1e+20]`,
		},
		{
			name:     "parameterized property",
			code:     `__result__ = wb.Sheets(1).get("Cells", 2, 3)`,
			wantJSON: `23`,
		},
		{
			name:     "big integer stays exact",
			code:     `__result__ = 2 ** 70`,
			wantJSON: `1180591620717411303424`,
		},
		{
			name:     "tuple key falls back to the string form",
			code:     `__result__ = {(1, 2): "x"}`,
			wantJSON: `"{(1, 2): \"x\"}"`,
		},
		{
			name:     "non-finite float falls back to the string form",
			code:     `__result__ = [float("inf")]`,
			wantJSON: `"[+inf]"`,
		},
		{
			name:     "host object reports its string form",
			code:     `__result__ = wb`,
			wantJSON: `"<Book1.xlsx object>"`,
		},
		{
			name:     "method read without calling",
			code:     `__result__ = type(wb.Save)`,
			wantJSON: `"office_method"`,
		},
		{
			name:     "constants",
			code:     `__result__ = consts.xlUp`,
			wantJSON: `-4162`,
		},
		{
			name:     "identity markers",
			code:     `__result__ = [__file__, __name__]`,
			wantJSON: `["<excel_harness_exec>", "__excel_harness_exec__"]`,
		},
		{
			name:     "set literal and while loop",
			code:     "s = set()\ni = 0\nwhile i < 3:\n    s.add(i % 2)\n    i += 1\n__result__ = sorted(s)",
			wantJSON: `[0, 1]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newWorkbookFixture()
			if err := f.run(t, Starlark, tt.code); err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			v, ok := f.ns.Result()
			if !ok {
				t.Fatal("expected a result")
			}
			if got := report.EncodeResult(v); got != tt.wantJSON {
				t.Errorf("EncodeResult() = %s, want %s", got, tt.wantJSON)
			}
			if tt.wantText != "" && v.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", v.Text, tt.wantText)
			}
		})
	}
}

func TestStarlark_NoResult(t *testing.T) {
	t.Parallel()

	f := newWorkbookFixture()
	if err := f.run(t, Starlark, "x = 1\n"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if _, ok := f.ns.Result(); ok {
		t.Error("no result expected when __result__ is never assigned")
	}
	if v, _ := f.ns.Lookup("x"); v != int64(1) {
		t.Errorf("global x = %v, want 1", v)
	}
}

func TestStarlark_HostMutation(t *testing.T) {
	t.Parallel()

	f := newWorkbookFixture()
	code := strings.Join([]string{
		`wb.Sheets(1).Name = "Data"`,
		`wb.Sheets(1).set("Cells", 1, 1, "hello")`,
		`wb.Save()`,
		`wb.call("Save")`,
	}, "\n")
	if err := f.run(t, Starlark, code); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if got := f.sheet.Props["Name"]; got != "Data" {
		t.Errorf("sheet Name = %v, want Data", got)
	}
	if n := len(f.sheet.Assignments); n != 2 {
		t.Fatalf("sheet assignments = %d, want 2", n)
	}
	cell := f.sheet.Assignments[1]
	if cell.Member != "Cells" || len(cell.Args) != 2 || cell.Args[0] != int64(1) || cell.Value != "hello" {
		t.Errorf("cell assignment = %+v", cell)
	}
	if got := strings.Join(f.wb.Calls, ","); got != "Save,Save" {
		t.Errorf("workbook calls = %s, want Save,Save", got)
	}
}

func TestStarlark_Print(t *testing.T) {
	t.Parallel()

	f := newWorkbookFixture()
	if err := f.run(t, Starlark, `print("sheets:", wb.Sheets.Count)`); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got := f.out.String(); got != "sheets: 1\n" {
		t.Errorf("stdout = %q", got)
	}
}

func TestStarlark_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		code        string
		wantMessage string
		wantTrace   string
	}{
		{
			name:        "syntax",
			code:        "x = (",
			wantMessage: office.Excel.SourceName,
			wantTrace:   office.Excel.SourceName + ":1:",
		},
		{
			name:        "fail",
			code:        "def check():\n    fail(\"boom\")\ncheck()\n",
			wantMessage: "boom",
			wantTrace:   "Traceback",
		},
		{
			name:        "unknown constant",
			code:        "__result__ = consts.xlNope",
			wantMessage: "xlNope",
			wantTrace:   office.Excel.SourceName,
		},
		{
			name:        "unknown member",
			code:        "wb.Close()",
			wantMessage: "Close",
			wantTrace:   "Traceback",
		},
		{
			name:        "read of unknown member",
			code:        "__result__ = wb.Nmae",
			wantMessage: "Nmae",
			wantTrace:   "Traceback",
		},
		{
			name:        "failing property read",
			code:        "__result__ = wb.Author",
			wantMessage: "document is locked",
			wantTrace:   "Traceback",
		},
		{
			name:        "keyword arguments",
			code:        "wb.call(\"Save\", force=True)",
			wantMessage: "keyword arguments",
			wantTrace:   "Traceback",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newWorkbookFixture()
			err := f.run(t, Starlark, tt.code)
			if !errors.Is(err, ErrExecutionFailure) {
				t.Fatalf("Run() error = %v, want ErrExecutionFailure", err)
			}
			var execErr *ExecutionError
			if !errors.As(err, &execErr) {
				t.Fatalf("expected *ExecutionError, got %T", err)
			}
			if execErr.Language != Starlark {
				t.Errorf("Language = %s", execErr.Language)
			}
			if !strings.Contains(execErr.Message, tt.wantMessage) {
				t.Errorf("Message = %q, want substring %q", execErr.Message, tt.wantMessage)
			}
			if strings.Contains(execErr.Message, "\n") {
				t.Errorf("Message must be one line, got %q", execErr.Message)
			}
			if !strings.Contains(execErr.ErrorTrace(), tt.wantTrace) {
				t.Errorf("ErrorTrace() = %q, want substring %q", execErr.ErrorTrace(), tt.wantTrace)
			}
		})
	}
}

func TestStarlark_Canceled(t *testing.T) {
	t.Parallel()

	f := newWorkbookFixture()
	engine, err := NewEngine(Starlark, f.out)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = engine.Run(ctx, Source{Name: office.Excel.SourceName, Text: "while True:\n    pass\n"}, f.ns)
	if !errors.Is(err, ErrExecutionFailure) {
		t.Fatalf("Run() error = %v, want ErrExecutionFailure", err)
	}
}
