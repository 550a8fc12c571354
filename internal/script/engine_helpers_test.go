// SPDX-License-Identifier: MPL-2.0

package script

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/office/officetest"
)

// workbookFixture is a small Excel scene: one workbook with a Sheets
// collection and a Save method.
type workbookFixture struct {
	app   *officetest.Object
	wb    *officetest.Object
	sheet *officetest.Object
	ns    *Namespace
	out   *bytes.Buffer
}

func newWorkbookFixture() *workbookFixture {
	sheet := officetest.NewObject("Sheet1", map[string]any{"Name": "Sheet1"})
	sheet.Props["Cells"] = officetest.Func(func(args ...any) (any, error) {
		return asInt64(args[0])*10 + asInt64(args[1]), nil
	})
	wb := officetest.NewDocument("Book1.xlsx", `C:\data\Book1.xlsx`)
	wb.Props["Sheets"] = officetest.NewCollection("Sheets", sheet)
	wb.Methods["Save"] = func(...any) (any, error) { return nil, nil }
	wb.Props["Author"] = officetest.Fail(errors.New("document is locked"))
	app := officetest.NewApplication(office.Excel, wb)

	return &workbookFixture{
		app:   app,
		wb:    wb,
		sheet: sheet,
		ns:    Bind(office.Excel, app, office.Document{Name: "Book1.xlsx", Object: wb}),
		out:   &bytes.Buffer{},
	}
}

func (f *workbookFixture) run(t *testing.T, lang Language, code string) error {
	t.Helper()
	engine, err := NewEngine(lang, f.out)
	if err != nil {
		t.Fatalf("NewEngine(%s): %v", lang, err)
	}
	return engine.Run(context.Background(), Source{Name: office.Excel.SourceName, Text: code}, f.ns)
}

// asInt64 accepts the integer types the two engines pass to the host.
func asInt64(v any) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	}
	return -1
}
