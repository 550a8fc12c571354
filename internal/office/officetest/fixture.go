// SPDX-License-Identifier: MPL-2.0

package officetest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/officeharness/officeharness/internal/office"
)

// Fixture keys with special meaning inside an object definition.
const (
	// fixtureItems turns an object into a one-based collection of its elements.
	fixtureItems = "$items"
	// fixtureFail lists members whose reads fail.
	fixtureFail = "$fail"
	// fixtureBroken makes the collection entry itself unreadable.
	fixtureBroken = "$broken"
)

var errFixtureFailure = errors.New("fixture: member read failed")

// FixtureAttacher attaches to applications described by a fixture file.
type FixtureAttacher struct {
	apps map[string]*Object
}

// LoadFixture reads a CUE (or JSON) file describing running applications:
//
//	excel: documents: [
//		{Name: "Budget.xlsx", FullName: "C:\\fin\\Budget.xlsx"},
//		{Name: "Draft.xlsx", "$fail": ["FullName"]},
//	]
//
// Kinds absent from the file are reported as not running. Nested structs
// become objects; a struct with "$items" becomes a collection.
func LoadFixture(path string) (*FixtureAttacher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if v.Err() != nil {
		return nil, fmt.Errorf("compile fixture: %w", v.Err())
	}

	var raw map[string]any
	if err := v.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	fa := &FixtureAttacher{apps: map[string]*Object{}}
	for name, def := range raw {
		kind, ok := office.KindByName(name)
		if !ok {
			return nil, fmt.Errorf("fixture: unknown application %q", name)
		}
		appDef, _ := def.(map[string]any)
		docDefs, _ := appDef["documents"].([]any)

		docs := make([]any, 0, len(docDefs))
		for _, d := range docDefs {
			docs = append(docs, buildEntry(d))
		}
		app := NewApplication(kind, docs...)
		for k, val := range appDef {
			if k != "documents" {
				app.Props[k] = build(val)
			}
		}
		fa.apps[kind.Name] = app
	}
	return fa, nil
}

// Attach implements office.Attacher.
func (f *FixtureAttacher) Attach(_ context.Context, kind office.Kind) (office.Session, error) {
	app, ok := f.apps[kind.Name]
	if !ok {
		return nil, &office.SessionNotFoundError{App: kind.App, Noun: kind.Noun}
	}
	return &fixtureSession{kind: kind, app: app}, nil
}

type fixtureSession struct {
	kind   office.Kind
	app    *Object
	closed bool
}

func (s *fixtureSession) Application() office.Object { return s.app }

func (s *fixtureSession) Close() {
	if s.closed {
		return
	}
	s.closed = true
	slog.Debug("fixture session closed", "kind", s.kind.Name)
}

func buildEntry(def any) any {
	if m, ok := def.(map[string]any); ok {
		if broken, _ := m[fixtureBroken].(bool); broken {
			return Fail(errFixtureFailure)
		}
	}
	return build(def)
}

func build(def any) any {
	switch d := def.(type) {
	case map[string]any:
		var obj *Object
		if items, ok := d[fixtureItems].([]any); ok {
			elems := make([]any, 0, len(items))
			for _, it := range items {
				elems = append(elems, buildEntry(it))
			}
			obj = NewCollection("Collection", elems...)
		} else {
			obj = NewObject("Object", nil)
		}
		for k, v := range d {
			switch k {
			case fixtureItems, fixtureBroken, fixtureFail:
				continue
			}
			obj.Props[k] = build(v)
		}
		if name, ok := d["Name"].(string); ok {
			obj.Label = name
		}
		if failing, ok := d[fixtureFail].([]any); ok {
			for _, member := range failing {
				if s, ok := member.(string); ok {
					obj.Props[s] = Fail(errFixtureFailure)
				}
			}
		}
		return obj
	case []any:
		out := make([]any, len(d))
		for i, v := range d {
			out[i] = build(v)
		}
		return out
	case int:
		return int64(d)
	case float64:
		if d == float64(int64(d)) {
			return int64(d)
		}
		return d
	default:
		return d
	}
}
