// SPDX-License-Identifier: MPL-2.0

// Package officetest provides in-memory automation objects for tests.
package officetest

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/officeharness/officeharness/internal/office"
)

var (
	// ErrUnknownMember is returned for a member the fake does not define.
	ErrUnknownMember = office.ErrUnknownMember
	// ErrReleased is returned when a released fake is used.
	ErrReleased = errors.New("object released")
)

type (
	// Func computes a parameterized property or method result.
	Func func(args ...any) (any, error)

	// failure makes a property read fail.
	failure struct{ err error }

	// Assignment records one Put call.
	Assignment struct {
		Member string
		Args   []any
		Value  any
	}

	// Object is a scriptable fake office.Object. Props values may be plain
	// values, nested *Object values, Func values or results of Fail.
	Object struct {
		Label     string
		Props     map[string]any
		Methods   map[string]Func
		DefaultFn Func

		Assignments []Assignment
		Calls       []string
		Released    bool
	}
)

// Fail returns a property value whose reads fail with err.
func Fail(err error) any { return failure{err: err} }

// NewObject returns an object with the given label and properties.
func NewObject(label string, props map[string]any) *Object {
	if props == nil {
		props = map[string]any{}
	}
	return &Object{Label: label, Props: props, Methods: map[string]Func{}}
}

// NewCollection returns a one-based collection exposing Count, an Item method
// and a default member that also indexes items. Item is not readable as a
// property, as with Word's Documents; see ItemProperty.
func NewCollection(label string, items ...any) *Object {
	c := NewObject(label, nil)
	item := func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("Item takes 1 argument, got %d", len(args))
		}
		i, ok := toInt(args[0])
		if !ok || i < 1 || i > len(items) {
			return nil, fmt.Errorf("index %v out of range", args[0])
		}
		if f, ok := items[i-1].(failure); ok {
			return nil, f.err
		}
		return items[i-1], nil
	}
	c.Props["Count"] = int64(len(items))
	c.Methods["Item"] = item
	c.DefaultFn = item
	return c
}

// ItemProperty also exposes a collection's Item as a parameterized property,
// as Excel's Workbooks does.
func ItemProperty(c *Object) *Object {
	c.Props["Item"] = c.Methods["Item"]
	return c
}

// NewDocument returns a document with Name and FullName set. An empty
// fullName leaves FullName undefined, so reading it fails.
func NewDocument(name, fullName string) *Object {
	props := map[string]any{"Name": name}
	if fullName != "" {
		props["FullName"] = fullName
	}
	return NewObject(name, props)
}

// NewApplication returns an application whose kind collection holds docs.
// Excel's collection also answers Item as a property; Word's does not.
func NewApplication(kind office.Kind, docs ...any) *Object {
	coll := NewCollection(kind.Collection, docs...)
	if kind.Name == office.Excel.Name {
		ItemProperty(coll)
	}
	return NewObject(kind.App, map[string]any{
		"Name":          "Microsoft " + kind.App,
		kind.Collection: coll,
	})
}

// Get implements office.Object.
func (o *Object) Get(name string, args ...any) (any, error) {
	if o.Released {
		return nil, &office.MemberError{Member: name, Err: ErrReleased}
	}
	v, ok := o.Props[name]
	if !ok {
		if _, isMethod := o.Methods[name]; isMethod {
			return nil, &office.MemberError{Member: name, Err: office.ErrNotProperty}
		}
		return nil, &office.MemberError{Member: name, Err: ErrUnknownMember}
	}
	switch p := v.(type) {
	case failure:
		return nil, &office.MemberError{Member: name, Err: p.err}
	case Func:
		return p(args...)
	}
	if len(args) > 0 {
		return nil, &office.MemberError{Member: name, Err: fmt.Errorf("property takes no arguments, got %d", len(args))}
	}
	return v, nil
}

// Put implements office.Object. Unparameterized puts update Props.
func (o *Object) Put(name string, args ...any) error {
	if o.Released {
		return &office.MemberError{Member: name, Err: ErrReleased}
	}
	if len(args) == 0 {
		return &office.MemberError{Member: name, Err: errors.New("missing value to assign")}
	}
	value := args[len(args)-1]
	index := slices.Clone(args[:len(args)-1])
	o.Assignments = append(o.Assignments, Assignment{Member: name, Args: index, Value: value})
	if len(index) == 0 {
		o.Props[name] = value
	}
	return nil
}

// Call implements office.Object. Parameterized properties are callable too,
// matching late-bound COM member lookup.
func (o *Object) Call(name string, args ...any) (any, error) {
	if o.Released {
		return nil, &office.MemberError{Member: name, Err: ErrReleased}
	}
	o.Calls = append(o.Calls, name)
	if m, ok := o.Methods[name]; ok {
		return m(args...)
	}
	if _, ok := o.Props[name]; ok {
		return o.Get(name, args...)
	}
	return nil, &office.MemberError{Member: name, Err: ErrUnknownMember}
}

// Default implements office.Object.
func (o *Object) Default(args ...any) (any, error) {
	if o.Released {
		return nil, &office.MemberError{Member: "(default)", Err: ErrReleased}
	}
	if o.DefaultFn == nil {
		return nil, &office.MemberError{Member: "(default)", Err: ErrUnknownMember}
	}
	return o.DefaultFn(args...)
}

// Release implements office.Object.
func (o *Object) Release() { o.Released = true }

// String returns a printable description of the fake.
func (o *Object) String() string {
	return fmt.Sprintf("<%s object>", o.Label)
}

// Members returns the sorted property and method names.
func (o *Object) Members() []string {
	names := slices.Collect(maps.Keys(o.Props))
	names = append(names, slices.Collect(maps.Keys(o.Methods))...)
	slices.Sort(names)
	return slices.Compact(names)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
