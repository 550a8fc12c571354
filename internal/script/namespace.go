// SPDX-License-Identifier: MPL-2.0

package script

import (
	"slices"

	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/report"
)

const (
	// ResultKey is the binding caller code assigns to report a result.
	ResultKey = "__result__"
	// ConstantsKey holds the host's enumeration constants.
	ConstantsKey = "consts"
	// FileKey and NameKey hold the identity markers.
	FileKey = "__file__"
	NameKey = "__name__"
)

type (
	// Binding is one name in a Namespace.
	Binding struct {
		Name  string
		Value any
	}

	// Namespace is the ordered set of names visible to caller code. Engines
	// write top-level assignments back into it after a run.
	Namespace struct {
		bindings []Binding
		result   *report.Value
	}
)

// Bind builds the namespace for running code against doc.
func Bind(kind office.Kind, app office.Object, doc office.Document) *Namespace {
	return &Namespace{bindings: []Binding{
		{Name: kind.AppBinding, Value: app},
		{Name: kind.DocBinding, Value: doc.Object},
		{Name: ConstantsKey, Value: kind.Constants()},
		{Name: FileKey, Value: kind.FileMarker},
		{Name: NameKey, Value: kind.NameMarker},
	}}
}

// Bindings returns a copy of the bindings in order.
func (n *Namespace) Bindings() []Binding {
	return slices.Clone(n.bindings)
}

// Names returns the bound names in order.
func (n *Namespace) Names() []string {
	names := make([]string, len(n.bindings))
	for i, b := range n.bindings {
		names[i] = b.Name
	}
	return names
}

// Lookup returns the value bound to name.
func (n *Namespace) Lookup(name string) (any, bool) {
	for _, b := range n.bindings {
		if b.Name == name {
			return b.Value, true
		}
	}
	return nil, false
}

// Set binds name, replacing an existing binding in place.
func (n *Namespace) Set(name string, value any) {
	for i := range n.bindings {
		if n.bindings[i].Name == name {
			n.bindings[i].Value = value
			return
		}
	}
	n.bindings = append(n.bindings, Binding{Name: name, Value: value})
}

// SetResult binds ResultKey to v.
func (n *Namespace) SetResult(v report.Value) {
	n.result = &v
	n.Set(ResultKey, v.Data)
}

// Result returns the reported result, if caller code assigned one.
func (n *Namespace) Result() (report.Value, bool) {
	if n.result == nil {
		return report.Value{}, false
	}
	return *n.result, true
}
