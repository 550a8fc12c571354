// SPDX-License-Identifier: MPL-2.0

package office

import (
	"fmt"
	"log/slog"
)

// Document is one open workbook or document.
type Document struct {
	// Name is the display name (e.g. "Budget.xlsx").
	Name string
	// FullName is the full path, or "" when the host could not report one.
	FullName string
	// Saved is the host's "no unsaved changes" flag. It defaults to true when
	// the host does not report it.
	Saved bool
	// Object is the automation handle for the document.
	Object Object
}

// HasPath reports whether the host reported a full path.
func (d Document) HasPath() bool { return d.FullName != "" }

// Enumerate snapshots the open documents of app in host order.
//
// Entries whose Name cannot be read are skipped, as are entries whose FullName
// cannot be read when the kind requires a path. If the collection or its
// Count cannot be read the snapshot is empty.
func Enumerate(app Object, kind Kind) []Document {
	coll, count, ok := openCollection(app, kind)
	if !ok {
		return nil
	}

	docs := make([]Document, 0, count)
	for i := 1; i <= count; i++ {
		doc, ok := inspect(coll, i, kind)
		if ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Names returns the display name of every entry whose Name can be read,
// including entries Enumerate skips for a missing FullName.
func Names(app Object, kind Kind) []string {
	coll, count, ok := openCollection(app, kind)
	if !ok {
		return nil
	}

	names := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		item, err := entry(coll, i)
		if err != nil {
			continue
		}
		if name, err := GetString(item, "Name"); err == nil {
			names = append(names, name)
		}
	}
	return names
}

func openCollection(app Object, kind Kind) (Object, int, bool) {
	coll, err := GetObject(app, kind.Collection)
	if err != nil {
		slog.Debug("failed to read document collection", "collection", kind.Collection, "error", err)
		return nil, 0, false
	}

	count, err := GetInt(coll, "Count")
	if err != nil {
		slog.Debug("failed to read collection count", "collection", kind.Collection, "error", err)
		return nil, 0, false
	}
	return coll, max(count, 0), true
}

// entry fetches the index-th element through the collection's default
// member. Word exposes Documents.Item as a method, so a property read of
// Item would fail there.
func entry(coll Object, index int) (Object, error) {
	v, err := coll.Default(index)
	if err != nil {
		return nil, err
	}
	item, ok := v.(Object)
	if !ok {
		return nil, &MemberError{Member: "Item", Err: fmt.Errorf("expected an object, got %T", v)}
	}
	return item, nil
}

func inspect(coll Object, index int, kind Kind) (Document, bool) {
	item, err := entry(coll, index)
	if err != nil {
		slog.Debug("skipping collection entry", "index", index, "error", err)
		return Document{}, false
	}

	name, err := GetString(item, "Name")
	if err != nil {
		slog.Debug("skipping collection entry without name", "index", index, "error", err)
		return Document{}, false
	}

	fullName, err := GetString(item, "FullName")
	if err != nil {
		if kind.PathRequired {
			slog.Debug("skipping collection entry without full name", "index", index, "error", err)
			return Document{}, false
		}
		fullName = ""
	}

	saved := true
	if kind.ListsSaved {
		if v, err := item.Get("Saved"); err == nil {
			if b, ok := v.(bool); ok {
				saved = b
			}
		}
	}

	return Document{Name: name, FullName: fullName, Saved: saved, Object: item}, true
}
