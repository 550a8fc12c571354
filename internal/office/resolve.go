// SPDX-License-Identifier: MPL-2.0

package office

import (
	"errors"
	"strings"

	"github.com/officeharness/officeharness/pkg/platform"
)

// Resolve picks the single document identified by identifier.
//
// A document matches when any of these hold, compared case-insensitively with
// surrounding whitespace trimmed:
//   - its Name equals the identifier
//   - its FullName equals the identifier
//   - its Name equals the identifier's base name
//   - its FullName ends with a backslash followed by the identifier's base name
//
// Rules involving FullName are skipped for documents without a path. Exactly
// one match is required: zero yields *NotFoundError, more yields *AmbiguousError.
func Resolve(docs []Document, identifier string, kind Kind) (Document, error) {
	target := normalize(identifier)
	base := normalize(platform.WindowsBase(identifier))

	var matches []Document
	for _, d := range docs {
		if matchesDocument(d, target, base) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		open := make([]string, 0, len(docs))
		for _, d := range docs {
			open = append(open, d.Name)
		}
		return Document{}, &NotFoundError{Noun: kind.Noun, Identifier: identifier, Open: open}
	default:
		return Document{}, &AmbiguousError{Noun: kind.Noun, Identifier: identifier, Matches: len(matches)}
	}
}

// Find resolves identifier against docs. When nothing matches, the open
// documents are listed from a Name-only pass over app, so entries Enumerate
// dropped for a missing FullName still appear.
func Find(app Object, docs []Document, identifier string, kind Kind) (Document, error) {
	doc, err := Resolve(docs, identifier, kind)
	var notFound *NotFoundError
	if errors.As(err, &notFound) {
		notFound.Open = Names(app, kind)
	}
	return doc, err
}

func matchesDocument(d Document, target, base string) bool {
	name := normalize(d.Name)
	if target == name || base == name {
		return true
	}
	if !d.HasPath() {
		return false
	}
	fullName := normalize(d.FullName)
	return target == fullName || strings.HasSuffix(fullName, platform.WindowsPathSeparator+base)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
