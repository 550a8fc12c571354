// SPDX-License-Identifier: MPL-2.0

package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/officeharness/officeharness/internal/office"
)

// Marker prefixes the result line on stdout.
const Marker = "__RESULT__="

// listingIndent matches json.dumps(..., indent=2).
const listingIndent = "  "

// Value is a script result ready for reporting.
type Value struct {
	// Data is the value converted to encodable Go values.
	Data any
	// Text is the string form of the whole value, used when Data cannot be encoded.
	Text string
}

// EncodeResult returns the JSON text reported for v. When v.Data cannot be
// encoded the JSON string of v.Text is returned instead.
func EncodeResult(v Value) string {
	data, err := Marshal(v.Data)
	if err == nil {
		return string(data)
	}
	slog.Debug("falling back to string form of result", "reason", err)
	data, _ = Marshal(v.Text)
	return string(data)
}

// WriteResult writes the single result line.
func WriteResult(w io.Writer, v Value) error {
	_, err := fmt.Fprintln(w, Marker+EncodeResult(v))
	return err
}

// Listing builds the list-open structure for kind. Only kinds that report
// the Saved flag carry it, and only kinds without guaranteed paths report
// a missing FullName as null.
func Listing(kind office.Kind, docs []office.Document) OrderedMap {
	entries := make([]any, 0, len(docs))
	for _, d := range docs {
		var fullName any = d.FullName
		if !kind.PathRequired && !d.HasPath() {
			fullName = nil
		}
		entry := OrderedMap{
			{Key: "Name", Value: d.Name},
			{Key: "FullName", Value: fullName},
		}
		if kind.ListsSaved {
			entry = append(entry, Field{Key: "Saved", Value: d.Saved})
		}
		entries = append(entries, entry)
	}
	return OrderedMap{{Key: kind.ListingKey, Value: entries}}
}

// WriteListing writes the pretty-printed list of open documents.
func WriteListing(w io.Writer, kind office.Kind, docs []office.Document) error {
	data, err := MarshalIndent(Listing(kind, docs), listingIndent)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
