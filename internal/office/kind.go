// SPDX-License-Identifier: MPL-2.0

package office

import "strings"

// Kind describes one host application and the few per-application differences
// that matter when enumerating, resolving, and reporting its documents.
type Kind struct {
	// Name is the command name ("excel", "word").
	Name string
	// App is the user-facing application name used in messages.
	App string
	// ProgID is the COM class registered by the running application.
	ProgID string
	// Collection is the application member holding open documents.
	Collection string
	// Noun names one element of the collection in messages ("workbook").
	Noun string
	// AppBinding and DocBinding are the namespace names for the application
	// and the resolved document.
	AppBinding string
	DocBinding string
	// FileMarker and NameMarker are bound to __file__ and __name__.
	FileMarker string
	NameMarker string
	// SourceName is the file name reported by the script engine in backtraces.
	SourceName string
	// ListingKey is the top-level key of the list-open output.
	ListingKey string
	// ListsSaved reports whether listing entries carry the Saved flag.
	ListsSaved bool
	// PathRequired makes a FullName read failure skip the entry instead of
	// leaving the path empty.
	PathRequired bool

	constants map[string]int64
}

var (
	// Excel drives Excel.Application workbooks.
	Excel = Kind{
		Name:         "excel",
		App:          "Excel",
		ProgID:       "Excel.Application",
		Collection:   "Workbooks",
		Noun:         "workbook",
		AppBinding:   "excel",
		DocBinding:   "wb",
		FileMarker:   "<excel_harness_exec>",
		NameMarker:   "__excel_harness_exec__",
		SourceName:   "<excel-agent-code>",
		ListingKey:   "open_workbooks",
		ListsSaved:   false,
		PathRequired: true,
		constants:    excelConstants,
	}

	// Word drives Word.Application documents.
	Word = Kind{
		Name:         "word",
		App:          "Word",
		ProgID:       "Word.Application",
		Collection:   "Documents",
		Noun:         "document",
		AppBinding:   "word",
		DocBinding:   "doc",
		FileMarker:   "<word_harness_exec>",
		NameMarker:   "__word_harness_exec__",
		SourceName:   "<word-agent-code>",
		ListingKey:   "open_documents",
		ListsSaved:   true,
		PathRequired: false,
		constants:    wordConstants,
	}
)

// Kinds returns every supported kind in command order.
func Kinds() []Kind {
	return []Kind{Excel, Word}
}

// KindByName looks a kind up by its command name, ignoring case.
func KindByName(name string) (Kind, bool) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.Name, name) {
			return k, true
		}
	}
	return Kind{}, false
}

// String returns the kind's command name.
func (k Kind) String() string { return k.Name }

// Constants returns the enumeration constants table for the kind.
// The returned map is shared and must not be modified.
func (k Kind) Constants() Constants {
	return Constants{kind: k.Name, values: k.constants}
}
