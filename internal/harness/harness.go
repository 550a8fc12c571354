// SPDX-License-Identifier: MPL-2.0

package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/officeharness/officeharness/internal/issue"
	"github.com/officeharness/officeharness/internal/office"
	"github.com/officeharness/officeharness/internal/report"
	"github.com/officeharness/officeharness/internal/script"
)

// ErrMissingIdentifier is returned when neither a document identifier nor
// listing was requested.
var ErrMissingIdentifier = errors.New("missing document identifier")

type (
	// Options is one harness invocation.
	Options struct {
		Kind office.Kind
		// Identifier selects the target document by name, base name or full path.
		Identifier string
		// List prints the open documents instead of running code.
		List bool
		// Source names where the code comes from.
		Source script.SourceOptions
		// Language selects the engine; empty means script.Starlark.
		Language script.Language
		// Stdout receives the listing, printed output and the result line.
		Stdout io.Writer
	}

	// MissingIdentifierError is a usage error naming the selector flag.
	MissingIdentifierError struct {
		Flag     string
		ListFlag string
	}

	// Harness runs invocations through an Attacher.
	Harness struct {
		attacher office.Attacher
	}
)

// Error implements the error interface.
func (e *MissingIdentifierError) Error() string {
	return fmt.Sprintf("--%s is required unless --%s is used", e.Flag, e.ListFlag)
}

// Unwrap returns ErrMissingIdentifier for errors.Is() compatibility.
func (e *MissingIdentifierError) Unwrap() error { return ErrMissingIdentifier }

// New returns a Harness attaching through a.
func New(a office.Attacher) *Harness {
	return &Harness{attacher: a}
}

// Run performs one invocation. The session is closed on every path once
// attached.
func (h *Harness) Run(ctx context.Context, opts Options) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}

	session, err := h.attacher.Attach(ctx, opts.Kind)
	if err != nil {
		return err
	}
	defer session.Close()

	app := session.Application()
	docs := office.Enumerate(app, opts.Kind)
	slog.Debug("enumerated open documents", "kind", opts.Kind.Name, "count", len(docs))

	if opts.List {
		if err := report.WriteListing(stdout, opts.Kind, docs); err != nil {
			return issue.WrapWithOperation(err, "write listing")
		}
		return nil
	}

	if opts.Identifier == "" {
		return &MissingIdentifierError{Flag: SelectorFlag(opts.Kind), ListFlag: ListFlag(opts.Kind)}
	}

	doc, err := office.Find(app, docs, opts.Identifier, opts.Kind)
	if err != nil {
		return err
	}
	slog.Debug("resolved document", "identifier", opts.Identifier, "name", doc.Name, "full_name", doc.FullName)

	text, err := script.Load(opts.Source)
	if err != nil {
		return err
	}

	lang := opts.Language
	if lang == "" {
		lang = script.Starlark
	}
	engine, err := script.NewEngine(lang, stdout)
	if err != nil {
		return err
	}

	ns := script.Bind(opts.Kind, app, doc)
	src := script.Source{Name: opts.Kind.SourceName, Text: text}
	if err := engine.Run(ctx, src, ns); err != nil {
		return err
	}

	result, ok := ns.Result()
	if !ok {
		slog.Debug("code finished without a result")
		return nil
	}
	if err := report.WriteResult(stdout, result); err != nil {
		return issue.WrapWithOperation(err, "write result")
	}
	return nil
}

// SelectorFlag returns the name of the flag selecting a document of kind.
func SelectorFlag(kind office.Kind) string {
	return kind.Noun
}

// ListFlag returns the name of the flag listing the open documents of kind.
func ListFlag(kind office.Kind) string {
	return "list-" + kind.Noun + "s"
}
