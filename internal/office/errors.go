// SPDX-License-Identifier: MPL-2.0

package office

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionNotFound is returned when no running instance of the host
	// application can be attached to.
	ErrSessionNotFound = errors.New("session not found")
	// ErrHostNotSupported is returned when the platform has no automation bridge.
	ErrHostNotSupported = errors.New("office automation requires Windows")
	// ErrNotFound is returned when an identifier matches no open document.
	ErrNotFound = errors.New("document not found")
	// ErrAmbiguous is returned when an identifier matches more than one open document.
	ErrAmbiguous = errors.New("ambiguous document identifier")
	// ErrUnknownMember is wrapped when an object has no member of the given name.
	ErrUnknownMember = errors.New("unknown member")
	// ErrNotProperty is wrapped by a property read of a member that exists
	// but can only be invoked as a method.
	ErrNotProperty = errors.New("member is not a readable property")
)

type (
	// SessionNotFoundError is returned by Attacher.Attach when no instance is running.
	// It wraps ErrSessionNotFound and, when known, the underlying cause.
	SessionNotFoundError struct {
		App  string
		Noun string
		Err  error
	}

	// NotFoundError lists the open documents so the caller can retry with a
	// better identifier.
	NotFoundError struct {
		Noun       string
		Identifier string
		Open       []string
	}

	// AmbiguousError is returned when several documents match one identifier.
	AmbiguousError struct {
		Noun       string
		Identifier string
		Matches    int
	}
)

// Error implements the error interface.
func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("Could not attach to a running %s instance. Open %s and the target %s, then try again.",
		e.App, e.App, e.Noun)
}

// Unwrap returns ErrSessionNotFound together with the cause, if any.
func (e *SessionNotFoundError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrSessionNotFound}
	}
	return []error{ErrSessionNotFound, e.Err}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	open := "<none>"
	if len(e.Open) > 0 {
		open = strings.Join(e.Open, ", ")
	}
	return fmt.Sprintf("%s %q not found among open %ss: %s", capitalize(e.Noun), e.Identifier, e.Noun, open)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("Multiple open %ss matched %q. Be more specific (try a full path).", e.Noun, e.Identifier)
}

// Unwrap returns ErrAmbiguous for errors.Is() compatibility.
func (e *AmbiguousError) Unwrap() error { return ErrAmbiguous }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
