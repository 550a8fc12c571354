// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Starlark runs the source as a Python-dialect Starlark file.
	Starlark Language = "starlark"
	// Expr evaluates the source as one expr-lang expression.
	Expr Language = "expr"
)

// ErrUnknownLanguage is returned for a language name with no engine.
var ErrUnknownLanguage = errors.New("unknown script language")

type (
	// Language names a script engine.
	Language string

	// UnknownLanguageError is returned by ParseLanguage and NewEngine.
	UnknownLanguageError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown script language %q (valid: %s, %s)", e.Value, Starlark, Expr)
}

// Unwrap returns ErrUnknownLanguage for errors.Is() compatibility.
func (e *UnknownLanguageError) Unwrap() error { return ErrUnknownLanguage }

// String returns the language name.
func (l Language) String() string { return string(l) }

// ParseLanguage resolves a language name, ignoring case and surrounding space.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case Starlark, Expr:
		return l, nil
	default:
		return "", &UnknownLanguageError{Value: s}
	}
}
