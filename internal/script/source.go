// SPDX-License-Identifier: MPL-2.0

package script

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

var (
	// ErrConflictingSource is returned when both inline code and a script path are given.
	ErrConflictingSource = errors.New("conflicting code sources")
	// ErrEmptySource is returned when the loaded code is empty or whitespace.
	ErrEmptySource = errors.New("empty code source")
)

type (
	// SourceOptions names where caller code comes from. Inline code wins over
	// stdin; a script path and inline code together are rejected.
	SourceOptions struct {
		// Code is inline code. It is used when CodeSet is true, even if empty.
		Code    string
		CodeSet bool
		// ScriptPath is a file to read the code from.
		ScriptPath string
		// Stdin is read when neither Code nor ScriptPath is given.
		Stdin io.Reader
	}

	// Source is loaded code plus the file name engines report in errors.
	Source struct {
		Name string
		Text string
	}

	// ConflictingSourceError is returned by Load for inline code plus a path.
	ConflictingSourceError struct{}

	// EmptySourceError is returned by Load when there is nothing to run.
	EmptySourceError struct{}
)

// Error implements the error interface.
func (ConflictingSourceError) Error() string { return "Use only one of --script or --code" }

// Unwrap returns ErrConflictingSource for errors.Is() compatibility.
func (ConflictingSourceError) Unwrap() error { return ErrConflictingSource }

// Error implements the error interface.
func (EmptySourceError) Error() string {
	return "No code provided. Use --script, --code, or pipe code on stdin."
}

// Unwrap returns ErrEmptySource for errors.Is() compatibility.
func (EmptySourceError) Unwrap() error { return ErrEmptySource }

// Load returns the code to run.
func Load(opts SourceOptions) (string, error) {
	if opts.CodeSet && opts.ScriptPath != "" {
		return "", &ConflictingSourceError{}
	}

	var text string
	switch {
	case opts.ScriptPath != "":
		data, err := os.ReadFile(opts.ScriptPath)
		if err != nil {
			return "", fmt.Errorf("read script %s: %w", opts.ScriptPath, err)
		}
		if !utf8.Valid(data) {
			return "", fmt.Errorf("read script %s: file is not valid UTF-8", opts.ScriptPath)
		}
		text = string(data)
	case opts.CodeSet:
		text = opts.Code
	case opts.Stdin != nil:
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return "", fmt.Errorf("read code from stdin: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return "", &EmptySourceError{}
	}
	return text, nil
}
