// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package office

import "context"

type unsupportedAttacher struct{}

// NewAttacher returns the platform attacher. COM automation only exists on
// Windows, so this one always fails.
func NewAttacher() Attacher {
	return unsupportedAttacher{}
}

func (unsupportedAttacher) Attach(_ context.Context, kind Kind) (Session, error) {
	return nil, &SessionNotFoundError{App: kind.App, Noun: kind.Noun, Err: ErrHostNotSupported}
}
