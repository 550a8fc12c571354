// SPDX-License-Identifier: MPL-2.0

package officetest

import (
	"context"

	"github.com/officeharness/officeharness/internal/office"
)

type (
	// Attacher hands out sessions over a fixed application object.
	// A nil App behaves as if the host application were not running.
	Attacher struct {
		App      office.Object
		Sessions []*Session
		Attempts int
	}

	// Session is a fake office.Session that counts Close calls.
	Session struct {
		app    office.Object
		Closes int
	}
)

// NewAttacher returns an attacher over app.
func NewAttacher(app office.Object) *Attacher {
	return &Attacher{App: app}
}

// Attach implements office.Attacher.
func (a *Attacher) Attach(_ context.Context, kind office.Kind) (office.Session, error) {
	a.Attempts++
	if a.App == nil {
		return nil, &office.SessionNotFoundError{App: kind.App, Noun: kind.Noun}
	}
	s := &Session{app: a.App}
	a.Sessions = append(a.Sessions, s)
	return s, nil
}

// Application implements office.Session.
func (s *Session) Application() office.Object { return s.app }

// Close implements office.Session.
func (s *Session) Close() { s.Closes++ }
