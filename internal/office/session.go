// SPDX-License-Identifier: MPL-2.0

package office

import "context"

type (
	// Session is an attachment to one running host application.
	Session interface {
		// Application returns the root application object.
		Application() Object
		// Close releases every object handed out during the session and
		// detaches from the host. The host application keeps running.
		// Close is idempotent and never fails.
		Close()
	}

	// Attacher obtains a Session for a kind of host application.
	Attacher interface {
		// Attach connects to the running instance of kind. When no instance is
		// running it returns a *SessionNotFoundError, after undoing any partial
		// initialization.
		Attach(ctx context.Context, kind Kind) (Session, error)
	}
)
