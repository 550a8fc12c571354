// SPDX-License-Identifier: MPL-2.0

// Package office attaches to a running Excel or Word instance and locates one
// open document in it.
//
// The automation surface is modeled as Object, a late-bound handle whose
// members are looked up by name at call time. Nothing in this package assumes
// a fixed member set beyond the few collection members needed to enumerate
// open documents (Count, Item, Name, FullName, Saved).
//
// Attaching on Windows uses COM through go-ole. On every other platform the
// attacher fails with ErrSessionNotFound wrapping ErrHostNotSupported.
package office
