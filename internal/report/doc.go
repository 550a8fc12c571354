// SPDX-License-Identifier: MPL-2.0

// Package report writes harness output: the single __RESULT__= line and the
// pretty-printed list of open documents.
//
// Encoded text uses ", " and ": " separators, non-ASCII escaped as \uXXXX, mapping
// order preserved, and values with no JSON form coerced to their string form.
package report
