// SPDX-License-Identifier: MPL-2.0

// Command officeharness runs code against a workbook or document that is
// already open in a running Excel or Word.
package main

import cmd "github.com/officeharness/officeharness/cmd/officeharness"

func main() {
	cmd.Execute()
}
