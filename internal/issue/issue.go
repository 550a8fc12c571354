// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	SessionNotFoundId Id = iota + 1
	HostNotSupportedId
	DocumentNotFoundId
	DocumentAmbiguousId
	ConflictingSourceId
	EmptySourceId
	ScriptReadFailedId
	ExecutionFailedId
	UnknownLanguageId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "](" + string(link) + ")\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	sessionNotFoundIssue = &Issue{
		id: SessionNotFoundId,
		mdMsg: `
# No running office application found!

officeharness only attaches to an application that is already running. It
never starts Excel or Word by itself.

## Things you can try:
- Open the application and the target file, then run the command again
- Make sure the application is not running elevated while the harness is not
  (COM does not cross integrity levels)
- Close any modal dialog in the application; it may refuse automation calls`,
		extLinks: []HttpLink{
			"https://learn.microsoft.com/en-us/windows/win32/api/oleauto/nf-oleauto-getactiveobject",
		},
	}

	hostNotSupportedIssue = &Issue{
		id: HostNotSupportedId,
		mdMsg: `
# Host not supported!

Office automation uses COM, which is only available on Windows.

## Things you can try:
- Run officeharness on the Windows machine where the document is open
- Use 'officeharness excel --list-workbooks' there to check the connection`,
	}

	documentNotFoundIssue = &Issue{
		id: DocumentNotFoundId,
		mdMsg: `
# Document not found!

No open workbook or document matched the identifier.

## Matching rules (case-insensitive, surrounding whitespace ignored):
1. The display name equals the identifier
2. The full path equals the identifier
3. The display name equals the last path segment of the identifier
4. The full path ends with a backslash followed by that last segment

## Things you can try:
- List what is open:
~~~
$ officeharness excel --list-workbooks
$ officeharness word --list-documents
~~~
- Retry with one of the listed names`,
	}

	documentAmbiguousIssue = &Issue{
		id: DocumentAmbiguousId,
		mdMsg: `
# More than one document matched!

Two or more open files answer to the same name, for example two copies of
'A.xlsx' opened from different folders. The harness never picks one for you.

## Things you can try:
- Pass the full path instead of the name:
~~~
$ officeharness excel --workbook "C:\x\A.xlsx" --code "..."
~~~`,
	}

	conflictingSourceIssue = &Issue{
		id: ConflictingSourceId,
		mdMsg: `
# Conflicting code sources!

Code can come from exactly one place: '--code', '--script', or standard input.

## Things you can try:
- Drop either '--code' or '--script' from the command line`,
	}

	emptySourceIssue = &Issue{
		id: EmptySourceId,
		mdMsg: `
# No code provided!

The loaded source is empty or whitespace only.

## Ways to provide code:
- Inline: '--code "__result__ = wb.Name"'
- From a file: '--script snippet.star'
- Piped on standard input:
~~~
$ echo '__result__ = doc.Name' | officeharness word --document Report.docx
~~~`,
	}

	scriptReadFailedIssue = &Issue{
		id: ScriptReadFailedId,
		mdMsg: `
# Could not read the script file!

## Things you can try:
- Check that the path passed to '--script' exists and is readable
- Use an absolute path if the harness runs from another working directory`,
	}

	executionFailedIssue = &Issue{
		id: ExecutionFailedId,
		mdMsg: `
# Code execution failed!

The supplied code raised an error. Changes it made to the document before the
error are not rolled back.

## Common causes:
- A typo in a member name (member names are case-sensitive to the script engine)
- Calling a method as a property; use 'obj.call("Name", ...)' for methods
- Passing a parameterized property without arguments; use 'obj.get("Range", "A1")'

## Things you can try:
- Read the trace printed after the ERROR line
- Run with '--verbose' to see the full error chain`,
	}

	unknownLanguageIssue = &Issue{
		id: UnknownLanguageId,
		mdMsg: `
# Unknown script language!

## Supported languages:
- **starlark**: Python-dialect statements (default)
- **expr**: a single expr-lang expression whose value is the result`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Configuration file locations:
- Windows: %APPDATA%\officeharness\config.cue
- macOS: ~/Library/Application Support/officeharness/config.cue
- Linux: ~/.config/officeharness/config.cue

## Example configuration:
~~~cue
default_language: "starlark"
ui: {
  color_scheme: "auto"
  verbose: false
}
log: {
  level: "warn"
}
~~~`,
	}

	issues = map[Id]*Issue{
		sessionNotFoundIssue.Id():   sessionNotFoundIssue,
		hostNotSupportedIssue.Id():  hostNotSupportedIssue,
		documentNotFoundIssue.Id():  documentNotFoundIssue,
		documentAmbiguousIssue.Id(): documentAmbiguousIssue,
		conflictingSourceIssue.Id(): conflictingSourceIssue,
		emptySourceIssue.Id():       emptySourceIssue,
		scriptReadFailedIssue.Id():  scriptReadFailedIssue,
		executionFailedIssue.Id():   executionFailedIssue,
		unknownLanguageIssue.Id():   unknownLanguageIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
	}
)

func Values() []*Issue {
	return slices.Collect(maps.Values(issues))
}

func Get(id Id) *Issue {
	return issues[id]
}
