// SPDX-License-Identifier: MPL-2.0

package office

import (
	"fmt"
	"maps"
	"slices"
)

// Constants is a read-only lookup of a host's enumeration constants
// (xlUp, wdStory, ...).
type Constants struct {
	kind   string
	values map[string]int64
}

// UnknownConstantError is returned by Constants.Lookup for a name not in the table.
type UnknownConstantError struct {
	Kind string
	Name string
}

// Error implements the error interface.
func (e *UnknownConstantError) Error() string {
	return fmt.Sprintf("%s constants has no member %q", e.Kind, e.Name)
}

// Lookup returns the value of the named constant.
func (c Constants) Lookup(name string) (int64, error) {
	v, ok := c.values[name]
	if !ok {
		return 0, &UnknownConstantError{Kind: c.kind, Name: name}
	}
	return v, nil
}

// Names returns the constant names in sorted order.
func (c Constants) Names() []string {
	return slices.Sorted(maps.Keys(c.values))
}

// Len returns the number of constants.
func (c Constants) Len() int { return len(c.values) }

// Excel enumeration values, from the Excel object model reference.
var excelConstants = map[string]int64{
	"xlAll":                         -4104,
	"xlAutomatic":                   -4105,
	"xlBottom":                      -4107,
	"xlCalculationAutomatic":        -4105,
	"xlCalculationManual":           -4135,
	"xlCellTypeBlanks":              4,
	"xlCellTypeConstants":           2,
	"xlCellTypeFormulas":            -4123,
	"xlCellTypeLastCell":            11,
	"xlCellTypeVisible":             12,
	"xlCenter":                      -4108,
	"xlContinuous":                  1,
	"xlCSV":                         6,
	"xlDown":                        -4121,
	"xlEdgeBottom":                  9,
	"xlEdgeLeft":                    7,
	"xlEdgeRight":                   10,
	"xlEdgeTop":                     8,
	"xlFormulas":                    -4123,
	"xlLeft":                        -4131,
	"xlNone":                        -4142,
	"xlOpenXMLWorkbook":             51,
	"xlOpenXMLWorkbookMacroEnabled": 52,
	"xlPart":                        2,
	"xlPasteAll":                    -4104,
	"xlPasteFormats":                -4122,
	"xlPasteValues":                 -4163,
	"xlRight":                       -4152,
	"xlSheetHidden":                 0,
	"xlSheetVisible":                -1,
	"xlThin":                        2,
	"xlToLeft":                      -4159,
	"xlToRight":                     -4161,
	"xlTop":                         -4160,
	"xlTypePDF":                     0,
	"xlUp":                          -4162,
	"xlValues":                      -4163,
	"xlWhole":                       1,
	"xlWorkbookDefault":             51,
	"xlAscending":                   1,
	"xlDescending":                  2,
	"xlYes":                         1,
	"xlNo":                          2,
	"xlGuess":                       0,
}

// Word enumeration values, from the Word object model reference.
var wordConstants = map[string]int64{
	"wdAlignParagraphCenter":  1,
	"wdAlignParagraphJustify": 3,
	"wdAlignParagraphLeft":    0,
	"wdAlignParagraphRight":   2,
	"wdCharacter":             1,
	"wdCollapseEnd":           0,
	"wdCollapseStart":         1,
	"wdDoNotSaveChanges":      0,
	"wdExportFormatPDF":       17,
	"wdFindContinue":          1,
	"wdFindStop":              0,
	"wdFormatDocumentDefault": 16,
	"wdFormatPDF":             17,
	"wdFormatPlainText":       2,
	"wdFormatXMLDocument":     12,
	"wdGoToPage":              1,
	"wdLine":                  5,
	"wdPageBreak":             7,
	"wdParagraph":             4,
	"wdReplaceAll":            2,
	"wdReplaceNone":           0,
	"wdReplaceOne":            1,
	"wdSaveChanges":           -1,
	"wdSectionBreakNextPage":  2,
	"wdSentence":              3,
	"wdStory":                 6,
	"wdStyleHeading1":         -2,
	"wdStyleHeading2":         -3,
	"wdStyleHeading3":         -4,
	"wdStyleNormal":           -1,
	"wdWord":                  2,
}
