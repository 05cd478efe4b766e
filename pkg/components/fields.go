package components

import "strings"

// Field is one labelled value in a status listing.
type Field struct {
	Label string
	Value string
}

// Fields renders "label  value" rows with labels padded to a common
// width and every row fitted to width cells. A width of 0 disables
// fitting.
func Fields(fields []Field, width int) []string {
	labelW := 0
	for _, f := range fields {
		if w := VisibleLen(f.Label); w > labelW {
			labelW = w
		}
	}

	rows := make([]string, len(fields))
	for i, f := range fields {
		row := PadRight(f.Label, labelW) + "  " + f.Value
		if width > 0 {
			row = FitLine(row, width)
		}
		rows[i] = row
	}
	return rows
}

// FieldsString joins Fields with newlines.
func FieldsString(fields []Field, width int) string {
	return strings.Join(Fields(fields, width), "\n")
}
